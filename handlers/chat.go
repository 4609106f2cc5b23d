package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"mindcare/support-chat/chatmodel"
	"mindcare/support-chat/config"
	"mindcare/support-chat/llm"
	"mindcare/support-chat/supabase"
	"mindcare/support-chat/types"
)

const upstreamUnavailable = "I'm having trouble responding right now. Please try again in a moment."

func (a *API) Chat(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the request body
	var req types.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body: messages must be an array", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, "messages must be a non-empty array", http.StatusBadRequest)
		return
	}
	if _, ok := types.LastUserMessage(req.Messages); !ok {
		writeError(w, "messages must contain a user message", http.StatusBadRequest)
		return
	}

	if !llm.IsKnownSection(req.Section) {
		config.Logger.WithField("section", req.Section).Debug("Unknown section, using the default prompt")
	}

	// Signed-in users keep one repetition state across devices.
	authUserID := ""
	if r.Header.Get("Authorization") != "" {
		if _, sub, err := supabase.UserFromRequest(r); err == nil {
			authUserID = sub
		} else {
			config.Logger.WithError(err).Debug("Ignoring unusable Authorization header on chat")
		}
	}
	if req.UserID == "" {
		req.UserID = authUserID
	}

	resp, err := a.Engine.Respond(r.Context(), &req)
	if err != nil {
		a.writeChatError(w, err)
		return
	}

	if authUserID != "" {
		a.trackChatTurn(r, authUserID, resp)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) writeChatError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatmodel.ErrNoUserMessage) {
		writeError(w, "messages must contain a user message", http.StatusBadRequest)
		return
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		status := http.StatusBadGateway
		if llmErr.Type == llm.ErrorTypeTimeout {
			status = http.StatusGatewayTimeout
		}
		writeErrorDetails(w, upstreamUnavailable, llmErr.Error(), status)
		return
	}

	config.Logger.WithError(err).Error("Chat turn failed")
	writeError(w, upstreamUnavailable, http.StatusInternalServerError)
}

// trackChatTurn records which route answered the turn. Message text is
// never stored.
func (a *API) trackChatTurn(r *http.Request, userID string, resp *types.Completion) {
	if a.Records == nil {
		return
	}
	records, err := a.Records(r)
	if err != nil {
		config.Logger.WithError(err).Warn("Activity tracking unavailable")
		return
	}

	metadata := map[string]interface{}{
		"source":              resp.Source,
		"emotion":             resp.Emotion,
		"language":            resp.Language,
		"clarification_level": resp.ClarificationLevel,
	}
	sessionID := resp.SessionID
	crisis := resp.Emotion == types.EmotionSuicidal

	go func() {
		log := config.Logger.WithFields(logrus.Fields{"user_id": userID, "session_id": sessionID})
		if err := records.TrackActivity(userID, sessionID, config.ActivityTypeChatTurn, metadata); err != nil {
			log.WithError(err).Warn("TrackActivity failed")
		}
		if crisis {
			if err := records.TrackActivity(userID, sessionID, config.ActivityTypeCrisisRoute, metadata); err != nil {
				log.WithError(err).Warn("TrackActivity failed")
			}
		}
	}()
}

func (a *API) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, "Missing session id", http.StatusBadRequest)
		return
	}

	if err := a.Engine.Tracker().Reset(r.Context(), id); err != nil {
		config.Logger.WithError(err).WithField("session_id", id).Error("Failed to reset session")
		writeError(w, "Could not reset session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session_id": id})
}
