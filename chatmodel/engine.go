package chatmodel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mindcare/support-chat/analysis"
	"mindcare/support-chat/config"
	"mindcare/support-chat/llm"
	"mindcare/support-chat/types"
)

// ErrNoUserMessage is returned when the history has no user turn to answer.
var ErrNoUserMessage = errors.New("no user message in history")

// Engine answers one chat turn.
type Engine struct {
	tracker   *RepetitionTracker
	gate      *ClarifyGate
	completer llm.Completer
	lib       *Library
	model     string
	now       func() time.Time
}

func NewEngine(tracker *RepetitionTracker, gate *ClarifyGate, completer llm.Completer, model string) *Engine {
	return &Engine{
		tracker:   tracker,
		gate:      gate,
		completer: completer,
		lib:       tracker.lib,
		model:     model,
		now:       time.Now,
	}
}

// Tracker exposes the repetition tracker for session resets.
func (e *Engine) Tracker() *RepetitionTracker {
	return e.tracker
}

// SessionKey picks the id repetition state is kept under. Anonymous
// requests get "" and are not tracked, since no later turn could find them.
func SessionKey(req *types.ChatRequest) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	return req.UserID
}

// Respond runs the heuristics and, unless one of them answers the turn,
// calls the model. Upstream failures on the model path are returned as
// *llm.Error.
func (e *Engine) Respond(ctx context.Context, req *types.ChatRequest) (*types.Completion, error) {
	latest, ok := types.LastUserMessage(req.Messages)
	if !ok {
		return nil, ErrNoUserMessage
	}
	sessionID := SessionKey(req)

	style := analysis.AnalyzeStyle(latest)
	emotion := analysis.ClassifyEmotion(latest)

	log := config.Logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"emotion":    emotion,
		"language":   style.Language,
	})

	if sessionID != "" {
		rep, err := e.tracker.Track(ctx, sessionID, latest, emotion == types.EmotionSuicidal)
		if err != nil {
			// The chat still works without repetition state.
			log.WithError(err).Warn("Repetition tracking unavailable")
		} else if rep.Response != nil {
			log.WithField("source", rep.Source).Info("Turn answered by repetition tracker")
			return e.synthesize(*rep.Response, sessionID, emotion, rep.Source, ClarifyNone, style), nil
		}
	}

	name := analysis.ExtractName(req.Messages)
	if name == "" && req.UserPreferences != nil {
		name = req.UserPreferences.Name
	}
	ec := analysis.BuildEmotionalContext(req.Messages)

	if decision := e.gate.Decide(req.Messages, ec, latest, style); decision.Fired() {
		log.WithField("level", decision.Level).Info("Turn answered with clarifying question")
		return e.synthesize(decision.Text, sessionID, ec.CurrentEmotion, types.SourceClarification, decision.Level, style), nil
	}

	system := ComposeSystemPrompt(e.lib, PromptInput{
		SectionPrompt: llm.BuildSectionPrompt(req.Section, req.UserPreferences),
		Style:         style,
		Name:          name,
		Context:       ec,
	})

	completion, err := e.completer.Complete(ctx, llm.CompletionRequest{
		Messages: PrepareMessages(system, req.Messages),
	})
	if err != nil {
		fields := logrus.Fields{}
		var llmErr *llm.Error
		if errors.As(err, &llmErr) {
			fields["error_type"] = llmErr.Type
			fields["status"] = llmErr.Code
			fields["details"] = llmErr.Details
		}
		log.WithFields(fields).WithError(err).Error("Upstream completion failed")
		return nil, err
	}

	completion.Emotion = ec.CurrentEmotion
	completion.Source = types.SourceModel
	completion.Language = style.Language
	completion.SessionID = sessionID
	return completion, nil
}

func (e *Engine) synthesize(text, sessionID string, emotion types.Emotion, source string, level int, style types.StyleProfile) *types.Completion {
	return &types.Completion{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: e.now().Unix(),
		Model:   e.model,
		Choices: []types.CompletionChoice{{
			Index:        0,
			Message:      types.ChatMessage{Role: types.RoleAssistant, Content: text},
			FinishReason: "stop",
		}},
		Emotion:            emotion,
		Source:             source,
		ClarificationLevel: level,
		Language:           style.Language,
		SessionID:          sessionID,
	}
}
