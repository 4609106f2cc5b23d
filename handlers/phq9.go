package handlers

import (
	"net/http"
	"strings"

	"mindcare/support-chat/assessment"
	"mindcare/support-chat/chatmodel"
	"mindcare/support-chat/config"
	"mindcare/support-chat/middleware"
	"mindcare/support-chat/supabase"
	"mindcare/support-chat/types"
)

const (
	defaultPHQ9Limit = 20
	maxPHQ9Limit     = 100
)

type phq9Request struct {
	Answers []int `json:"answers"`
}

type phq9Response struct {
	Result          types.PHQ9Result `json:"result"`
	Saved           bool             `json:"saved"`
	CrisisResources string           `json:"crisis_resources,omitempty"`
}

// ScorePHQ9 scores a questionnaire. Signed-in users get the result saved
// when storage is configured; anyone can score without saving.
func (a *API) ScorePHQ9(w http.ResponseWriter, r *http.Request) {
	var body phq9Request
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := assessment.ScorePHQ9(body.Answers, a.now())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := phq9Response{Result: result}
	if result.NeedsCrisisSupport {
		resp.CrisisResources = strings.TrimSpace(chatmodel.DefaultLibrary().CrisisResources)
	}

	_, userID, authErr := supabase.UserFromRequest(r)
	if authErr != nil || a.Records == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	records, ok := a.records(w, r)
	if !ok {
		return
	}
	result.UserID = userID
	saved, err := records.InsertPHQ9(result)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to save PHQ-9 result")
		writeError(w, "Could not save PHQ-9 result", http.StatusInternalServerError)
		return
	}
	resp.Result = saved
	resp.Saved = true

	go func() {
		if err := records.TrackActivity(userID, "", config.ActivityTypePHQ9Scored, map[string]interface{}{
			"severity":             saved.Severity,
			"needs_crisis_support": saved.NeedsCrisisSupport,
		}); err != nil {
			config.Logger.Warn("TrackActivity failed:", err)
		}
	}()

	writeJSON(w, http.StatusCreated, resp)
}

func (a *API) ListPHQ9(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultPHQ9Limit, maxPHQ9Limit)
	if !ok {
		writeError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}

	records, ok := a.records(w, r)
	if !ok {
		return
	}
	results, err := records.ListPHQ9(middleware.UserID(r.Context()), limit)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to list PHQ-9 results")
		writeError(w, "Could not fetch PHQ-9 results", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []types.PHQ9Result{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
