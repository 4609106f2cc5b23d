package handlers

import (
	"errors"
	"net/http"
	"time"

	"mindcare/support-chat/assessment"
	"mindcare/support-chat/config"
	"mindcare/support-chat/middleware"
	"mindcare/support-chat/types"
)

const (
	defaultMoodLimit   = 30
	maxMoodLimit       = 100
	defaultSummaryDays = 30
	maxSummaryDays     = 365
	summaryScanLimit   = 1000
)

var errStorageDisabled = errors.New("storage not configured")

type moodRequest struct {
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
	Note      string `json:"note"`
}

// records opens the caller's Records or writes the error response.
func (a *API) records(w http.ResponseWriter, r *http.Request) (Records, bool) {
	if a.Records == nil {
		writeError(w, errStorageDisabled.Error(), http.StatusServiceUnavailable)
		return nil, false
	}
	records, err := a.Records(r)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to open records")
		writeError(w, "Failed to connect to storage", http.StatusInternalServerError)
		return nil, false
	}
	return records, true
}

func (a *API) CreateMood(w http.ResponseWriter, r *http.Request) {
	var body moodRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	entry := types.MoodEntry{
		UserID:    middleware.UserID(r.Context()),
		Mood:      body.Mood,
		Intensity: body.Intensity,
		Note:      body.Note,
		CreatedAt: a.now(),
	}
	if err := assessment.NormalizeMood(&entry); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, ok := a.records(w, r)
	if !ok {
		return
	}
	saved, err := records.InsertMood(entry)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to save mood entry")
		writeError(w, "Could not save mood entry", http.StatusInternalServerError)
		return
	}

	go func() {
		if err := records.TrackActivity(entry.UserID, "", config.ActivityTypeMoodLogged, map[string]interface{}{
			"mood":      entry.Mood,
			"intensity": entry.Intensity,
		}); err != nil {
			config.Logger.Warn("TrackActivity failed:", err)
		}
	}()

	writeJSON(w, http.StatusCreated, saved)
}

func (a *API) ListMoods(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultMoodLimit, maxMoodLimit)
	if !ok {
		writeError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}

	records, ok := a.records(w, r)
	if !ok {
		return
	}
	entries, err := records.ListMoods(middleware.UserID(r.Context()), time.Time{}, limit)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to list mood entries")
		writeError(w, "Could not fetch mood entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []types.MoodEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"moods": entries})
}

func (a *API) MoodSummary(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", defaultSummaryDays, maxSummaryDays)
	if !ok {
		writeError(w, "days must be a positive integer", http.StatusBadRequest)
		return
	}

	records, ok := a.records(w, r)
	if !ok {
		return
	}
	since := a.now().AddDate(0, 0, -days)
	entries, err := records.ListMoods(middleware.UserID(r.Context()), since, summaryScanLimit)
	if err != nil {
		config.Logger.WithError(err).Error("Failed to list mood entries")
		writeError(w, "Could not fetch mood entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":    days,
		"summary": assessment.SummarizeMoods(entries),
	})
}
