package handlers

import (
	"net/http"
	"time"

	"mindcare/support-chat/chatmodel"
	"mindcare/support-chat/supabase"
	"mindcare/support-chat/types"
)

// Records is the per-user persistence the handlers need.
type Records interface {
	InsertMood(entry types.MoodEntry) (types.MoodEntry, error)
	ListMoods(userID string, since time.Time, limit int) ([]types.MoodEntry, error)
	InsertPHQ9(result types.PHQ9Result) (types.PHQ9Result, error)
	ListPHQ9(userID string, limit int) ([]types.PHQ9Result, error)
	TrackActivity(userID, sessionID, activityType string, metadata map[string]interface{}) error
}

// RecordsProvider opens Records acting as the request's user.
type RecordsProvider func(r *http.Request) (Records, error)

// SupabaseRecords adapts a Connector to a RecordsProvider.
func SupabaseRecords(c *supabase.Connector) RecordsProvider {
	return func(r *http.Request) (Records, error) {
		repo, _, err := c.ForRequest(r)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// API holds the handlers' dependencies.
type API struct {
	Engine *chatmodel.Engine
	// Records is nil when Supabase is not configured.
	Records   RecordsProvider
	StoreType string
	Model     string

	now func() time.Time
}

func NewAPI(engine *chatmodel.Engine, records RecordsProvider, storeType, model string) *API {
	return &API{
		Engine:    engine,
		Records:   records,
		StoreType: storeType,
		Model:     model,
		now:       time.Now,
	}
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"store":    a.StoreType,
		"model":    a.Model,
		"supabase": a.Records != nil,
		"time":     a.now().UTC().Format(time.RFC3339),
	})
}
