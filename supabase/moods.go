package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"mindcare/support-chat/types"
)

func (r *Repository) InsertMood(entry types.MoodEntry) (types.MoodEntry, error) {
	resp, _, err := r.client.From(moodTable).Insert(entry, false, "", "representation", "").Execute()
	if err != nil {
		return types.MoodEntry{}, fmt.Errorf("failed to save mood entry: %w", err)
	}

	var rows []types.MoodEntry
	if err := json.Unmarshal(resp, &rows); err != nil {
		return types.MoodEntry{}, fmt.Errorf("failed to unmarshal mood entry: %w", err)
	}
	if len(rows) == 0 {
		return entry, nil
	}
	return rows[0], nil
}

// ListMoods returns check-ins newest first. A zero since means no lower bound.
func (r *Repository) ListMoods(userID string, since time.Time, limit int) ([]types.MoodEntry, error) {
	query := r.client.From(moodTable).
		Select("*", "", false).
		Eq("user_id", userID)
	if !since.IsZero() {
		query = query.Gte("created_at", since.Format(time.RFC3339))
	}

	resp, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mood entries: %w", err)
	}

	var entries []types.MoodEntry
	if err := json.Unmarshal(resp, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mood entries: %w", err)
	}
	return entries, nil
}
