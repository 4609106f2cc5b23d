package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"mindcare/support-chat/types"
)

func (r *Repository) InsertPHQ9(result types.PHQ9Result) (types.PHQ9Result, error) {
	resp, _, err := r.client.From(phq9Table).Insert(result, false, "", "representation", "").Execute()
	if err != nil {
		return types.PHQ9Result{}, fmt.Errorf("failed to save PHQ-9 result: %w", err)
	}

	var rows []types.PHQ9Result
	if err := json.Unmarshal(resp, &rows); err != nil {
		return types.PHQ9Result{}, fmt.Errorf("failed to unmarshal PHQ-9 result: %w", err)
	}
	if len(rows) == 0 {
		return result, nil
	}
	return rows[0], nil
}

// ListPHQ9 returns past results newest first.
func (r *Repository) ListPHQ9(userID string, limit int) ([]types.PHQ9Result, error) {
	resp, _, err := r.client.From(phq9Table).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PHQ-9 results: %w", err)
	}

	var results []types.PHQ9Result
	if err := json.Unmarshal(resp, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PHQ-9 results: %w", err)
	}
	return results, nil
}
