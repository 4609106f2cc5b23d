package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"mindcare/support-chat/types"
)

// TrackActivity records a chat or check-in event with metadata only.
func (r *Repository) TrackActivity(userID, sessionID, activityType string, metadata map[string]interface{}) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	activity := types.UserActivity{
		UserID:       userID,
		SessionID:    sessionID,
		ActivityType: activityType,
		Metadata:     string(metadataJSON),
		CreatedAt:    time.Now(),
	}

	_, _, err = r.client.From(activityTable).Insert(activity, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to track user activity: %w", err)
	}
	return nil
}
