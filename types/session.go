package types

import "time"

// SessionState is the repetition bookkeeping kept per session id.
type SessionState struct {
	ID                     string              `json:"id"`
	MessageCounts          map[string]int      `json:"message_counts"`
	LastMessage            string              `json:"last_message"`
	UsedResponses          map[string][]string `json:"used_responses"`
	VagueModeActive        bool                `json:"vague_mode_active"`
	VagueMessageCount      int                 `json:"vague_message_count"`
	LastMeaningfulResponse *string             `json:"last_meaningful_response,omitempty"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

func NewSessionState(id string) *SessionState {
	return &SessionState{
		ID:            id,
		MessageCounts: make(map[string]int),
		UsedResponses: make(map[string][]string),
	}
}
