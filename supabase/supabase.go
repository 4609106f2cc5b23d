// Package supabase stores mood check-ins, PHQ-9 results and chat activity
// in Supabase tables, acting as the calling user so row-level security
// applies.
package supabase

import (
	"fmt"
	"net/http"

	"github.com/supabase-community/supabase-go"
)

// Tables
const (
	moodTable     = "mood_entries"
	phq9Table     = "phq9_results"
	activityTable = "user_activities"
)

// Connector builds per-request clients from the project URL and anon key.
type Connector struct {
	url string
	key string
}

func NewConnector(url, key string) (*Connector, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}
	return &Connector{url: url, key: key}, nil
}

// Repository reads and writes one user's wellbeing records.
type Repository struct {
	client *supabase.Client
}

// ForRequest returns a Repository that acts with the request's bearer token,
// plus the user id taken from the token's sub claim.
func (c *Connector) ForRequest(r *http.Request) (*Repository, string, error) {
	token, userID, err := UserFromRequest(r)
	if err != nil {
		return nil, "", err
	}

	client, err := supabase.NewClient(c.url, c.key, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return &Repository{client: client}, userID, nil
}
