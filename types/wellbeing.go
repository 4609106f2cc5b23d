package types

import "time"

type MoodEntry struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MoodStat struct {
	Mood             string  `json:"mood"`
	Count            int     `json:"count"`
	AverageIntensity float64 `json:"average_intensity"`
}

type MoodSummary struct {
	Total            int        `json:"total"`
	AverageIntensity float64    `json:"average_intensity"`
	MostFrequent     string     `json:"most_frequent,omitempty"`
	Moods            []MoodStat `json:"moods"`
}

// PHQ9Result is one scored PHQ-9 questionnaire.
type PHQ9Result struct {
	ID                 string    `json:"id,omitempty"`
	UserID             string    `json:"user_id"`
	Answers            []int     `json:"answers"`
	Total              int       `json:"total"`
	Severity           string    `json:"severity"`
	Recommendation     string    `json:"recommendation"`
	NeedsCrisisSupport bool      `json:"needs_crisis_support"`
	CreatedAt          time.Time `json:"created_at"`
}

// UserActivity records what kind of turn happened, never what was said.
type UserActivity struct {
	UserID       string    `json:"user_id"`
	SessionID    string    `json:"session_id"`
	ActivityType string    `json:"activity_type"`
	Metadata     string    `json:"metadata"`
	CreatedAt    time.Time `json:"created_at"`
}
