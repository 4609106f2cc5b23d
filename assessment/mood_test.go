package assessment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/support-chat/types"
)

func TestNormalizeMood(t *testing.T) {
	entry := types.MoodEntry{Mood: "  Anxious ", Intensity: 7, Note: "  exams tomorrow  "}
	require.NoError(t, NormalizeMood(&entry))
	assert.Equal(t, "anxious", entry.Mood)
	assert.Equal(t, "exams tomorrow", entry.Note)

	tests := []struct {
		name  string
		entry types.MoodEntry
	}{
		{"unknown mood", types.MoodEntry{Mood: "hangry", Intensity: 5}},
		{"intensity too low", types.MoodEntry{Mood: "sad", Intensity: 0}},
		{"intensity too high", types.MoodEntry{Mood: "sad", Intensity: 11}},
		{"note too long", types.MoodEntry{Mood: "sad", Intensity: 3, Note: strings.Repeat("a", 501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NormalizeMood(&tt.entry), ErrInvalidMood)
		})
	}
}

func TestSummarizeMoods(t *testing.T) {
	summary := SummarizeMoods([]types.MoodEntry{
		{Mood: "sad", Intensity: 6},
		{Mood: "calm", Intensity: 4},
		{Mood: "sad", Intensity: 8},
		{Mood: "anxious", Intensity: 5},
		{Mood: "calm", Intensity: 3},
	})

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 5.2, summary.AverageIntensity)
	assert.Equal(t, "calm", summary.MostFrequent, "ties break alphabetically")
	assert.Equal(t, []types.MoodStat{
		{Mood: "calm", Count: 2, AverageIntensity: 3.5},
		{Mood: "sad", Count: 2, AverageIntensity: 7},
		{Mood: "anxious", Count: 1, AverageIntensity: 5},
	}, summary.Moods)
}

func TestSummarizeNoMoods(t *testing.T) {
	summary := SummarizeMoods(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.MostFrequent)
	assert.NotNil(t, summary.Moods)
}
