package assessment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"mindcare/support-chat/types"
)

const (
	MinIntensity  = 1
	MaxIntensity  = 10
	maxNoteLength = 500
)

var ErrInvalidMood = errors.New("invalid mood entry")

// Moods a check-in can record.
var Moods = []string{
	"happy", "calm", "grateful", "okay", "tired", "sad", "anxious", "stressed", "angry", "lonely",
}

var moodSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Moods))
	for _, m := range Moods {
		set[m] = struct{}{}
	}
	return set
}()

// NormalizeMood validates entry in place, lower-casing the mood and
// trimming the note.
func NormalizeMood(entry *types.MoodEntry) error {
	entry.Mood = strings.ToLower(strings.TrimSpace(entry.Mood))
	if _, ok := moodSet[entry.Mood]; !ok {
		return fmt.Errorf("%w: mood must be one of %s", ErrInvalidMood, strings.Join(Moods, ", "))
	}
	if entry.Intensity < MinIntensity || entry.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity must be between %d and %d", ErrInvalidMood, MinIntensity, MaxIntensity)
	}
	entry.Note = strings.TrimSpace(entry.Note)
	if utf8.RuneCountInString(entry.Note) > maxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidMood, maxNoteLength)
	}
	return nil
}

// SummarizeMoods counts entries per mood. Moods are ordered by count, then
// name.
func SummarizeMoods(entries []types.MoodEntry) types.MoodSummary {
	summary := types.MoodSummary{Moods: []types.MoodStat{}}
	if len(entries) == 0 {
		return summary
	}

	counts := make(map[string]int)
	sums := make(map[string]int)
	total := 0
	for _, e := range entries {
		counts[e.Mood]++
		sums[e.Mood] += e.Intensity
		total += e.Intensity
	}

	for mood, n := range counts {
		summary.Moods = append(summary.Moods, types.MoodStat{
			Mood:             mood,
			Count:            n,
			AverageIntensity: round1(float64(sums[mood]) / float64(n)),
		})
	}
	sort.Slice(summary.Moods, func(i, j int) bool {
		if summary.Moods[i].Count != summary.Moods[j].Count {
			return summary.Moods[i].Count > summary.Moods[j].Count
		}
		return summary.Moods[i].Mood < summary.Moods[j].Mood
	})

	summary.Total = len(entries)
	summary.AverageIntensity = round1(float64(total) / float64(len(entries)))
	summary.MostFrequent = summary.Moods[0].Mood
	return summary
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
