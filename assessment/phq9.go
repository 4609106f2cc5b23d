// Package assessment scores the PHQ-9 depression screener and summarizes
// mood check-ins.
package assessment

import (
	"errors"
	"fmt"
	"time"

	"mindcare/support-chat/types"
)

// PHQ9Items is the number of questions in the screener.
const PHQ9Items = 9

// Answers range from 0 ("not at all") to 3 ("nearly every day").
const maxAnswer = 3

// Item 9 asks about thoughts of self-harm.
const selfHarmItem = 8

var ErrInvalidAnswers = errors.New("invalid PHQ-9 answers")

// Severity bands
const (
	SeverityMinimal          = "minimal"
	SeverityMild             = "mild"
	SeverityModerate         = "moderate"
	SeverityModeratelySevere = "moderately_severe"
	SeveritySevere           = "severe"
)

type band struct {
	max            int
	severity       string
	recommendation string
}

var bands = []band{
	{4, SeverityMinimal, "Your answers suggest minimal symptoms. Keep checking in with yourself."},
	{9, SeverityMild, "Your answers suggest mild symptoms. Small routines and talking to someone you trust can help; check again in a couple of weeks."},
	{14, SeverityModerate, "Your answers suggest moderate symptoms. It would be a good idea to talk to a counsellor or doctor."},
	{19, SeverityModeratelySevere, "Your answers suggest moderately severe symptoms. Please reach out to a mental health professional soon."},
	{27, SeveritySevere, "Your answers suggest severe symptoms. Please contact a mental health professional as soon as possible."},
}

// ScorePHQ9 totals the nine answers and maps the total to a severity band.
// Any answer above zero on the self-harm item flags the result for crisis
// support regardless of the total.
func ScorePHQ9(answers []int, now time.Time) (types.PHQ9Result, error) {
	if len(answers) != PHQ9Items {
		return types.PHQ9Result{}, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswers, PHQ9Items, len(answers))
	}

	total := 0
	for i, a := range answers {
		if a < 0 || a > maxAnswer {
			return types.PHQ9Result{}, fmt.Errorf("%w: answer %d must be between 0 and %d", ErrInvalidAnswers, i+1, maxAnswer)
		}
		total += a
	}

	b := bandFor(total)
	return types.PHQ9Result{
		Answers:            append([]int(nil), answers...),
		Total:              total,
		Severity:           b.severity,
		Recommendation:     b.recommendation,
		NeedsCrisisSupport: answers[selfHarmItem] > 0,
		CreatedAt:          now,
	}, nil
}

// Severity returns the band name for a total score.
func Severity(total int) string {
	return bandFor(total).severity
}

func bandFor(total int) band {
	for _, b := range bands {
		if total <= b.max {
			return b
		}
	}
	return bands[len(bands)-1]
}
