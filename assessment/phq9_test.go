package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePHQ9Bands(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		answers  []int
		total    int
		severity string
	}{
		{"all zero", []int{0, 0, 0, 0, 0, 0, 0, 0, 0}, 0, SeverityMinimal},
		{"top of minimal", []int{1, 1, 1, 1, 0, 0, 0, 0, 0}, 4, SeverityMinimal},
		{"bottom of mild", []int{1, 1, 1, 1, 1, 0, 0, 0, 0}, 5, SeverityMild},
		{"moderate", []int{2, 2, 2, 2, 2, 0, 0, 0, 0}, 10, SeverityModerate},
		{"top of moderate", []int{2, 2, 2, 2, 2, 2, 2, 0, 0}, 14, SeverityModerate},
		{"moderately severe", []int{3, 3, 3, 3, 3, 0, 0, 0, 0}, 15, SeverityModeratelySevere},
		{"bottom of severe", []int{3, 3, 3, 3, 3, 3, 2, 0, 0}, 20, SeveritySevere},
		{"maximum", []int{3, 3, 3, 3, 3, 3, 3, 3, 3}, 27, SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ScorePHQ9(tt.answers, now)
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, tt.severity, res.Severity)
			assert.Equal(t, tt.severity, Severity(tt.total))
			assert.NotEmpty(t, res.Recommendation)
			assert.Equal(t, now, res.CreatedAt)
		})
	}
}

func TestScorePHQ9FlagsSelfHarmItem(t *testing.T) {
	res, err := ScorePHQ9([]int{0, 0, 0, 0, 0, 0, 0, 0, 1}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, SeverityMinimal, res.Severity)
	assert.True(t, res.NeedsCrisisSupport)

	res, err = ScorePHQ9([]int{3, 3, 3, 3, 3, 3, 3, 3, 0}, time.Now())
	require.NoError(t, err)
	assert.False(t, res.NeedsCrisisSupport)
}

func TestScorePHQ9RejectsBadInput(t *testing.T) {
	_, err := ScorePHQ9([]int{0, 1, 2}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAnswers)

	_, err = ScorePHQ9([]int{0, 0, 0, 0, 4, 0, 0, 0, 0}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAnswers)
	assert.Contains(t, err.Error(), "answer 5")

	_, err = ScorePHQ9([]int{0, 0, 0, 0, -1, 0, 0, 0, 0}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAnswers)
}

func TestScorePHQ9CopiesAnswers(t *testing.T) {
	answers := []int{1, 1, 1, 1, 1, 1, 1, 1, 1}
	res, err := ScorePHQ9(answers, time.Now())
	require.NoError(t, err)

	answers[0] = 3
	assert.Equal(t, 1, res.Answers[0])
}
