package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total int
		want         int
	}{
		{score: 0, total: 0, want: 0},
		{score: 0, total: 5, want: 0},
		{score: 1, total: 3, want: 33},
		{score: 2, total: 3, want: 67},
		{score: 1, total: 8, want: 13}, // 12.5
		{score: 3, total: 8, want: 38}, // 37.5
		{score: 4, total: 5, want: 80},
		{score: 5, total: 5, want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.score, tt.total), "Percentage(%d, %d)", tt.score, tt.total)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Band
	}{
		{pct: 100, want: BandExcellent},
		{pct: 80, want: BandExcellent},
		{pct: 79, want: BandGood},
		{pct: 60, want: BandGood},
		{pct: 59, want: BandNeedsPractice},
		{pct: 40, want: BandNeedsPractice},
		{pct: 39, want: BandPoor},
		{pct: 0, want: BandPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.pct), "BandFor(%d)", tt.pct)
	}
}

func TestReview(t *testing.T) {
	t.Run("not completed", func(t *testing.T) {
		s := newTestSession(t, 0)
		_, err := Review(s)
		assert.Equal(t, ErrNotCompleted, err)
	})

	t.Run("all correct", func(t *testing.T) {
		s := newTestSession(t, 0, 2, 2, 0, 1)
		for _, opt := range []int{0, 2, 2, 0, 1} {
			answer(t, s, opt)
		}
		sum, err := Review(s)
		require.NoError(t, err)
		assert.Equal(t, 5, sum.Score)
		assert.Equal(t, 100, sum.Percentage)
		assert.True(t, sum.Passed)
		assert.Equal(t, BandExcellent, sum.Band)
		assert.Len(t, sum.Items, 5)
	})

	t.Run("one wrong out of five", func(t *testing.T) {
		s := newTestSession(t, 0, 2, 2, 0, 1)
		for _, opt := range []int{0, 2, 1, 0, 1} {
			answer(t, s, opt)
		}
		sum, err := Review(s)
		require.NoError(t, err)
		assert.Equal(t, 4, sum.Score)
		assert.Equal(t, 5, sum.Total)
		assert.Equal(t, 80, sum.Percentage)
		assert.True(t, sum.Passed)
		assert.Equal(t, BandExcellent, sum.Band)

		third := sum.Items[2]
		assert.Equal(t, 1, third.ChosenOption)
		assert.Equal(t, 2, third.CorrectOption)
		assert.False(t, third.IsCorrect)
		for _, i := range []int{0, 1, 3, 4} {
			assert.True(t, sum.Items[i].IsCorrect, "item %d", i+1)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		s := newTestSession(t, 0, 2, 2, 0, 1)
		for _, opt := range []int{1, 2, 3, 0, 0} {
			answer(t, s, opt)
		}
		sum, err := Review(s)
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Score)
		assert.Equal(t, 40, sum.Percentage)
		assert.False(t, sum.Passed)
		assert.Equal(t, BandNeedsPractice, sum.Band)

		assert.Equal(t, ReviewItem{
			Number:        1,
			Question:      "Question 1",
			Answered:      true,
			ChosenOption:  1,
			ChosenText:    "b",
			CorrectOption: 0,
			CorrectText:   "a",
			IsCorrect:     false,
			Explanation:   "Explanation 1",
		}, sum.Items[0])
		assert.True(t, sum.Items[1].IsCorrect)
	})

	t.Run("finished early", func(t *testing.T) {
		s := newTestSession(t, 1, 2, 3)
		answer(t, s, 1)
		s.Finish()

		sum, err := Review(s)
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Score)
		assert.Equal(t, 33, sum.Percentage)
		assert.Equal(t, BandPoor, sum.Band)

		skipped := sum.Items[2]
		assert.False(t, skipped.Answered)
		assert.Equal(t, Unanswered, skipped.ChosenOption)
		assert.Equal(t, "a", skipped.ChosenText)
		assert.False(t, skipped.IsCorrect)
		assert.Equal(t, "d", skipped.CorrectText)
	})

	t.Run("malformed correct option", func(t *testing.T) {
		s := newTestSession(t, 9)
		answer(t, s, 0)
		sum, err := Review(s)
		require.NoError(t, err)
		assert.False(t, sum.Items[0].IsCorrect)
		assert.Equal(t, "", sum.Items[0].CorrectText)
	})

	t.Run("deterministic", func(t *testing.T) {
		s := newTestSession(t, 0, 1)
		answer(t, s, 0)
		answer(t, s, 0)
		first, err := Review(s)
		require.NoError(t, err)
		second, err := Review(s)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, s.Score())

		firstJSON, err := json.Marshal(first)
		require.NoError(t, err)
		secondJSON, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(secondJSON))
	})
}
