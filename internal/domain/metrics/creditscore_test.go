package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cleanInput() ScoringInput {
	return ScoringInput{
		Utilization:           10,
		OnTimeFraction:        1,
		HasCreditCard:         true,
		OldestCardAgeYears:    10,
		ReferenceKindsPresent: 4,
	}
}

func TestBureauApproximationScore(t *testing.T) {
	scorer := NewBureauApproximation()

	t.Run("clean profile scores the maximum", func(t *testing.T) {
		assert.Equal(t, MaxCreditScore, scorer.Score(cleanInput()))
	})

	t.Run("utilization over threshold deducts three points per percent", func(t *testing.T) {
		in := cleanInput()
		in.Utilization = 50
		// (50 - 30) * 3 = 60
		assert.Equal(t, 790, scorer.Score(in))
	})

	t.Run("utilization deduction is capped", func(t *testing.T) {
		in := cleanInput()
		in.Utilization = 200
		// (200 - 30) * 3 = 510, capped at 255
		assert.Equal(t, 595, scorer.Score(in))
	})

	t.Run("young credit history deducts per missing year", func(t *testing.T) {
		in := cleanInput()
		in.OldestCardAgeYears = 2
		// (7 - 2) * 18 = 90
		assert.Equal(t, 760, scorer.Score(in))
	})

	t.Run("no credit card skips the age deduction", func(t *testing.T) {
		in := cleanInput()
		in.HasCreditCard = false
		in.OldestCardAgeYears = 0
		assert.Equal(t, MaxCreditScore, scorer.Score(in))
	})

	t.Run("thin credit mix deducts proportionally", func(t *testing.T) {
		in := cleanInput()
		in.ReferenceKindsPresent = 1
		// (1 - 1/4) * 85 = 63.75
		assert.Equal(t, 786, scorer.Score(in))
	})

	t.Run("missed payments deduct up to the payment history weight", func(t *testing.T) {
		in := cleanInput()
		in.OnTimeFraction = 0.5
		// 0.5 * 297.5 = 148.75
		assert.Equal(t, 701, scorer.Score(in))
	})

	t.Run("worst case clamps to the floor", func(t *testing.T) {
		in := ScoringInput{
			Utilization:           400,
			OnTimeFraction:        0,
			HasCreditCard:         true,
			OldestCardAgeYears:    0,
			ReferenceKindsPresent: 0,
		}
		assert.Equal(t, MinCreditScore, scorer.Score(in))
	})

	t.Run("out of range fractions are clamped before weighting", func(t *testing.T) {
		in := cleanInput()
		in.OnTimeFraction = 1.7
		assert.Equal(t, MaxCreditScore, scorer.Score(in))

		in.OnTimeFraction = -3
		in.ReferenceKindsPresent = 9
		got := scorer.Score(in)
		assert.GreaterOrEqual(t, got, MinCreditScore)
		assert.LessOrEqual(t, got, MaxCreditScore)
	})
}
