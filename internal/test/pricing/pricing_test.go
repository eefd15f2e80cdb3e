package pricing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/pricing"
)

func TestSuggestedStartingPrice(t *testing.T) {
	// mean 150, discounted 120, already a multiple of 5
	price := pricing.SuggestedStartingPrice([]float64{100, 150, 200})
	if assert.NotNil(t, price) {
		assert.Equal(t, int64(120), *price)
	}

	// mean 99, discounted 79.2, floored to 75
	price = pricing.SuggestedStartingPrice([]float64{99, 99, 99})
	if assert.NotNil(t, price) {
		assert.Equal(t, int64(75), *price)
	}

	// single comp
	price = pricing.SuggestedStartingPrice([]float64{10})
	if assert.NotNil(t, price) {
		assert.Equal(t, int64(5), *price)
	}
}

func TestSuggestedStartingPrice_NoComps(t *testing.T) {
	assert.Nil(t, pricing.SuggestedStartingPrice(nil))
	assert.Nil(t, pricing.SuggestedStartingPrice([]float64{}))
}

func TestSuggestedStartingPrice_FloatSums(t *testing.T) {
	// 0.1+0.2-style sums stay exact under decimal arithmetic: mean 100.1,
	// discounted 80.08, floored to 80.
	price := pricing.SuggestedStartingPrice([]float64{100.1, 100.1, 100.1})
	if assert.NotNil(t, price) {
		assert.Equal(t, int64(80), *price)
	}
}

func TestAverageCompPrice(t *testing.T) {
	assert.Equal(t, 150.0, pricing.AverageCompPrice([]float64{100, 150, 200}))
	assert.Equal(t, 0.0, pricing.AverageCompPrice(nil))
}

func guess(amount float64, createdAt time.Time) models.Bid {
	return models.Bid{
		BidID:     uuid.New(),
		Amount:    amount,
		CreatedAt: createdAt,
	}
}

func TestScoreGuesses_ClosestWins(t *testing.T) {
	base := time.Now()
	guesses := []models.Bid{
		guess(50, base),
		guess(140, base.Add(time.Minute)),
		guess(300, base.Add(2*time.Minute)),
	}

	scored, winner, diff := pricing.ScoreGuesses(150, guesses)

	if assert.NotNil(t, winner) {
		assert.Equal(t, 140.0, winner.Amount)
	}
	assert.Equal(t, 10.0, diff)
	assert.Len(t, scored, 3)
	assert.Equal(t, 140.0, scored[0].Bid.Amount)
	assert.Equal(t, 50.0, scored[1].Bid.Amount)
	assert.Equal(t, 300.0, scored[2].Bid.Amount)
}

func TestScoreGuesses_EarliestWinsTies(t *testing.T) {
	base := time.Now()
	// 140 and 160 are both 10 off the target of 150. The guesses arrive in
	// creation order, so the earlier one must win.
	guesses := []models.Bid{
		guess(160, base),
		guess(140, base.Add(time.Minute)),
	}

	_, winner, diff := pricing.ScoreGuesses(150, guesses)

	if assert.NotNil(t, winner) {
		assert.Equal(t, 160.0, winner.Amount)
	}
	assert.Equal(t, 10.0, diff)
}

func TestScoreGuesses_NoGuesses(t *testing.T) {
	scored, winner, diff := pricing.ScoreGuesses(150, nil)

	assert.Empty(t, scored)
	assert.Nil(t, winner)
	assert.Equal(t, 0.0, diff)
}

func TestScoreGuesses_ZeroTargetFromNoComps(t *testing.T) {
	base := time.Now()
	guesses := []models.Bid{
		guess(5, base),
		guess(20, base.Add(time.Minute)),
	}

	_, winner, _ := pricing.ScoreGuesses(0, guesses)

	if assert.NotNil(t, winner) {
		assert.Equal(t, 5.0, winner.Amount)
	}
}
