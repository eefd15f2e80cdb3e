package pricing

import (
	"math"
	"sort"

	"bidhouse-backend/internal/models"
)

// ScoredGuess pairs a demo guess with its distance from the average comp
// price.
type ScoredGuess struct {
	Bid        models.Bid
	Difference float64
}

// ScoreGuesses ranks demo guesses by closeness to avgPrice. The winner is
// the guess with the smallest absolute difference; on a tie the earliest
// guess wins, so callers must pass guesses ordered by creation time
// ascending. The returned slice is sorted by ascending difference, winner is
// nil when there are no guesses.
func ScoreGuesses(avgPrice float64, guesses []models.Bid) (scored []ScoredGuess, winner *models.Bid, winnerDiff float64) {
	scored = make([]ScoredGuess, 0, len(guesses))
	best := math.Inf(1)
	for i := range guesses {
		diff := math.Abs(guesses[i].Amount - avgPrice)
		scored = append(scored, ScoredGuess{Bid: guesses[i], Difference: diff})
		if diff < best {
			best = diff
			winner = &guesses[i]
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Difference < scored[j].Difference
	})
	if winner == nil {
		return scored, nil, 0
	}
	return scored, winner, best
}
