// Package pricing turns stored comparable sales into listing suggestions
// and scores demo-auction guesses.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	discountFactor = decimal.NewFromFloat(0.8)
	roundingStep   = decimal.NewFromInt(5)
)

// SuggestedStartingPrice discounts the mean comp price by 20% and rounds
// down to the nearest multiple of 5. Returns nil when there are no comps;
// a suggestion from no evidence would be noise.
func SuggestedStartingPrice(soldPrices []float64) *int64 {
	if len(soldPrices) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, p := range soldPrices {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(soldPrices))))
	suggested := mean.Mul(discountFactor).Div(roundingStep).Floor().Mul(roundingStep).IntPart()
	return &suggested
}

// AverageCompPrice is the plain mean of the sold prices, 0 when empty. Demo
// scoring treats a comp-less item as having a target value of 0.
func AverageCompPrice(soldPrices []float64) float64 {
	if len(soldPrices) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, p := range soldPrices {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(soldPrices)))).Float64()
	return avg
}
