package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Vitesh21/konix/internal/domain"
)

// Deviation computes the population standard deviation of a price sequence:
// arithmetic mean, variance divided by N (not N-1), square root.
//
// The result is rounded to 2 decimal places for presentation. Rounding goes
// through decimal to avoid binary float representation artifacts at the
// cutoff digit.
//
// Returns domain.ErrNoPrices for an empty sequence; callers must guard
// against invoking it with no data.
func Deviation(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, domain.ErrNoPrices
	}

	mean := Mean(prices)

	var sumSq float64
	for _, p := range prices {
		diff := p - mean
		sumSq += diff * diff
	}
	variance := sumSq / float64(len(prices))

	return round2(math.Sqrt(variance)), nil
}

// Mean computes the arithmetic mean of prices. Zero for an empty sequence.
func Mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
