package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// RSI calculates the Relative Strength Index
// RSI = 100 * avg gain / (avg gain + avg loss)
// which is algebraically 100 - 100/(1 + RS) with RS = avg gain / avg loss.
// Gains and losses are smoothed with an EMA over the period.
//
// Numeric policy: the first update has no previous price, so the delta is
// defined as 0 and the output is the neutral 50. When the smoothed loss is 0
// and the smoothed gain is positive the output is 100. The output is always
// clamped to [0, 100].
type RSI struct {
	period    int
	name      string
	gainEMA   *EMA
	lossEMA   *EMA
	prevPrice float64
	hasPrev   bool
	processed int
}

// NewRSI creates a new RSI calculator with the specified period (typically 14)
func NewRSI(period int) (*RSI, error) {
	if period < 1 {
		return nil, errInvalidPeriod("rsi", period)
	}

	gainEMA, err := NewEMA(period)
	if err != nil {
		return nil, err
	}
	lossEMA, err := NewEMA(period)
	if err != nil {
		return nil, err
	}

	return &RSI{
		period:  period,
		name:    fmt.Sprintf("rsi_%d", period),
		gainEMA: gainEMA,
		lossEMA: lossEMA,
	}, nil
}

// Name returns the indicator name
func (r *RSI) Name() string {
	return r.name
}

// UpdatePrice feeds a new price and returns the current RSI
func (r *RSI) UpdatePrice(price float64) float64 {
	var gain, loss float64
	if r.hasPrev {
		change := price - r.prevPrice
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
	}

	r.prevPrice = price
	r.hasPrev = true
	r.processed++

	avgGain := r.gainEMA.UpdatePrice(gain)
	avgLoss := r.lossEMA.UpdatePrice(loss)

	return calculateRSI(avgGain, avgLoss)
}

// calculateRSI computes the RSI value from smoothed gain/loss averages
func calculateRSI(avgGain, avgLoss float64) float64 {
	total := avgGain + avgLoss
	if total == 0 {
		return 50.0 // No movement yet, neutral
	}

	rsi := 100.0 * avgGain / total
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return 50.0
	}

	return math.Max(0.0, math.Min(100.0, rsi))
}

// Update processes a new quote (close price) and returns the current RSI
func (r *RSI) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(r.name)
	}
	return r.UpdatePrice(q.Close), nil
}

// Value returns the current RSI value
func (r *RSI) Value() (float64, error) {
	if !r.hasPrev {
		return 0, errNotReady(r.name)
	}
	avgGain, _ := r.gainEMA.Value()
	avgLoss, _ := r.lossEMA.Value()
	return calculateRSI(avgGain, avgLoss), nil
}

// Reset clears the RSI state
func (r *RSI) Reset() {
	r.gainEMA.Reset()
	r.lossEMA.Reset()
	r.prevPrice = 0
	r.hasPrev = false
	r.processed = 0
}

// IsReady returns true once enough deltas have been smoothed
func (r *RSI) IsReady() bool {
	return r.processed > r.period
}

// WindowSize returns the number of quotes required (period + 1 for first change)
func (r *RSI) WindowSize() int {
	return r.period + 1
}

// QuotesProcessed returns the number of quotes processed
func (r *RSI) QuotesProcessed() int {
	return r.processed
}
