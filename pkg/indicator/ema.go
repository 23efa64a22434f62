package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// EMA calculates the Exponential Moving Average
// EMA = (Price - Previous EMA) * Multiplier + Previous EMA
// Multiplier = 2 / (Period + 1)
// The first price seeds the EMA directly, so there is no warm-up period.
type EMA struct {
	period     int
	name       string
	multiplier float64
	value      float64
	seeded     bool
	processed  int
}

// NewEMA creates a new EMA calculator with the specified period
func NewEMA(period int) (*EMA, error) {
	if period < 1 {
		return nil, errInvalidPeriod("ema", period)
	}

	return &EMA{
		period:     period,
		name:       fmt.Sprintf("ema_%d", period),
		multiplier: 2.0 / float64(period+1),
	}, nil
}

// Name returns the indicator name
func (e *EMA) Name() string {
	return e.name
}

// UpdatePrice feeds a new price into the EMA and returns the smoothed value
func (e *EMA) UpdatePrice(price float64) float64 {
	e.processed++

	if !e.seeded {
		e.value = price
		e.seeded = true
		return e.value
	}

	e.value = (price-e.value)*e.multiplier + e.value

	// Handle NaN/Inf from pathological inputs
	if math.IsNaN(e.value) || math.IsInf(e.value, 0) {
		e.value = price
	}

	return e.value
}

// Update processes a new quote (close price) and returns the smoothed value
func (e *EMA) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(e.name)
	}
	return e.UpdatePrice(q.Close), nil
}

// Value returns the current EMA value
func (e *EMA) Value() (float64, error) {
	if !e.seeded {
		return 0, errNotReady(e.name)
	}
	return e.value, nil
}

// Reset clears the EMA state
func (e *EMA) Reset() {
	e.value = 0
	e.seeded = false
	e.processed = 0
}

// IsReady returns true once the EMA has been seeded
func (e *EMA) IsReady() bool {
	return e.seeded
}

// WindowSize returns 1 (EMA can start immediately)
func (e *EMA) WindowSize() int {
	return 1
}

// QuotesProcessed returns the number of quotes processed
func (e *EMA) QuotesProcessed() int {
	return e.processed
}
