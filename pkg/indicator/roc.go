package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// RateOfChange calculates the percent change versus the price period quotes ago
// ROC = (price - price n back) / price n back * 100
// Until the window holds period+1 prices the comparison price is the oldest
// seen, so the first update returns 0. A zero comparison price also yields 0
// rather than dividing by zero.
type RateOfChange struct {
	period    int
	name      string
	prices    []float64 // Last period+1 prices
	value     float64
	processed int
}

// NewRateOfChange creates a new ROC calculator with the specified period
func NewRateOfChange(period int) (*RateOfChange, error) {
	if period < 1 {
		return nil, errInvalidPeriod("roc", period)
	}

	return &RateOfChange{
		period: period,
		name:   fmt.Sprintf("roc_%d", period),
		prices: make([]float64, 0, period+1),
	}, nil
}

// Name returns the indicator name
func (r *RateOfChange) Name() string {
	return r.name
}

// UpdatePrice feeds a new price and returns the percent change
func (r *RateOfChange) UpdatePrice(price float64) float64 {
	r.prices = append(r.prices, price)
	r.processed++

	if len(r.prices) > r.period+1 {
		copy(r.prices, r.prices[1:])
		r.prices = r.prices[:len(r.prices)-1]
	}

	initial := r.prices[0]
	if len(r.prices) == 1 || initial == 0 {
		r.value = 0
		return r.value
	}

	r.value = (price - initial) / initial * 100.0
	return r.value
}

// Update processes a new quote (close price) and returns the percent change
func (r *RateOfChange) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(r.name)
	}
	return r.UpdatePrice(q.Close), nil
}

// Value returns the current percent change
func (r *RateOfChange) Value() (float64, error) {
	if r.processed == 0 {
		return 0, errNotReady(r.name)
	}
	return r.value, nil
}

// Reset clears the state
func (r *RateOfChange) Reset() {
	r.prices = r.prices[:0]
	r.value = 0
	r.processed = 0
}

// IsReady returns true once the full lookback is available
func (r *RateOfChange) IsReady() bool {
	return len(r.prices) > r.period
}

// WindowSize returns the lookback in quotes (period + 1)
func (r *RateOfChange) WindowSize() int {
	return r.period + 1
}

// QuotesProcessed returns the number of quotes processed
func (r *RateOfChange) QuotesProcessed() int {
	return r.processed
}
