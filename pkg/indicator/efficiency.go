package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// EfficiencyRatio calculates Kaufman's Efficiency Ratio: the net price change
// over the window divided by the total path length (sum of absolute
// single-step changes).
// The first update and a zero-volatility window both return 1 (a perfectly
// efficient, if motionless, market).
type EfficiencyRatio struct {
	period    int
	name      string
	prices    []float64 // Last period+1 prices
	processed int
	value     float64
}

// NewEfficiencyRatio creates a new Efficiency Ratio calculator with the specified period
func NewEfficiencyRatio(period int) (*EfficiencyRatio, error) {
	if period < 1 {
		return nil, errInvalidPeriod("er", period)
	}

	return &EfficiencyRatio{
		period: period,
		name:   fmt.Sprintf("er_%d", period),
		prices: make([]float64, 0, period+1),
	}, nil
}

// Name returns the indicator name
func (e *EfficiencyRatio) Name() string {
	return e.name
}

// UpdatePrice feeds a new price and returns the current ratio
func (e *EfficiencyRatio) UpdatePrice(price float64) float64 {
	e.prices = append(e.prices, price)
	e.processed++

	if len(e.prices) > e.period+1 {
		copy(e.prices, e.prices[1:])
		e.prices = e.prices[:len(e.prices)-1]
	}

	if len(e.prices) == 1 {
		e.value = 1.0
		return e.value
	}

	net := math.Abs(price - e.prices[0])
	var path float64
	for i := 1; i < len(e.prices); i++ {
		path += math.Abs(e.prices[i] - e.prices[i-1])
	}

	if path == 0 {
		e.value = 1.0
		return e.value
	}

	e.value = net / path
	return e.value
}

// Update processes a new quote (close price) and returns the current ratio
func (e *EfficiencyRatio) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(e.name)
	}
	return e.UpdatePrice(q.Close), nil
}

// Value returns the current ratio
func (e *EfficiencyRatio) Value() (float64, error) {
	if e.processed == 0 {
		return 0, errNotReady(e.name)
	}
	return e.value, nil
}

// Reset clears the state
func (e *EfficiencyRatio) Reset() {
	e.prices = e.prices[:0]
	e.value = 0
	e.processed = 0
}

// IsReady returns true once the full lookback is available
func (e *EfficiencyRatio) IsReady() bool {
	return len(e.prices) > e.period
}

// WindowSize returns the lookback in quotes (period + 1)
func (e *EfficiencyRatio) WindowSize() int {
	return e.period + 1
}

// QuotesProcessed returns the number of quotes processed
func (e *EfficiencyRatio) QuotesProcessed() int {
	return e.processed
}
