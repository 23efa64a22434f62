package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// SMA calculates the Simple Moving Average
// SMA = Sum of prices over period / period
// During warm-up (fewer than period prices seen) the output is the average of
// the prices seen so far. A period of 1 degenerates to a pass-through.
type SMA struct {
	period    int
	name      string
	prices    []float64 // Rolling window of prices
	sum       float64   // Running sum of the window
	processed int
}

// NewSMA creates a new SMA calculator with the specified period
func NewSMA(period int) (*SMA, error) {
	if period < 1 {
		return nil, errInvalidPeriod("sma", period)
	}

	return &SMA{
		period: period,
		name:   fmt.Sprintf("sma_%d", period),
		prices: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (s *SMA) Name() string {
	return s.name
}

// UpdatePrice pushes a new price into the window and returns the current average
func (s *SMA) UpdatePrice(price float64) float64 {
	s.prices = append(s.prices, price)
	s.sum += price
	s.processed++

	// Evict the oldest price once the window is full
	if len(s.prices) > s.period {
		s.sum -= s.prices[0]
		copy(s.prices, s.prices[1:])
		s.prices = s.prices[:len(s.prices)-1]
	}

	return s.sum / float64(len(s.prices))
}

// Update processes a new quote (close price) and returns the current average
func (s *SMA) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(s.name)
	}
	return s.UpdatePrice(q.Close), nil
}

// Value returns the current SMA value
func (s *SMA) Value() (float64, error) {
	if s.processed == 0 {
		return 0, errNotReady(s.name)
	}
	return s.sum / float64(len(s.prices)), nil
}

// Reset clears the SMA state
func (s *SMA) Reset() {
	s.prices = s.prices[:0]
	s.sum = 0
	s.processed = 0
}

// IsReady returns true once the window is full
func (s *SMA) IsReady() bool {
	return len(s.prices) >= s.period
}

// WindowSize returns the period (number of quotes required)
func (s *SMA) WindowSize() int {
	return s.period
}

// QuotesProcessed returns the number of quotes processed
func (s *SMA) QuotesProcessed() int {
	return s.processed
}
