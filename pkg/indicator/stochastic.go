package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// FastStochastic calculates the fast stochastic oscillator %K
// %K = 100 * (close - lowest low) / (highest high - lowest low)
// over the last period quotes.
//
// Numeric policy: when the window range is zero (flat market, highest ==
// lowest) the output is 50.
type FastStochastic struct {
	period    int
	name      string
	min       *Minimum
	max       *Maximum
	value     float64
	processed int
}

// NewFastStochastic creates a new fast stochastic oscillator with the specified period
func NewFastStochastic(period int) (*FastStochastic, error) {
	if period < 1 {
		return nil, errInvalidPeriod("stoch_fast", period)
	}

	min, err := NewMinimum(period)
	if err != nil {
		return nil, err
	}
	max, err := NewMaximum(period)
	if err != nil {
		return nil, err
	}

	return &FastStochastic{
		period: period,
		name:   fmt.Sprintf("stoch_fast_%d", period),
		min:    min,
		max:    max,
	}, nil
}

// Name returns the indicator name
func (f *FastStochastic) Name() string {
	return f.name
}

// UpdateQuote processes a new high/low/close observation and returns %K
func (f *FastStochastic) UpdateQuote(q models.HighLowCloser) float64 {
	lowest := f.min.UpdatePrice(q.LowPrice())
	highest := f.max.UpdatePrice(q.HighPrice())
	return f.computeK(q.ClosePrice(), lowest, highest)
}

// UpdatePrice feeds a single-series price, using it as high, low and close
func (f *FastStochastic) UpdatePrice(price float64) float64 {
	lowest := f.min.UpdatePrice(price)
	highest := f.max.UpdatePrice(price)
	return f.computeK(price, lowest, highest)
}

func (f *FastStochastic) computeK(close, lowest, highest float64) float64 {
	f.processed++

	if highest == lowest {
		f.value = 50.0
	} else {
		f.value = 100.0 * (close - lowest) / (highest - lowest)
	}
	return f.value
}

// Update processes a new quote and returns %K
func (f *FastStochastic) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(f.name)
	}
	return f.UpdateQuote(q), nil
}

// Value returns the current %K
func (f *FastStochastic) Value() (float64, error) {
	if f.processed == 0 {
		return 0, errNotReady(f.name)
	}
	return f.value, nil
}

// Reset clears the state
func (f *FastStochastic) Reset() {
	f.min.Reset()
	f.max.Reset()
	f.value = 0
	f.processed = 0
}

// IsReady returns true once the min/max window is full
func (f *FastStochastic) IsReady() bool {
	return f.min.IsReady()
}

// WindowSize returns the period
func (f *FastStochastic) WindowSize() int {
	return f.period
}

// QuotesProcessed returns the number of quotes processed
func (f *FastStochastic) QuotesProcessed() int {
	return f.processed
}

// SlowStochastic smooths the fast stochastic %K with an EMA, producing the
// slow %K line. The smoothing stage inherits the fast oscillator's zero-range
// policy (a flat window yields 50 before smoothing).
type SlowStochastic struct {
	name     string
	fast     *FastStochastic
	smoother *EMA
}

// NewSlowStochastic creates a slow stochastic oscillator: a fast stochastic
// over stochPeriod quotes smoothed with an EMA over smoothPeriod values.
func NewSlowStochastic(stochPeriod, smoothPeriod int) (*SlowStochastic, error) {
	if smoothPeriod < 1 {
		return nil, errInvalidPeriod("stoch_slow", smoothPeriod)
	}

	fast, err := NewFastStochastic(stochPeriod)
	if err != nil {
		return nil, err
	}
	smoother, err := NewEMA(smoothPeriod)
	if err != nil {
		return nil, err
	}

	return &SlowStochastic{
		name:     fmt.Sprintf("stoch_slow_%d_%d", stochPeriod, smoothPeriod),
		fast:     fast,
		smoother: smoother,
	}, nil
}

// Name returns the indicator name
func (s *SlowStochastic) Name() string {
	return s.name
}

// UpdateQuote processes a new high/low/close observation and returns the smoothed %K
func (s *SlowStochastic) UpdateQuote(q models.HighLowCloser) float64 {
	return s.smoother.UpdatePrice(s.fast.UpdateQuote(q))
}

// UpdatePrice feeds a single-series price, using it as high, low and close
func (s *SlowStochastic) UpdatePrice(price float64) float64 {
	return s.smoother.UpdatePrice(s.fast.UpdatePrice(price))
}

// Update processes a new quote and returns the smoothed %K
func (s *SlowStochastic) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(s.name)
	}
	return s.UpdateQuote(q), nil
}

// Value returns the current smoothed %K
func (s *SlowStochastic) Value() (float64, error) {
	v, err := s.smoother.Value()
	if err != nil {
		return 0, errNotReady(s.name)
	}
	return v, nil
}

// Reset clears the state
func (s *SlowStochastic) Reset() {
	s.fast.Reset()
	s.smoother.Reset()
}

// IsReady returns true once the fast window is full
func (s *SlowStochastic) IsReady() bool {
	return s.fast.IsReady()
}

// WindowSize returns the fast stochastic period
func (s *SlowStochastic) WindowSize() int {
	return s.fast.WindowSize()
}

// QuotesProcessed returns the number of quotes processed
func (s *SlowStochastic) QuotesProcessed() int {
	return s.fast.QuotesProcessed()
}
