package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// Minimum tracks the lowest value over the last period inputs.
// Quote updates feed the low price; UpdatePrice feeds an arbitrary series.
// During warm-up the minimum is taken over the values seen so far.
type Minimum struct {
	period    int
	name      string
	window    []float64
	processed int
}

// NewMinimum creates a new rolling minimum with the specified period
func NewMinimum(period int) (*Minimum, error) {
	if period < 1 {
		return nil, errInvalidPeriod("min", period)
	}

	return &Minimum{
		period: period,
		name:   fmt.Sprintf("min_%d", period),
		window: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (m *Minimum) Name() string {
	return m.name
}

// UpdatePrice pushes a new value and returns the window minimum
func (m *Minimum) UpdatePrice(price float64) float64 {
	m.window = append(m.window, price)
	m.processed++

	if len(m.window) > m.period {
		copy(m.window, m.window[1:])
		m.window = m.window[:len(m.window)-1]
	}

	min := m.window[0]
	for _, v := range m.window[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Update processes a new quote (low price) and returns the window minimum
func (m *Minimum) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(m.name)
	}
	return m.UpdatePrice(q.Low), nil
}

// Value returns the current window minimum
func (m *Minimum) Value() (float64, error) {
	if len(m.window) == 0 {
		return 0, errNotReady(m.name)
	}
	min := m.window[0]
	for _, v := range m.window[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Reset clears the window
func (m *Minimum) Reset() {
	m.window = m.window[:0]
	m.processed = 0
}

// IsReady returns true once the window is full
func (m *Minimum) IsReady() bool {
	return len(m.window) >= m.period
}

// WindowSize returns the period
func (m *Minimum) WindowSize() int {
	return m.period
}

// QuotesProcessed returns the number of quotes processed
func (m *Minimum) QuotesProcessed() int {
	return m.processed
}

// Maximum tracks the highest value over the last period inputs.
// Quote updates feed the high price; UpdatePrice feeds an arbitrary series.
type Maximum struct {
	period    int
	name      string
	window    []float64
	processed int
}

// NewMaximum creates a new rolling maximum with the specified period
func NewMaximum(period int) (*Maximum, error) {
	if period < 1 {
		return nil, errInvalidPeriod("max", period)
	}

	return &Maximum{
		period: period,
		name:   fmt.Sprintf("max_%d", period),
		window: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (m *Maximum) Name() string {
	return m.name
}

// UpdatePrice pushes a new value and returns the window maximum
func (m *Maximum) UpdatePrice(price float64) float64 {
	m.window = append(m.window, price)
	m.processed++

	if len(m.window) > m.period {
		copy(m.window, m.window[1:])
		m.window = m.window[:len(m.window)-1]
	}

	max := m.window[0]
	for _, v := range m.window[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Update processes a new quote (high price) and returns the window maximum
func (m *Maximum) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(m.name)
	}
	return m.UpdatePrice(q.High), nil
}

// Value returns the current window maximum
func (m *Maximum) Value() (float64, error) {
	if len(m.window) == 0 {
		return 0, errNotReady(m.name)
	}
	max := m.window[0]
	for _, v := range m.window[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// Reset clears the window
func (m *Maximum) Reset() {
	m.window = m.window[:0]
	m.processed = 0
}

// IsReady returns true once the window is full
func (m *Maximum) IsReady() bool {
	return len(m.window) >= m.period
}

// WindowSize returns the period
func (m *Maximum) WindowSize() int {
	return m.period
}

// QuotesProcessed returns the number of quotes processed
func (m *Maximum) QuotesProcessed() int {
	return m.processed
}
