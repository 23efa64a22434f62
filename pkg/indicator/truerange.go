package indicator

import (
	"math"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// TrueRange calculates the True Range
// TR = max(high - low, |high - prev close|, |low - prev close|)
// For the first quote there is no previous close, so TR = high - low.
type TrueRange struct {
	name      string
	prevClose float64
	hasPrev   bool
	value     float64
	processed int
}

// NewTrueRange creates a new True Range calculator. It has no parameters and
// cannot fail.
func NewTrueRange() *TrueRange {
	return &TrueRange{name: "tr"}
}

// Name returns the indicator name
func (t *TrueRange) Name() string {
	return t.name
}

// UpdateQuote processes a new high/low/close observation and returns the true range
func (t *TrueRange) UpdateQuote(q models.HighLowCloser) float64 {
	high := q.HighPrice()
	low := q.LowPrice()

	tr := high - low
	if t.hasPrev {
		tr = math.Max(tr, math.Max(
			math.Abs(high-t.prevClose),
			math.Abs(low-t.prevClose),
		))
	}

	t.prevClose = q.ClosePrice()
	t.hasPrev = true
	t.value = tr
	t.processed++
	return tr
}

// Update processes a new quote and returns the true range
func (t *TrueRange) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(t.name)
	}
	return t.UpdateQuote(q), nil
}

// Value returns the last true range
func (t *TrueRange) Value() (float64, error) {
	if !t.hasPrev {
		return 0, errNotReady(t.name)
	}
	return t.value, nil
}

// Reset clears the state
func (t *TrueRange) Reset() {
	t.prevClose = 0
	t.hasPrev = false
	t.value = 0
	t.processed = 0
}

// IsReady returns true after the first quote
func (t *TrueRange) IsReady() bool {
	return t.hasPrev
}
