package indicator

import (
	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// OnBalanceVolume calculates the cumulative signed volume total: volume is
// added when the close rises, subtracted when it falls, and ignored when the
// close is unchanged. The first quote seeds the total with its own volume.
// OBV holds O(1) state regardless of stream length.
type OnBalanceVolume struct {
	name      string
	total     float64
	prevClose float64
	hasPrev   bool
	processed int
}

// NewOnBalanceVolume creates a new OBV calculator. It has no parameters and
// cannot fail.
func NewOnBalanceVolume() *OnBalanceVolume {
	return &OnBalanceVolume{name: "obv"}
}

// Name returns the indicator name
func (o *OnBalanceVolume) Name() string {
	return o.name
}

// UpdateQuote processes a new close/volume observation and returns the running total
func (o *OnBalanceVolume) UpdateQuote(q models.CloseVolumer) float64 {
	close := q.ClosePrice()
	volume := q.TradedVolume()

	if !o.hasPrev {
		o.total = volume
	} else if close > o.prevClose {
		o.total += volume
	} else if close < o.prevClose {
		o.total -= volume
	}

	o.prevClose = close
	o.hasPrev = true
	o.processed++
	return o.total
}

// Update processes a new quote and returns the running total
func (o *OnBalanceVolume) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(o.name)
	}
	return o.UpdateQuote(q), nil
}

// Value returns the current running total
func (o *OnBalanceVolume) Value() (float64, error) {
	if !o.hasPrev {
		return 0, errNotReady(o.name)
	}
	return o.total, nil
}

// Reset clears the state
func (o *OnBalanceVolume) Reset() {
	o.total = 0
	o.prevClose = 0
	o.hasPrev = false
	o.processed = 0
}

// IsReady returns true after the first quote
func (o *OnBalanceVolume) IsReady() bool {
	return o.hasPrev
}
