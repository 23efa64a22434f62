package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// ATR calculates the Average True Range: an exponential moving average over
// the True Range series, seeded with the first true range. The smoothing
// constant is the standard 2/(period+1).
type ATR struct {
	period int
	name   string
	tr     *TrueRange
	ema    *EMA
}

// NewATR creates a new ATR calculator with the specified period
func NewATR(period int) (*ATR, error) {
	if period < 1 {
		return nil, errInvalidPeriod("atr", period)
	}

	ema, err := NewEMA(period)
	if err != nil {
		return nil, err
	}

	return &ATR{
		period: period,
		name:   fmt.Sprintf("atr_%d", period),
		tr:     NewTrueRange(),
		ema:    ema,
	}, nil
}

// Name returns the indicator name
func (a *ATR) Name() string {
	return a.name
}

// UpdateQuote processes a new high/low/close observation and returns the smoothed range
func (a *ATR) UpdateQuote(q models.HighLowCloser) float64 {
	return a.ema.UpdatePrice(a.tr.UpdateQuote(q))
}

// Update processes a new quote and returns the smoothed range
func (a *ATR) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(a.name)
	}
	return a.UpdateQuote(q), nil
}

// Value returns the current ATR value
func (a *ATR) Value() (float64, error) {
	v, err := a.ema.Value()
	if err != nil {
		return 0, errNotReady(a.name)
	}
	return v, nil
}

// Reset clears the state
func (a *ATR) Reset() {
	a.tr.Reset()
	a.ema.Reset()
}

// IsReady returns true after the first quote
func (a *ATR) IsReady() bool {
	return a.ema.IsReady()
}

// WindowSize returns the smoothing period
func (a *ATR) WindowSize() int {
	return a.period
}

// QuotesProcessed returns the number of quotes processed
func (a *ATR) QuotesProcessed() int {
	return a.ema.QuotesProcessed()
}
