package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// BollingerValue is a snapshot of the three bands after an update.
type BollingerValue struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// BollingerBands calculates volatility bands around a simple moving average:
// middle = SMA(period), upper/lower = middle +/- multiplier * stddev, where
// stddev is the sample standard deviation over the same window. During
// warm-up the bands are computed over the window contents so far; a single
// price has zero deviation.
// Update returns the middle band; Bands returns the full snapshot.
type BollingerBands struct {
	period     int
	multiplier float64
	name       string
	sma        *SMA
	last       BollingerValue
	processed  int
}

// NewBollingerBands creates new Bollinger Bands with the specified period and
// standard deviation multiplier (typically 2.0)
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	if period < 1 {
		return nil, errInvalidPeriod("bb", period)
	}
	if multiplier <= 0 {
		return nil, &ConfigError{
			Indicator: "bb",
			Reason:    fmt.Sprintf("multiplier must be positive, got %g", multiplier),
		}
	}

	sma, err := NewSMA(period)
	if err != nil {
		return nil, err
	}

	return &BollingerBands{
		period:     period,
		multiplier: multiplier,
		name:       fmt.Sprintf("bb_%d_%.1f", period, multiplier),
		sma:        sma,
	}, nil
}

// Name returns the indicator name
func (b *BollingerBands) Name() string {
	return b.name
}

// UpdatePrice feeds a new price and returns the full band snapshot
func (b *BollingerBands) UpdatePrice(price float64) BollingerValue {
	middle := b.sma.UpdatePrice(price)
	sigma := sampleStdDev(b.sma.prices, middle)

	b.last = BollingerValue{
		Upper:  middle + b.multiplier*sigma,
		Middle: middle,
		Lower:  middle - b.multiplier*sigma,
	}
	b.processed++
	return b.last
}

// sampleStdDev computes the sample standard deviation of the window around
// the given mean. A window of fewer than 2 values has zero deviation.
func sampleStdDev(window []float64, mean float64) float64 {
	n := len(window)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range window {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// Update processes a new quote (close price) and returns the middle band
func (b *BollingerBands) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(b.name)
	}
	return b.UpdatePrice(q.Close).Middle, nil
}

// Bands returns the last computed band snapshot
func (b *BollingerBands) Bands() BollingerValue {
	return b.last
}

// Value returns the current middle band
func (b *BollingerBands) Value() (float64, error) {
	if b.processed == 0 {
		return 0, errNotReady(b.name)
	}
	return b.last.Middle, nil
}

// Reset clears the state
func (b *BollingerBands) Reset() {
	b.sma.Reset()
	b.last = BollingerValue{}
	b.processed = 0
}

// IsReady returns true once the window is full
func (b *BollingerBands) IsReady() bool {
	return b.sma.IsReady()
}

// WindowSize returns the period
func (b *BollingerBands) WindowSize() int {
	return b.period
}

// QuotesProcessed returns the number of quotes processed
func (b *BollingerBands) QuotesProcessed() int {
	return b.processed
}
