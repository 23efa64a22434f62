package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// MACDValue is a snapshot of the three MACD lines after an update.
// Histogram is always MACD - Signal.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// MACD calculates Moving Average Convergence Divergence
// MACD line = EMA(fast) - EMA(slow); signal = EMA(signal period) of the MACD
// line; histogram = MACD - signal.
// Update returns the MACD line; Lines returns the full snapshot.
type MACD struct {
	name      string
	fast      *EMA
	slow      *EMA
	signal    *EMA
	last      MACDValue
	processed int
}

// NewMACD creates a new MACD calculator. The fast period must be strictly
// less than the slow period; reversing them is rejected at construction
// rather than silently producing an inverted oscillator.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	if fastPeriod < 1 {
		return nil, errInvalidPeriod("macd", fastPeriod)
	}
	if slowPeriod < 1 {
		return nil, errInvalidPeriod("macd", slowPeriod)
	}
	if signalPeriod < 1 {
		return nil, errInvalidPeriod("macd", signalPeriod)
	}
	if fastPeriod >= slowPeriod {
		return nil, &ConfigError{
			Indicator: "macd",
			Reason: fmt.Sprintf("fast period must be less than slow period, got %d >= %d",
				fastPeriod, slowPeriod),
		}
	}

	fast, err := NewEMA(fastPeriod)
	if err != nil {
		return nil, err
	}
	slow, err := NewEMA(slowPeriod)
	if err != nil {
		return nil, err
	}
	signal, err := NewEMA(signalPeriod)
	if err != nil {
		return nil, err
	}

	return &MACD{
		name:   fmt.Sprintf("macd_%d_%d_%d", fastPeriod, slowPeriod, signalPeriod),
		fast:   fast,
		slow:   slow,
		signal: signal,
	}, nil
}

// Name returns the indicator name
func (m *MACD) Name() string {
	return m.name
}

// UpdatePrice feeds a new price and returns the full MACD snapshot
func (m *MACD) UpdatePrice(price float64) MACDValue {
	macd := m.fast.UpdatePrice(price) - m.slow.UpdatePrice(price)
	signal := m.signal.UpdatePrice(macd)

	m.last = MACDValue{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
	m.processed++
	return m.last
}

// Update processes a new quote (close price) and returns the MACD line
func (m *MACD) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(m.name)
	}
	return m.UpdatePrice(q.Close).MACD, nil
}

// Lines returns the last computed MACD snapshot
func (m *MACD) Lines() MACDValue {
	return m.last
}

// Value returns the current MACD line
func (m *MACD) Value() (float64, error) {
	if m.processed == 0 {
		return 0, errNotReady(m.name)
	}
	return m.last.MACD, nil
}

// Reset clears the state
func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.last = MACDValue{}
	m.processed = 0
}

// IsReady returns true once all three EMAs are seeded
func (m *MACD) IsReady() bool {
	return m.signal.IsReady()
}

// QuotesProcessed returns the number of quotes processed
func (m *MACD) QuotesProcessed() int {
	return m.processed
}
