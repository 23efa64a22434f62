package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// MoneyFlowIndex calculates the Money Flow Index: a volume-weighted RSI over
// typical prices. Raw money flow = typical price * volume; flows are positive
// when the typical price rises, negative when it falls, and discarded when
// flat or on the first quote.
// MFI = 100 * positive flow / (positive flow + negative flow)
//
// Numeric policy: when both flow sums are zero (no movement, or no volume)
// the output is the neutral 50; a window with gains only yields 100.
type MoneyFlowIndex struct {
	period      int
	name        string
	posFlows    []float64 // Rolling window of positive raw money flows
	negFlows    []float64 // Rolling window of negative raw money flows
	posSum      float64
	negSum      float64
	prevTypical float64
	hasPrev     bool
	value       float64
	processed   int
}

// NewMoneyFlowIndex creates a new MFI calculator with the specified period (typically 14)
func NewMoneyFlowIndex(period int) (*MoneyFlowIndex, error) {
	if period < 1 {
		return nil, errInvalidPeriod("mfi", period)
	}

	return &MoneyFlowIndex{
		period:   period,
		name:     fmt.Sprintf("mfi_%d", period),
		posFlows: make([]float64, 0, period),
		negFlows: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (m *MoneyFlowIndex) Name() string {
	return m.name
}

// UpdateQuote processes a new high/low/close/volume observation and returns the MFI
func (m *MoneyFlowIndex) UpdateQuote(q models.HighLowCloseVolumer) float64 {
	typical := (q.HighPrice() + q.LowPrice() + q.ClosePrice()) / 3.0
	rawFlow := typical * q.TradedVolume()

	var pos, neg float64
	if m.hasPrev {
		if typical > m.prevTypical {
			pos = rawFlow
		} else if typical < m.prevTypical {
			neg = rawFlow
		}
	}
	m.prevTypical = typical
	m.hasPrev = true
	m.processed++

	m.posSum += pos
	m.posFlows = append(m.posFlows, pos)
	if len(m.posFlows) > m.period {
		m.posSum -= m.posFlows[0]
		copy(m.posFlows, m.posFlows[1:])
		m.posFlows = m.posFlows[:len(m.posFlows)-1]
	}

	m.negSum += neg
	m.negFlows = append(m.negFlows, neg)
	if len(m.negFlows) > m.period {
		m.negSum -= m.negFlows[0]
		copy(m.negFlows, m.negFlows[1:])
		m.negFlows = m.negFlows[:len(m.negFlows)-1]
	}

	total := m.posSum + m.negSum
	if total <= 0 {
		m.value = 50.0
	} else {
		m.value = 100.0 * m.posSum / total
	}
	return m.value
}

// Update processes a new quote and returns the MFI
func (m *MoneyFlowIndex) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(m.name)
	}
	return m.UpdateQuote(q), nil
}

// Value returns the current MFI
func (m *MoneyFlowIndex) Value() (float64, error) {
	if m.processed == 0 {
		return 0, errNotReady(m.name)
	}
	return m.value, nil
}

// Reset clears the state
func (m *MoneyFlowIndex) Reset() {
	m.posFlows = m.posFlows[:0]
	m.negFlows = m.negFlows[:0]
	m.posSum = 0
	m.negSum = 0
	m.prevTypical = 0
	m.hasPrev = false
	m.value = 0
	m.processed = 0
}

// IsReady returns true once a full window of flows has been collected
func (m *MoneyFlowIndex) IsReady() bool {
	return m.processed > m.period
}

// WindowSize returns the number of quotes required (period + 1 for first flow)
func (m *MoneyFlowIndex) WindowSize() int {
	return m.period + 1
}

// QuotesProcessed returns the number of quotes processed
func (m *MoneyFlowIndex) QuotesProcessed() int {
	return m.processed
}
