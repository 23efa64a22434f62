package engine

import (
	"sync"
	"time"

	"github.com/mohamedkhairy/ta-stream/internal/models"
	"github.com/mohamedkhairy/ta-stream/pkg/indicator"
)

// SymbolState holds the live calculators for a single symbol
type SymbolState struct {
	symbol      string
	mu          sync.RWMutex
	calculators map[string]indicator.Calculator
	quotesSeen  int64
	lastQuote   time.Time
}

// NewSymbolState creates an empty state for a symbol
func NewSymbolState(symbol string) *SymbolState {
	return &SymbolState{
		symbol:      symbol,
		calculators: make(map[string]indicator.Calculator),
	}
}

// AddCalculator adds a calculator to this symbol's state
func (s *SymbolState) AddCalculator(calc indicator.Calculator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculators[calc.Name()] = calc
}

// RemoveCalculator removes a calculator from this symbol's state
func (s *SymbolState) RemoveCalculator(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.calculators, name)
}

// Update feeds a quote to every calculator. Quotes for other symbols are
// ignored.
func (s *SymbolState) Update(q *models.Quote) error {
	if q == nil || q.Symbol != s.symbol {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, calc := range s.calculators {
		_, _ = calc.Update(q)
	}

	s.quotesSeen++
	s.lastQuote = q.Timestamp
	return nil
}

// GetValue retrieves the current value of one indicator
func (s *SymbolState) GetValue(name string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calc, exists := s.calculators[name]
	if !exists {
		return 0, nil
	}
	return calc.Value()
}

// GetAllValues returns the values of every calculator that has completed its
// warm-up window.
func (s *SymbolState) GetAllValues() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]float64)
	for name, calc := range s.calculators {
		if calc.IsReady() {
			if val, err := calc.Value(); err == nil {
				values[name] = val
			}
		}
	}
	return values
}

// QuotesSeen returns the number of quotes processed for this symbol
func (s *SymbolState) QuotesSeen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quotesSeen
}

// LastQuoteTime returns the timestamp of the most recent quote
func (s *SymbolState) LastQuoteTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastQuote
}

// Reset clears all calculator state
func (s *SymbolState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, calc := range s.calculators {
		calc.Reset()
	}
	s.quotesSeen = 0
	s.lastQuote = time.Time{}
}

// Rehydrate resets the state and replays historical quotes in order. Used
// when the engine restarts and rebuilds state from stored history.
func (s *SymbolState) Rehydrate(quotes []*models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, calc := range s.calculators {
		calc.Reset()
	}
	s.quotesSeen = 0
	s.lastQuote = time.Time{}

	for _, q := range quotes {
		if q == nil || q.Symbol != s.symbol {
			continue
		}
		for _, calc := range s.calculators {
			_, _ = calc.Update(q)
		}
		s.quotesSeen++
		s.lastQuote = q.Timestamp
	}

	return nil
}
