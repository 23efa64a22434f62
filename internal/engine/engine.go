package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mohamedkhairy/ta-stream/internal/models"
	"github.com/mohamedkhairy/ta-stream/pkg/logger"
)

// Snapshot is the published view of one symbol's indicators after a quote
type Snapshot struct {
	Symbol    string             `json:"symbol"`
	Timestamp time.Time          `json:"timestamp"`
	Close     float64            `json:"close"`
	Values    map[string]float64 `json:"values"`
}

// OnSnapshot is called after each processed quote with the ready indicator values
type OnSnapshot func(snapshot *Snapshot)

// Engine routes finalized quotes to per-symbol calculator sets
type Engine struct {
	registry           *Registry
	requiredIndicators map[string]bool // empty set means compute everything registered
	symbolStates       map[string]*SymbolState
	onSnapshot         OnSnapshot
	mu                 sync.RWMutex
	ctx                context.Context
	cancel             context.CancelFunc
}

// NewEngine creates a new indicator engine backed by a registry
func NewEngine(registry *Registry) *Engine {
	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		registry:           registry,
		requiredIndicators: make(map[string]bool),
		symbolStates:       make(map[string]*SymbolState),
		ctx:                ctx,
		cancel:             cancel,
	}
}

// SetRequiredIndicators restricts which registered indicators get computed.
// An empty map means all of them.
func (e *Engine) SetRequiredIndicators(required map[string]bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requiredIndicators = required
}

// SetOnSnapshot sets the callback invoked after each processed quote
func (e *Engine) SetOnSnapshot(callback OnSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSnapshot = callback
}

// ProcessQuote validates a quote, updates the symbol's calculators and emits
// a snapshot of the ready values.
func (e *Engine) ProcessQuote(q *models.Quote) error {
	if q == nil {
		return fmt.Errorf("quote cannot be nil")
	}

	if err := q.Validate(); err != nil {
		logger.QuotesRejected.WithLabelValues("validation").Inc()
		return fmt.Errorf("invalid quote: %w", err)
	}

	start := time.Now()

	e.mu.Lock()
	state, exists := e.symbolStates[q.Symbol]
	if !exists {
		state = e.newSymbolState(q.Symbol)
		e.symbolStates[q.Symbol] = state
		logger.TrackedSymbols.Set(float64(len(e.symbolStates)))
	}
	callback := e.onSnapshot
	e.mu.Unlock()

	if err := state.Update(q); err != nil {
		return err
	}

	logger.UpdateDuration.WithLabelValues(q.Symbol).Observe(time.Since(start).Seconds())

	if callback != nil {
		values := state.GetAllValues()
		if len(values) > 0 {
			for name := range values {
				logger.IndicatorUpdates.WithLabelValues(name).Inc()
			}
			callback(&Snapshot{
				Symbol:    q.Symbol,
				Timestamp: q.Timestamp,
				Close:     q.Close,
				Values:    values,
			})
		}
	}

	return nil
}

// newSymbolState builds the calculator set for a new symbol. Caller holds e.mu.
func (e *Engine) newSymbolState(symbol string) *SymbolState {
	state := NewSymbolState(symbol)

	allIndicators := len(e.requiredIndicators) == 0
	for _, name := range e.registry.ListAvailable() {
		if !allIndicators && !e.requiredIndicators[name] {
			continue
		}

		factory, exists := e.registry.GetFactory(name)
		if !exists {
			continue
		}

		calc, err := factory()
		if err != nil {
			logger.Warn("Failed to create calculator",
				logger.String("name", name),
				logger.String("symbol", symbol),
				logger.ErrorField(err),
			)
			continue
		}
		state.AddCalculator(calc)
	}

	return state
}

// GetIndicators returns all ready indicator values for a symbol
func (e *Engine) GetIndicators(symbol string) (map[string]float64, error) {
	e.mu.RLock()
	state, exists := e.symbolStates[symbol]
	e.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("symbol %s not found", symbol)
	}
	return state.GetAllValues(), nil
}

// GetAllSymbols returns the symbols being tracked
func (e *Engine) GetAllSymbols() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	symbols := make([]string, 0, len(e.symbolStates))
	for symbol := range e.symbolStates {
		symbols = append(symbols, symbol)
	}
	return symbols
}

// Registry returns the indicator registry backing this engine
func (e *Engine) Registry() *Registry {
	return e.registry
}

// GetSymbolCount returns the number of tracked symbols
func (e *Engine) GetSymbolCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.symbolStates)
}

// ResetSymbol clears the calculator state of one symbol
func (e *Engine) ResetSymbol(symbol string) error {
	e.mu.RLock()
	state, exists := e.symbolStates[symbol]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf("symbol %s not found", symbol)
	}
	state.Reset()
	return nil
}

// Stop stops the engine
func (e *Engine) Stop() {
	e.cancel()
}

// Context returns the engine's context
func (e *Engine) Context() context.Context {
	return e.ctx
}
