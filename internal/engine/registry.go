package engine

import (
	"fmt"
	"sync"

	"github.com/mohamedkhairy/ta-stream/internal/config"
	"github.com/mohamedkhairy/ta-stream/pkg/indicator"
)

// Factory creates a fresh calculator instance for one symbol
type Factory func() (indicator.Calculator, error)

// Metadata describes a registered indicator
type Metadata struct {
	Name        string
	Backend     string // "native" or "techan"
	Description string
	Category    string // "trend", "momentum", "volatility", "volume"
	Parameters  map[string]interface{}
}

// Registry manages the set of indicators the engine computes per symbol
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	metadata  map[string]Metadata
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		metadata:  make(map[string]Metadata),
	}
}

// Register registers an indicator factory under a unique name
func (r *Registry) Register(name string, factory Factory, metadata Metadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("indicator %q already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = metadata
	return nil
}

// GetFactory returns a factory for an indicator
func (r *Registry) GetFactory(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, exists := r.factories[name]
	return factory, exists
}

// ListAvailable returns all registered indicator names
func (r *Registry) ListAvailable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// GetMetadata returns metadata for an indicator
func (r *Registry) GetMetadata(name string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	metadata, exists := r.metadata[name]
	return metadata, exists
}

// GetAllMetadata returns all indicator metadata
func (r *Registry) GetAllMetadata() map[string]Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Metadata, len(r.metadata))
	for name, metadata := range r.metadata {
		result[name] = metadata
	}
	return result
}

// RegisterDefaults registers the standard indicator set with periods from the
// engine configuration.
func RegisterDefaults(registry *Registry, cfg config.EngineConfig) error {
	type entry struct {
		name     string
		factory  Factory
		metadata Metadata
	}

	entries := []entry{
		{
			name:    fmt.Sprintf("sma_%d", cfg.SMAPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewSMA(cfg.SMAPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Simple Moving Average (%d period)", cfg.SMAPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.SMAPeriod},
			},
		},
		{
			name:    fmt.Sprintf("ema_%d", cfg.EMAPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewEMA(cfg.EMAPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Exponential Moving Average (%d period)", cfg.EMAPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.EMAPeriod},
			},
		},
		{
			name:    fmt.Sprintf("min_%d", cfg.StochPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewMinimum(cfg.StochPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Rolling low (%d period)", cfg.StochPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.StochPeriod},
			},
		},
		{
			name:    fmt.Sprintf("max_%d", cfg.StochPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewMaximum(cfg.StochPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Rolling high (%d period)", cfg.StochPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.StochPeriod},
			},
		},
		{
			name:    "tr",
			factory: func() (indicator.Calculator, error) { return indicator.NewTrueRange(), nil },
			metadata: Metadata{
				Backend:     "native",
				Description: "True Range",
				Category:    "volatility",
			},
		},
		{
			name:    fmt.Sprintf("atr_%d", cfg.ATRPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewATR(cfg.ATRPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Average True Range (%d period)", cfg.ATRPeriod),
				Category:    "volatility",
				Parameters:  map[string]interface{}{"period": cfg.ATRPeriod},
			},
		},
		{
			name:    fmt.Sprintf("rsi_%d", cfg.RSIPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewRSI(cfg.RSIPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Relative Strength Index (%d period)", cfg.RSIPeriod),
				Category:    "momentum",
				Parameters:  map[string]interface{}{"period": cfg.RSIPeriod},
			},
		},
		{
			name:    fmt.Sprintf("stoch_fast_%d", cfg.StochPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewFastStochastic(cfg.StochPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Fast Stochastic %%K (%d period)", cfg.StochPeriod),
				Category:    "momentum",
				Parameters:  map[string]interface{}{"period": cfg.StochPeriod},
			},
		},
		{
			name: fmt.Sprintf("stoch_slow_%d_%d", cfg.StochPeriod, cfg.StochSmoothing),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewSlowStochastic(cfg.StochPeriod, cfg.StochSmoothing)
			},
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Slow Stochastic %%D (%d, %d)", cfg.StochPeriod, cfg.StochSmoothing),
				Category:    "momentum",
				Parameters: map[string]interface{}{
					"period":    cfg.StochPeriod,
					"smoothing": cfg.StochSmoothing,
				},
			},
		},
		{
			name: fmt.Sprintf("macd_%d_%d_%d", cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
			},
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("MACD (%d, %d, %d)", cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
				Category:    "trend",
				Parameters: map[string]interface{}{
					"fast_period":   cfg.MACDFast,
					"slow_period":   cfg.MACDSlow,
					"signal_period": cfg.MACDSignal,
				},
			},
		},
		{
			name: fmt.Sprintf("bb_%d_%.1f", cfg.BollingerPeriod, cfg.BollingerWidth),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewBollingerBands(cfg.BollingerPeriod, cfg.BollingerWidth)
			},
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Bollinger Bands (%d period, %.1f std dev)", cfg.BollingerPeriod, cfg.BollingerWidth),
				Category:    "volatility",
				Parameters: map[string]interface{}{
					"period":     cfg.BollingerPeriod,
					"multiplier": cfg.BollingerWidth,
				},
			},
		},
		{
			name:    fmt.Sprintf("roc_%d", cfg.ROCPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewRateOfChange(cfg.ROCPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Rate of Change (%d period)", cfg.ROCPeriod),
				Category:    "momentum",
				Parameters:  map[string]interface{}{"period": cfg.ROCPeriod},
			},
		},
		{
			name: fmt.Sprintf("er_%d", cfg.EfficiencyPeriod),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewEfficiencyRatio(cfg.EfficiencyPeriod)
			},
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Kaufman Efficiency Ratio (%d period)", cfg.EfficiencyPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.EfficiencyPeriod},
			},
		},
		{
			name:    fmt.Sprintf("mfi_%d", cfg.MFIPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewMoneyFlowIndex(cfg.MFIPeriod) },
			metadata: Metadata{
				Backend:     "native",
				Description: fmt.Sprintf("Money Flow Index (%d period)", cfg.MFIPeriod),
				Category:    "volume",
				Parameters:  map[string]interface{}{"period": cfg.MFIPeriod},
			},
		},
		{
			name:    "obv",
			factory: func() (indicator.Calculator, error) { return indicator.NewOnBalanceVolume(), nil },
			metadata: Metadata{
				Backend:     "native",
				Description: "On-Balance Volume",
				Category:    "volume",
			},
		},
		{
			name:    fmt.Sprintf("techan_sma_%d", cfg.SMAPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewTechanSMA(cfg.SMAPeriod) },
			metadata: Metadata{
				Backend:     "techan",
				Description: fmt.Sprintf("Simple Moving Average via techan (%d period)", cfg.SMAPeriod),
				Category:    "trend",
				Parameters:  map[string]interface{}{"period": cfg.SMAPeriod},
			},
		},
		{
			name:    fmt.Sprintf("techan_rsi_%d", cfg.RSIPeriod),
			factory: func() (indicator.Calculator, error) { return indicator.NewTechanRSI(cfg.RSIPeriod) },
			metadata: Metadata{
				Backend:     "techan",
				Description: fmt.Sprintf("Relative Strength Index via techan (%d period)", cfg.RSIPeriod),
				Category:    "momentum",
				Parameters:  map[string]interface{}{"period": cfg.RSIPeriod},
			},
		},
		{
			name: fmt.Sprintf("techan_bb_upper_%d", cfg.BollingerPeriod),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewTechanBollingerUpper(cfg.BollingerPeriod, cfg.BollingerWidth)
			},
			metadata: Metadata{
				Backend:     "techan",
				Description: fmt.Sprintf("Bollinger upper band via techan (%d period)", cfg.BollingerPeriod),
				Category:    "volatility",
				Parameters: map[string]interface{}{
					"period":     cfg.BollingerPeriod,
					"multiplier": cfg.BollingerWidth,
				},
			},
		},
		{
			name: fmt.Sprintf("techan_bb_lower_%d", cfg.BollingerPeriod),
			factory: func() (indicator.Calculator, error) {
				return indicator.NewTechanBollingerLower(cfg.BollingerPeriod, cfg.BollingerWidth)
			},
			metadata: Metadata{
				Backend:     "techan",
				Description: fmt.Sprintf("Bollinger lower band via techan (%d period)", cfg.BollingerPeriod),
				Category:    "volatility",
				Parameters: map[string]interface{}{
					"period":     cfg.BollingerPeriod,
					"multiplier": cfg.BollingerWidth,
				},
			},
		},
	}

	for _, e := range entries {
		e.metadata.Name = e.name
		if err := registry.Register(e.name, e.factory, e.metadata); err != nil {
			return err
		}
	}

	return nil
}
