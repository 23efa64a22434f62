package indicator

import (
	"errors"
	"testing"
)

// Compile-time checks that every indicator satisfies the streaming contract
var (
	_ WindowedCalculator = (*SMA)(nil)
	_ Calculator         = (*EMA)(nil)
	_ WindowedCalculator = (*Minimum)(nil)
	_ WindowedCalculator = (*Maximum)(nil)
	_ Calculator         = (*TrueRange)(nil)
	_ WindowedCalculator = (*ATR)(nil)
	_ WindowedCalculator = (*RSI)(nil)
	_ WindowedCalculator = (*FastStochastic)(nil)
	_ WindowedCalculator = (*SlowStochastic)(nil)
	_ Calculator         = (*MACD)(nil)
	_ WindowedCalculator = (*BollingerBands)(nil)
	_ WindowedCalculator = (*RateOfChange)(nil)
	_ WindowedCalculator = (*EfficiencyRatio)(nil)
	_ WindowedCalculator = (*MoneyFlowIndex)(nil)
	_ Calculator         = (*OnBalanceVolume)(nil)
	_ WindowedCalculator = (*TechanCalculator)(nil)
)

func allCalculators() map[string]func() Calculator {
	return map[string]func() Calculator{
		"sma": func() Calculator { c, _ := NewSMA(5); return c },
		"ema": func() Calculator { c, _ := NewEMA(5); return c },
		"min": func() Calculator { c, _ := NewMinimum(5); return c },
		"max": func() Calculator { c, _ := NewMaximum(5); return c },
		"tr":  func() Calculator { return NewTrueRange() },
		"atr": func() Calculator { c, _ := NewATR(5); return c },
		"rsi": func() Calculator { c, _ := NewRSI(5); return c },
		"stoch_fast": func() Calculator {
			c, _ := NewFastStochastic(5)
			return c
		},
		"stoch_slow": func() Calculator {
			c, _ := NewSlowStochastic(5, 3)
			return c
		},
		"macd": func() Calculator { c, _ := NewMACD(3, 7, 5); return c },
		"bb":   func() Calculator { c, _ := NewBollingerBands(5, 2.0); return c },
		"roc":  func() Calculator { c, _ := NewRateOfChange(5); return c },
		"er":   func() Calculator { c, _ := NewEfficiencyRatio(5); return c },
		"mfi":  func() Calculator { c, _ := NewMoneyFlowIndex(5); return c },
		"obv":  func() Calculator { return NewOnBalanceVolume() },
	}
}

// resetEquivalenceSequence mixes trends, gaps and flat quotes
func resetEquivalenceQuotes() []struct {
	high, low, close, volume float64
} {
	return []struct {
		high, low, close, volume float64
	}{
		{101, 99, 100, 1000},
		{103, 100, 102.5, 1500},
		{102, 98, 99, 800},
		{99, 95, 96.25, 2000},
		{104, 96, 103, 500},
		{103, 103, 103, 0},
		{110, 102, 108, 3000},
		{108, 104, 105.5, 1200},
	}
}

func TestCalculators_ResetEquivalence(t *testing.T) {
	for name, newCalc := range allCalculators() {
		t.Run(name, func(t *testing.T) {
			used := newCalc()
			fresh := newCalc()

			quotes := resetEquivalenceQuotes()

			// Burn through one pass, then reset
			for i, q := range quotes {
				if _, err := used.Update(quoteHLCV(i, q.high, q.low, q.close, q.volume)); err != nil {
					t.Fatalf("Update failed: %v", err)
				}
			}
			used.Reset()

			// The reset instance must now track a fresh one exactly
			for i, q := range quotes {
				got, err := used.Update(quoteHLCV(i, q.high, q.low, q.close, q.volume))
				if err != nil {
					t.Fatalf("Update after reset failed: %v", err)
				}
				want, err := fresh.Update(quoteHLCV(i, q.high, q.low, q.close, q.volume))
				if err != nil {
					t.Fatalf("Fresh update failed: %v", err)
				}
				if got != want {
					t.Errorf("At %d: reset instance %g != fresh instance %g", i, got, want)
				}
			}
		})
	}
}

func TestCalculators_ZeroPeriodRejected(t *testing.T) {
	constructors := map[string]func() error{
		"sma":        func() error { _, err := NewSMA(0); return err },
		"ema":        func() error { _, err := NewEMA(0); return err },
		"min":        func() error { _, err := NewMinimum(0); return err },
		"max":        func() error { _, err := NewMaximum(0); return err },
		"atr":        func() error { _, err := NewATR(0); return err },
		"rsi":        func() error { _, err := NewRSI(0); return err },
		"stoch_fast": func() error { _, err := NewFastStochastic(0); return err },
		"stoch_slow": func() error { _, err := NewSlowStochastic(14, 0); return err },
		"macd":       func() error { _, err := NewMACD(0, 26, 9); return err },
		"bb":         func() error { _, err := NewBollingerBands(0, 2.0); return err },
		"roc":        func() error { _, err := NewRateOfChange(0); return err },
		"er":         func() error { _, err := NewEfficiencyRatio(0); return err },
		"mfi":        func() error { _, err := NewMoneyFlowIndex(0); return err },
		"techan_sma": func() error { _, err := NewTechanSMA(0); return err },
		"techan_rsi": func() error { _, err := NewTechanRSI(0); return err },
	}

	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			err := construct()
			if err == nil {
				t.Fatal("Expected error for zero period")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestCalculators_NilQuoteRejected(t *testing.T) {
	for name, newCalc := range allCalculators() {
		t.Run(name, func(t *testing.T) {
			if _, err := newCalc().Update(nil); err == nil {
				t.Error("Expected error for nil quote")
			}
		})
	}
}
