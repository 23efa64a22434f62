package indicator

import (
	"errors"
	"testing"
)

func TestMACD_NewMACD(t *testing.T) {
	macd, err := NewMACD(12, 26, 9)
	if err != nil {
		t.Fatalf("Failed to create MACD: %v", err)
	}
	if macd.Name() != "macd_12_26_9" {
		t.Errorf("Expected name 'macd_12_26_9', got '%s'", macd.Name())
	}
}

func TestMACD_PeriodOrderingValidated(t *testing.T) {
	var cfgErr *ConfigError

	if _, err := NewMACD(26, 12, 9); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for fast >= slow, got %v", err)
	}
	if _, err := NewMACD(12, 12, 9); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for fast == slow, got %v", err)
	}
	if _, err := NewMACD(0, 26, 9); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for zero fast period, got %v", err)
	}
	if _, err := NewMACD(12, 26, 0); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for zero signal period, got %v", err)
	}
}

func TestMACD_FirstUpdateZero(t *testing.T) {
	macd, _ := NewMACD(12, 26, 9)

	lines := macd.UpdatePrice(100.0)
	if lines.MACD != 0 || lines.Signal != 0 || lines.Histogram != 0 {
		t.Errorf("First update lines = %+v, want all zero (both EMAs seeded)", lines)
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	macd, _ := NewMACD(3, 7, 5)

	prices := []float64{100, 102, 101, 105, 103, 99, 110, 95, 100.5, 101}
	for i, p := range prices {
		lines := macd.UpdatePrice(p)
		if lines.Histogram != lines.MACD-lines.Signal {
			t.Errorf("At %d: histogram %g != macd %g - signal %g",
				i, lines.Histogram, lines.MACD, lines.Signal)
		}
	}
}

func TestMACD_TrendSign(t *testing.T) {
	macd, _ := NewMACD(3, 7, 5)

	// A steady uptrend keeps the fast EMA above the slow EMA
	for i := 0; i < 20; i++ {
		macd.UpdatePrice(100.0 + float64(i))
	}
	if macd.Lines().MACD <= 0 {
		t.Errorf("Uptrend MACD = %g, want > 0", macd.Lines().MACD)
	}
}

func TestMACD_UpdateReturnsMACDLine(t *testing.T) {
	macd, _ := NewMACD(3, 7, 5)

	for i, p := range []float64{100, 104, 98} {
		val, err := macd.Update(quoteAt(i, p))
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if val != macd.Lines().MACD {
			t.Errorf("Update returned %g, want MACD line %g", val, macd.Lines().MACD)
		}
	}
}

func TestMACD_Reset(t *testing.T) {
	macd, _ := NewMACD(3, 7, 5)

	macd.UpdatePrice(100.0)
	macd.UpdatePrice(105.0)

	macd.Reset()
	if macd.IsReady() {
		t.Error("MACD should not be ready after reset")
	}
	lines := macd.UpdatePrice(50.0)
	if lines.MACD != 0 {
		t.Errorf("First MACD after reset = %g, want 0", lines.MACD)
	}
}
