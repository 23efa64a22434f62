package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestBollingerBands_New(t *testing.T) {
	bb, err := NewBollingerBands(20, 2.0)
	if err != nil {
		t.Fatalf("Failed to create BollingerBands: %v", err)
	}
	if bb.Name() != "bb_20_2.0" {
		t.Errorf("Expected name 'bb_20_2.0', got '%s'", bb.Name())
	}

	var cfgErr *ConfigError
	if _, err := NewBollingerBands(0, 2.0); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for period 0, got %v", err)
	}
	if _, err := NewBollingerBands(20, 0); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for zero multiplier, got %v", err)
	}
}

func TestBollingerBands_FullWindow(t *testing.T) {
	bb, _ := NewBollingerBands(3, 2.0)

	bb.UpdatePrice(2.0)
	bb.UpdatePrice(4.0)
	bands := bb.UpdatePrice(6.0)

	// mean 4, sample stddev sqrt(((2-4)^2+(0)^2+(2)^2)/2) = 2
	if bands.Middle != 4.0 {
		t.Errorf("Middle = %g, want 4", bands.Middle)
	}
	if bands.Upper != 8.0 {
		t.Errorf("Upper = %g, want 8", bands.Upper)
	}
	if bands.Lower != 0.0 {
		t.Errorf("Lower = %g, want 0", bands.Lower)
	}
}

func TestBollingerBands_MiddleMatchesSMA(t *testing.T) {
	bb, _ := NewBollingerBands(5, 2.0)
	sma, _ := NewSMA(5)

	prices := []float64{100, 102.5, 99, 107, 95.25, 101, 103, 98.5, 96, 104.75}
	for i, p := range prices {
		bands := bb.UpdatePrice(p)
		want, _ := sma.Update(quoteAt(i, p))
		if bands.Middle != want {
			t.Errorf("At %d: middle %g != SMA %g", i, bands.Middle, want)
		}
	}
}

func TestBollingerBands_SymmetricBands(t *testing.T) {
	bb, _ := NewBollingerBands(4, 2.5)

	prices := []float64{10, 12, 9, 14, 11, 8}
	for i, p := range prices {
		bands := bb.UpdatePrice(p)
		above := bands.Upper - bands.Middle
		below := bands.Middle - bands.Lower
		if math.Abs(above-below) > 1e-9 {
			t.Errorf("At %d: bands not symmetric: +%g / -%g", i, above, below)
		}
	}
}

func TestBollingerBands_SingleAndConstantPrices(t *testing.T) {
	bb, _ := NewBollingerBands(5, 2.0)

	// One price: zero deviation, all bands collapse
	bands := bb.UpdatePrice(50.0)
	if bands.Upper != 50.0 || bands.Middle != 50.0 || bands.Lower != 50.0 {
		t.Errorf("Single-price bands = %+v, want all 50", bands)
	}

	// Constant prices keep the bands collapsed
	for i := 0; i < 10; i++ {
		bands = bb.UpdatePrice(50.0)
	}
	if bands.Upper != 50.0 || bands.Lower != 50.0 {
		t.Errorf("Constant-price bands = %+v, want collapsed at 50", bands)
	}
}

func TestBollingerBands_Reset(t *testing.T) {
	bb, _ := NewBollingerBands(3, 2.0)

	bb.UpdatePrice(10.0)
	bb.UpdatePrice(20.0)

	bb.Reset()
	if bb.IsReady() {
		t.Error("BollingerBands should not be ready after reset")
	}
	bands := bb.UpdatePrice(30.0)
	if bands.Middle != 30.0 {
		t.Errorf("Middle after reset = %g, want 30", bands.Middle)
	}
}
