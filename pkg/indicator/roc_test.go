package indicator

import (
	"errors"
	"testing"
)

func TestRateOfChange_New(t *testing.T) {
	roc, err := NewRateOfChange(9)
	if err != nil {
		t.Fatalf("Failed to create RateOfChange: %v", err)
	}
	if roc.Name() != "roc_9" {
		t.Errorf("Expected name 'roc_9', got '%s'", roc.Name())
	}

	var cfgErr *ConfigError
	if _, err := NewRateOfChange(0); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for period 0, got %v", err)
	}
}

func TestRateOfChange_Sequence(t *testing.T) {
	roc, _ := NewRateOfChange(3)

	inputs := []float64{10.0, 10.4, 10.57, 10.8, 10.9, 10.0}
	expected := []float64{0.0, 4.0, 5.7, 8.0, 4.808, -5.393}

	for i, v := range inputs {
		got := roc.UpdatePrice(v)
		if round3(got) != expected[i] {
			t.Errorf("UpdatePrice(%g) = %g, want %g", v, round3(got), expected[i])
		}
	}
}

func TestRateOfChange_FirstUpdateZero(t *testing.T) {
	roc, _ := NewRateOfChange(2)

	val, err := roc.Update(quoteAt(0, 10.0))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if val != 0.0 {
		t.Errorf("First ROC = %g, want 0", val)
	}
}

func TestRateOfChange_ShortHistoryUsesOldest(t *testing.T) {
	roc, _ := NewRateOfChange(5)

	roc.UpdatePrice(10.0)
	// Only two prices seen: compare against the oldest
	got := roc.UpdatePrice(12.0)
	if got != 20.0 {
		t.Errorf("ROC = %g, want (12-10)/10*100 = 20", got)
	}
}

func TestRateOfChange_Reset(t *testing.T) {
	roc, _ := NewRateOfChange(3)

	roc.UpdatePrice(12.3)
	roc.UpdatePrice(15.0)

	roc.Reset()
	if roc.IsReady() {
		t.Error("RateOfChange should not be ready after reset")
	}

	inputs := []float64{10.0, 10.4, 10.57}
	expected := []float64{0.0, 4.0, 5.7}
	for i, v := range inputs {
		got := roc.UpdatePrice(v)
		if round3(got) != expected[i] {
			t.Errorf("After reset UpdatePrice(%g) = %g, want %g", v, round3(got), expected[i])
		}
	}
}
