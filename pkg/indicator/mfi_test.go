package indicator

import (
	"errors"
	"testing"
)

func TestMoneyFlowIndex_New(t *testing.T) {
	mfi, err := NewMoneyFlowIndex(14)
	if err != nil {
		t.Fatalf("Failed to create MoneyFlowIndex: %v", err)
	}
	if mfi.Name() != "mfi_14" {
		t.Errorf("Expected name 'mfi_14', got '%s'", mfi.Name())
	}

	var cfgErr *ConfigError
	if _, err := NewMoneyFlowIndex(0); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for period 0, got %v", err)
	}
}

func TestMoneyFlowIndex_FlowAccounting(t *testing.T) {
	mfi, _ := NewMoneyFlowIndex(3)

	// high == low == close makes typical price == close
	val, _ := mfi.Update(quoteHLCV(0, 10, 10, 10, 100))
	if val != 50.0 {
		t.Errorf("First MFI = %g, want neutral 50", val)
	}

	// Rise: positive flow 11*200 = 2200
	val, _ = mfi.Update(quoteHLCV(1, 11, 11, 11, 200))
	if val != 100.0 {
		t.Errorf("All-positive MFI = %g, want 100", val)
	}

	// Fall: negative flow 10*100 = 1000 -> 100*2200/3200
	val, _ = mfi.Update(quoteHLCV(2, 10, 10, 10, 100))
	if val != 68.75 {
		t.Errorf("MFI = %g, want 68.75", val)
	}

	// Flat typical price: flow discarded, value unchanged
	val, _ = mfi.Update(quoteHLCV(3, 10, 10, 10, 500))
	if val != 68.75 {
		t.Errorf("MFI after flat quote = %g, want 68.75", val)
	}

	// Another fall; the 2200 positive flow has left the 3-quote window
	val, _ = mfi.Update(quoteHLCV(4, 9, 9, 9, 100))
	if val != 0.0 {
		t.Errorf("MFI = %g, want 0 (no positive flow left)", val)
	}
}

func TestMoneyFlowIndex_FlatMarketNeutral(t *testing.T) {
	mfi, _ := NewMoneyFlowIndex(5)

	for i := 0; i < 10; i++ {
		val, _ := mfi.Update(quoteHLCV(i, 100, 100, 100, 1000))
		if val != 50.0 {
			t.Errorf("Flat-market MFI at %d = %g, want 50", i, val)
		}
	}
}

func TestMoneyFlowIndex_ZeroVolumeNeutral(t *testing.T) {
	mfi, _ := NewMoneyFlowIndex(5)

	val, _ := mfi.Update(quoteHLCV(0, 10, 10, 10, 0))
	if val != 50.0 {
		t.Errorf("Zero-volume MFI = %g, want 50", val)
	}
	val, _ = mfi.Update(quoteHLCV(1, 11, 11, 11, 0))
	if val != 50.0 {
		t.Errorf("Zero-volume MFI = %g, want 50", val)
	}
}

func TestMoneyFlowIndex_Reset(t *testing.T) {
	mfi, _ := NewMoneyFlowIndex(3)

	_, _ = mfi.Update(quoteHLCV(0, 10, 10, 10, 100))
	_, _ = mfi.Update(quoteHLCV(1, 11, 11, 11, 200))

	mfi.Reset()
	if mfi.IsReady() {
		t.Error("MoneyFlowIndex should not be ready after reset")
	}
	val, _ := mfi.Update(quoteHLCV(0, 12, 12, 12, 300))
	if val != 50.0 {
		t.Errorf("First MFI after reset = %g, want 50", val)
	}
}
