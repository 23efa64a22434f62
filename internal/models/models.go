package models

import (
	"time"
)

// Quote represents a single finalized market data observation (an OHLCV bar).
// A Quote is immutable once published; indicators only read it during Update.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Validate validates a Quote
func (q *Quote) Validate() error {
	if q.Symbol == "" {
		return ErrInvalidSymbol
	}
	if q.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if q.High < q.Low {
		return ErrInvalidQuote
	}
	if q.Volume < 0 {
		return ErrInvalidVolume
	}
	return nil
}

// Capability interfaces let an indicator depend on only the fields it reads.
// Quote implements all of them; callers with their own bar types only need to
// implement the group an indicator asks for.

// ClosePricer exposes the closing price of an observation.
type ClosePricer interface {
	ClosePrice() float64
}

// HighLow exposes the high/low range of an observation.
type HighLow interface {
	HighPrice() float64
	LowPrice() float64
}

// HighLowCloser combines the range and closing price.
type HighLowCloser interface {
	HighLow
	ClosePricer
}

// HighLowCloseVolumer adds traded volume to the range and close.
type HighLowCloseVolumer interface {
	HighLowCloser
	TradedVolume() float64
}

// CloseVolumer exposes the closing price and traded volume.
type CloseVolumer interface {
	ClosePricer
	TradedVolume() float64
}

func (q *Quote) ClosePrice() float64 { return q.Close }

func (q *Quote) HighPrice() float64 { return q.High }

func (q *Quote) LowPrice() float64 { return q.Low }

func (q *Quote) TradedVolume() float64 { return q.Volume }
