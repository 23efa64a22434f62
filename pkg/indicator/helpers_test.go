package indicator

import (
	"math"
	"time"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

var testStart = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

// quoteAt builds a close-only quote i minutes into the test session
func quoteAt(i int, close float64) *models.Quote {
	return &models.Quote{
		Symbol:    "AAPL",
		Timestamp: testStart.Add(time.Duration(i) * time.Minute),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1000,
	}
}

// quoteHLCV builds a full quote i minutes into the test session
func quoteHLCV(i int, high, low, close, volume float64) *models.Quote {
	return &models.Quote{
		Symbol:    "AAPL",
		Timestamp: testStart.Add(time.Duration(i) * time.Minute),
		Open:      close,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}
}

// round3 rounds to three decimal places for comparing smoothed outputs
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
