package indicator

import (
	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// Calculator is the streaming contract shared by every indicator.
// Update consumes one quote and returns the indicator's current value; it is a
// pure function of (internal state, input) and runs in O(1) or O(window) time,
// never proportional to the full history. Indicators are not safe for
// concurrent use; each instance belongs to a single caller.
type Calculator interface {
	// Name returns the unique name of this indicator (e.g., "rsi_14", "ema_20")
	Name() string

	// Update processes a new quote and updates the indicator state.
	// During warm-up it returns the indicator's documented warm-up value
	// (see each type's doc), never an error.
	Update(q *models.Quote) (float64, error)

	// Value returns the value of the last Update.
	// Returns 0 and an error before the first Update.
	Value() (float64, error)

	// Reset restores the exact post-construction state, as if no quotes
	// had been processed. Idempotent.
	Reset()

	// IsReady returns true once the warm-up period is complete and the
	// value no longer depends on a partially filled window
	IsReady() bool
}

// WindowedCalculator extends Calculator for indicators that require a window of quotes
type WindowedCalculator interface {
	Calculator

	// WindowSize returns the number of quotes required to fill the window
	WindowSize() int

	// QuotesProcessed returns the number of quotes processed so far
	QuotesProcessed() int
}
