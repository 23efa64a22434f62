package indicator

import (
	"errors"
	"fmt"
)

// ErrNoQuotes is returned by Value before the first Update.
var ErrNoQuotes = errors.New("no quotes processed")

// ConfigError is the only error kind raised at construction time. Update
// never fails for numeric reasons; division-by-zero cases are defined
// fallback values on each indicator.
type ConfigError struct {
	Indicator string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Indicator, e.Reason)
}

// errInvalidPeriod builds the ConfigError for a non-positive window/period.
func errInvalidPeriod(indicator string, period int) error {
	return &ConfigError{
		Indicator: indicator,
		Reason:    fmt.Sprintf("period must be at least 1, got %d", period),
	}
}

func errNotReady(name string) error {
	return fmt.Errorf("%s not ready: %w", name, ErrNoQuotes)
}

func errNilQuote(name string) error {
	return fmt.Errorf("%s: quote cannot be nil", name)
}
