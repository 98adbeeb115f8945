package calculation

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel every ConfigurationError unwraps to.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports reference data or parameters that cannot be
// projected at all. It is raised before any ledger row is produced.
type ConfigurationError struct {
	Source string // e.g. "base COI table", "charge schedule"
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(source, field, reason string) error {
	return &ConfigurationError{Source: source, Field: field, Reason: reason}
}
