package quickpos

import (
	"errors"
	"fmt"
)

// Sentinel errors for boundary conditions. Pricing and routing decisions
// never fail; these only surface while loading configuration or catalogs.
var (
	// ErrMissingConfig indicates no configuration file could be found.
	ErrMissingConfig = errors.New("configuration file not found")

	// ErrInvalidConfig indicates the configuration was read but holds values
	// that cannot be used (negative quantity bound, unknown language...).
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError wraps a failure while loading or validating configuration.
type ConfigError struct {
	Op  string // Operation that failed (e.g., "read", "decode", "validate")
	Key string // Offending key, empty when the whole file is at fault
	Err error  // Underlying error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("quickpos: config %s %s: %v", e.Op, e.Key, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("quickpos: config %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("quickpos: config %s", e.Op)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error.
func NewConfigError(op, key string, err error) *ConfigError {
	return &ConfigError{Op: op, Key: key, Err: err}
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
