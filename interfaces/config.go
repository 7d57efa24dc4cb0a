package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxHandles indicates a non-positive handle limit
	ErrInvalidMaxHandles = errors.New("max handles must be positive")

	// ErrInvalidCacheSize indicates a negative dataset cache size
	ErrInvalidCacheSize = errors.New("dataset cache size cannot be negative")
)

// BindingConfig holds configuration for the binding and its reader library
type BindingConfig struct {
	// UseSimulation determines whether to use the simulated or the file-backed library
	UseSimulation bool

	// MaxHandles bounds the number of live handles
	MaxHandles int

	// DatasetCacheSize bounds the number of decoded datasets shared between
	// readers of the same file; 0 disables sharing
	DatasetCacheSize int

	// LogLevel is a logrus level name
	LogLevel string
}

// Validate checks that the configuration values are usable.
func (c *BindingConfig) Validate() error {
	if c.MaxHandles <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxHandles, c.MaxHandles)
	}
	if c.DatasetCacheSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheSize, c.DatasetCacheSize)
	}
	return nil
}
