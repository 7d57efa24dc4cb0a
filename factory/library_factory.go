package factory

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
	"github.com/opd-ai/daffbind/real"
	"github.com/opd-ai/daffbind/testing"
	"github.com/sirupsen/logrus"
)

// Validation constants for configuration bounds checking.
const (
	// MinMaxHandles is the minimum allowed handle limit.
	MinMaxHandles = 1
	// MinDatasetCacheSize is the minimum allowed dataset cache size (disabled).
	MinDatasetCacheSize = 0
	// MaxDatasetCacheSize is the maximum allowed dataset cache size.
	MaxDatasetCacheSize = 1024
	// DefaultDatasetCacheSize is the number of decoded datasets kept by default.
	DefaultDatasetCacheSize = 8
)

// LibraryFactory creates reader library implementations based on configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type LibraryFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.BindingConfig
}

// TestConfigOption is a functional option for customizing test simulation configuration.
type TestConfigOption func(*interfaces.BindingConfig)

// NewLibraryFactory creates a new factory with default configuration
func NewLibraryFactory() *LibraryFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &LibraryFactory{
		defaultConfig: defaultConfig,
	}
}

// createDefaultConfig initializes the default binding configuration.
//
// Default Value Rationale:
//   - UseSimulation: false - datasets come from disk unless simulation is explicitly enabled
//   - MaxHandles: limits.DefaultMaxHandles
//   - DatasetCacheSize: 8 - enough for a handful of files opened by many handles
//   - LogLevel: "warn"
func createDefaultConfig() *interfaces.BindingConfig {
	return &interfaces.BindingConfig{
		UseSimulation:    false,
		MaxHandles:       limits.DefaultMaxHandles,
		DatasetCacheSize: DefaultDatasetCacheSize,
		LogLevel:         "warn",
	}
}

// applyEnvironmentOverrides updates configuration based on environment variables.
// It checks for DAFF_* environment variables and overrides defaults if valid values are found.
func applyEnvironmentOverrides(config *interfaces.BindingConfig) {
	parseSimulationSetting(config)
	parseMaxHandlesSetting(config)
	parseCacheSizeSetting(config)
	parseLogLevelSetting(config)
}

// parseSimulationSetting updates the UseSimulation config from DAFF_USE_SIMULATION environment variable.
func parseSimulationSetting(config *interfaces.BindingConfig) {
	if useSimStr := os.Getenv("DAFF_USE_SIMULATION"); useSimStr != "" {
		useSim, err := strconv.ParseBool(useSimStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseSimulationSetting",
				"env_var":     "DAFF_USE_SIMULATION",
				"value":       useSimStr,
				"error":       err.Error(),
				"using_value": config.UseSimulation,
			}).Warn("Failed to parse DAFF_USE_SIMULATION environment variable, using default")
			return
		}
		config.UseSimulation = useSim
	}
}

// parseIntSetting reads an integer environment variable bounded by [lo, hi].
// It returns false and logs a warning if the variable is set but unusable.
func parseIntSetting(function, envVar string, lo, hi, current int) (int, bool) {
	str := os.Getenv(envVar)
	if str == "" {
		return current, false
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    function,
			"env_var":     envVar,
			"value":       str,
			"error":       err.Error(),
			"using_value": current,
		}).Warn("Failed to parse " + envVar + " environment variable, using default")
		return current, false
	}
	if v < lo || v > hi {
		logrus.WithFields(logrus.Fields{
			"function":    function,
			"env_var":     envVar,
			"value":       v,
			"min":         lo,
			"max":         hi,
			"using_value": current,
		}).Warn(envVar + " value out of bounds, using default")
		return current, false
	}
	return v, true
}

// parseMaxHandlesSetting updates MaxHandles from DAFF_MAX_HANDLES, bounded by
// [MinMaxHandles, limits.MaxHandles].
func parseMaxHandlesSetting(config *interfaces.BindingConfig) {
	if v, ok := parseIntSetting("parseMaxHandlesSetting", "DAFF_MAX_HANDLES", MinMaxHandles, limits.MaxHandles, config.MaxHandles); ok {
		config.MaxHandles = v
	}
}

// parseCacheSizeSetting updates DatasetCacheSize from DAFF_DATASET_CACHE_SIZE, bounded by
// [MinDatasetCacheSize, MaxDatasetCacheSize].
func parseCacheSizeSetting(config *interfaces.BindingConfig) {
	if v, ok := parseIntSetting("parseCacheSizeSetting", "DAFF_DATASET_CACHE_SIZE", MinDatasetCacheSize, MaxDatasetCacheSize, config.DatasetCacheSize); ok {
		config.DatasetCacheSize = v
	}
}

// parseLogLevelSetting updates LogLevel from DAFF_LOG_LEVEL if it names a logrus level.
func parseLogLevelSetting(config *interfaces.BindingConfig) {
	if levelStr := os.Getenv("DAFF_LOG_LEVEL"); levelStr != "" {
		if _, err := logrus.ParseLevel(levelStr); err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseLogLevelSetting",
				"env_var":     "DAFF_LOG_LEVEL",
				"value":       levelStr,
				"error":       err.Error(),
				"using_value": config.LogLevel,
			}).Warn("Failed to parse DAFF_LOG_LEVEL environment variable, using default")
			return
		}
		config.LogLevel = levelStr
	}
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(config *interfaces.BindingConfig) {
	logrus.WithFields(logrus.Fields{
		"function":           "NewLibraryFactory",
		"use_simulation":     config.UseSimulation,
		"max_handles":        config.MaxHandles,
		"dataset_cache_size": config.DatasetCacheSize,
		"log_level":          config.LogLevel,
	}).Info("Created library factory with configuration")
}

// ConfigureLogging sets the global logrus level from config.LogLevel. An
// empty level leaves logrus unchanged.
func ConfigureLogging(config *interfaces.BindingConfig) error {
	if config.LogLevel == "" {
		return nil
	}
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

// CreateLibrary creates a reader library based on the default configuration
func (f *LibraryFactory) CreateLibrary() (interfaces.ILibrary, error) {
	return f.CreateLibraryWithConfig(nil)
}

// CreateLibraryWithConfig creates a reader library with custom configuration
func (f *LibraryFactory) CreateLibraryWithConfig(config *interfaces.BindingConfig) (interfaces.ILibrary, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid binding configuration: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":           "CreateLibraryWithConfig",
		"use_simulation":     config.UseSimulation,
		"max_handles":        config.MaxHandles,
		"dataset_cache_size": config.DatasetCacheSize,
	}).Info("Creating reader library implementation")

	if config.UseSimulation {
		return testing.NewSimulatedLibrary(config), nil
	}
	return real.NewFileLibrary(config), nil
}

// WithMaxHandles sets a custom handle limit for the test configuration.
func WithMaxHandles(n int) TestConfigOption {
	return func(c *interfaces.BindingConfig) {
		c.MaxHandles = n
	}
}

// WithLogLevel sets the log level for the test configuration.
func WithLogLevel(level string) TestConfigOption {
	return func(c *interfaces.BindingConfig) {
		c.LogLevel = level
	}
}

// CreateSimulationForTesting creates a simulated library specifically for testing.
// Default test configuration uses: MaxHandles=64, DatasetCacheSize=0.
func (f *LibraryFactory) CreateSimulationForTesting(opts ...TestConfigOption) *testing.SimulatedLibrary {
	testConfig := &interfaces.BindingConfig{
		UseSimulation: true,
		MaxHandles:    64,
	}

	for _, opt := range opts {
		opt(testConfig)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "CreateSimulationForTesting",
		"max_handles": testConfig.MaxHandles,
	}).Info("Creating simulation implementation for testing")

	return testing.NewSimulatedLibrary(testConfig)
}

// SwitchToSimulation switches the configuration to use simulation
func (f *LibraryFactory) SwitchToSimulation() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToSimulation",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to simulation mode")

	f.defaultConfig.UseSimulation = true
}

// SwitchToReal switches the configuration to use the file-backed implementation
func (f *LibraryFactory) SwitchToReal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToReal",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to real mode")

	f.defaultConfig.UseSimulation = false
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *LibraryFactory) GetCurrentConfig() *interfaces.BindingConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cfg := *f.defaultConfig
	return &cfg
}

// IsUsingSimulation returns true if the factory is configured for simulation
func (f *LibraryFactory) IsUsingSimulation() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.defaultConfig.UseSimulation
}

// UpdateConfig updates the factory's default configuration
func (f *LibraryFactory) UpdateConfig(config *interfaces.BindingConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":        "UpdateConfig",
		"old_simulation":  f.defaultConfig.UseSimulation,
		"new_simulation":  config.UseSimulation,
		"old_max_handles": f.defaultConfig.MaxHandles,
		"new_max_handles": config.MaxHandles,
	}).Info("Updating factory configuration")

	cfg := *config
	f.defaultConfig = &cfg
	return nil
}
