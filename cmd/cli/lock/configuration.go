package lock

import "time"

const (
	defaultThreadCountConstant = 2
)

// CommandConfiguration captures configuration values for lock-demo.
type CommandConfiguration struct {
	WaitToObtain  time.Duration `mapstructure:"wait_to_obtain"`
	WaitToRelease time.Duration `mapstructure:"wait_to_release"`
	Threads       int           `mapstructure:"threads"`
}

// DefaultCommandConfiguration provides default lock-demo settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Threads: defaultThreadCountConstant}
}

// DefaultConfigurationValues exposes the lock-demo defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".wait_to_obtain":  defaults.WaitToObtain.String(),
		prefix + ".wait_to_release": defaults.WaitToRelease.String(),
		prefix + ".threads":         defaults.Threads,
	}
}

// Sanitize replaces negative waits with zero and non-positive thread counts with the default.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	if sanitized.WaitToObtain < 0 {
		sanitized.WaitToObtain = 0
	}
	if sanitized.WaitToRelease < 0 {
		sanitized.WaitToRelease = 0
	}
	if sanitized.Threads <= 0 {
		sanitized.Threads = defaultThreadCountConstant
	}
	return sanitized
}
