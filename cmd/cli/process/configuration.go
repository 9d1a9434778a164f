package process

import (
	"strings"

	"github.com/temirov/procsync/internal/execshell"
)

// ShellConfiguration captures configuration values for the shell command.
type ShellConfiguration struct {
	Interpreter string `mapstructure:"interpreter"`
}

// DefaultShellConfiguration provides default settings for the shell command.
func DefaultShellConfiguration() ShellConfiguration {
	return ShellConfiguration{Interpreter: execshell.DefaultShellInterpreterPath}
}

// DefaultConfigurationValues exposes the shell defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + ".interpreter": execshell.DefaultShellInterpreterPath,
	}
}

// Sanitize trims configured values and restores the default interpreter when none is set.
func (configuration ShellConfiguration) Sanitize() ShellConfiguration {
	sanitized := configuration
	sanitized.Interpreter = strings.TrimSpace(configuration.Interpreter)
	if len(sanitized.Interpreter) == 0 {
		sanitized.Interpreter = execshell.DefaultShellInterpreterPath
	}
	return sanitized
}
