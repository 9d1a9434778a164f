package process

import (
	"errors"

	"go.uber.org/zap"
)

const (
	commandFailedMessageConstant = "command failed"
)

// ErrCommandFailed is returned when the runner reports an unsuccessful child process.
var ErrCommandFailed = errors.New(commandFailedMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
