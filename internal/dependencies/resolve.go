// Package dependencies builds the default collaborators shared by the procsync commands.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/mutexthread"
	"github.com/temirov/procsync/internal/ui"
	"github.com/temirov/procsync/internal/writer"
)

// ResolveChildProcessLauncher returns the provided launcher or the fork/exec-backed default.
func ResolveChildProcessLauncher(existing execshell.ChildProcessLauncher) execshell.ChildProcessLauncher {
	if existing != nil {
		return existing
	}
	return execshell.NewOSProcessLauncher()
}

// ResolveProcessRunner constructs a ProcessRunner whose lifecycle events are rendered through consoleLogger.
func ResolveProcessRunner(launcher execshell.ChildProcessLauncher, logger *zap.Logger, consoleLogger *zap.Logger) (*execshell.ProcessRunner, error) {
	eventObserver := ui.NewConsoleCommandEventLogger(consoleLogger)
	return execshell.NewProcessRunner(
		logger,
		ResolveChildProcessLauncher(launcher),
		execshell.WithCommandEventObserver(eventObserver),
	)
}

// ResolveShellRunner constructs a ShellRunner around the configured interpreter.
func ResolveShellRunner(interpreterPath string, processRunner *execshell.ProcessRunner) (*execshell.ShellRunner, error) {
	return execshell.NewShellRunner(interpreterPath, processRunner)
}

// ResolveSharedLock returns the provided lock or a fresh ExclusiveLock.
func ResolveSharedLock(existing mutexthread.SharedLock) mutexthread.SharedLock {
	if existing != nil {
		return existing
	}
	return mutexthread.NewExclusiveLock()
}

// ResolveLockLauncher constructs a Launcher that logs through logger.
func ResolveLockLauncher(logger *zap.Logger) (*mutexthread.Launcher, error) {
	return mutexthread.NewLauncher(logger)
}

// ResolveWriter constructs the file writer service.
func ResolveWriter(logger *zap.Logger) (*writer.Service, error) {
	return writer.NewService(logger)
}
