package dependencies_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/procsync/internal/dependencies"
	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/mutexthread"
)

type stubLauncher struct {
	status execshell.TerminationStatus
}

func (launcher stubLauncher) Launch(execshell.CommandSpec, execshell.RedirectTarget) (execshell.TerminationStatus, error) {
	return launcher.status, nil
}

func TestResolveDefaults(testInstance *testing.T) {
	require.IsType(testInstance, &execshell.OSProcessLauncher{}, dependencies.ResolveChildProcessLauncher(nil))
	require.IsType(testInstance, &mutexthread.ExclusiveLock{}, dependencies.ResolveSharedLock(nil))

	existingLock := mutexthread.NewExclusiveLock()
	require.Same(testInstance, existingLock, dependencies.ResolveSharedLock(existingLock))
}

func TestResolveProcessRunnerRoutesEventsToConsoleLogger(testInstance *testing.T) {
	consoleCore, consoleLogs := observer.New(zapcore.InfoLevel)

	processRunner, runnerError := dependencies.ResolveProcessRunner(
		stubLauncher{status: execshell.TerminationStatus{Exited: true}},
		zap.NewNop(),
		zap.New(consoleCore),
	)
	require.NoError(testInstance, runnerError)

	shellRunner, shellError := dependencies.ResolveShellRunner("", processRunner)
	require.NoError(testInstance, shellError)
	require.Equal(testInstance, execshell.DefaultShellInterpreterPath, shellRunner.InterpreterPath())

	require.True(testInstance, shellRunner.RunViaShell("true"))

	messages := make([]string, 0, consoleLogs.Len())
	for _, entry := range consoleLogs.All() {
		messages = append(messages, entry.Message)
	}
	require.Equal(testInstance, []string{"Running /bin/sh -c true", "Completed /bin/sh -c true"}, messages)
}

func TestResolveProcessRunnerRequiresLogger(testInstance *testing.T) {
	_, runnerError := dependencies.ResolveProcessRunner(nil, nil, nil)
	require.ErrorIs(testInstance, runnerError, execshell.ErrLoggerNotConfigured)

	_, launcherError := dependencies.ResolveLockLauncher(nil)
	require.ErrorIs(testInstance, launcherError, mutexthread.ErrLoggerNotConfigured)
}
