package execshell

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant       = "process runner logger not configured"
	launcherNotConfiguredMessageConstant     = "child process launcher not configured"
	emptyCommandSpecTemplateConstant         = "%w: empty command spec"
	emptyRedirectTargetTemplateConstant      = "%w: empty redirect target"
	commandStartedLogMessageConstant         = "child process starting"
	commandCompletedLogMessageConstant       = "child process terminated"
	commandExecutionFailedLogMessageConstant = "child process execution failed"
	logFieldExecutableConstant               = "executable"
	logFieldArgumentsConstant                = "arguments"
	logFieldRedirectTargetConstant           = "redirect_target"
	logFieldExitedConstant                   = "exited"
	logFieldExitCodeConstant                 = "exit_code"
	logFieldSucceededConstant                = "succeeded"
	logFieldFailureConstant                  = "failure"
	commandArgumentsJoinSeparatorConstant    = " "
)

// ErrLoggerNotConfigured indicates that a runner was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrLauncherNotConfigured indicates that a runner was constructed without a launcher.
var ErrLauncherNotConfigured = errors.New(launcherNotConfiguredMessageConstant)

// ProcessRunnerOption customizes a ProcessRunner.
type ProcessRunnerOption func(*ProcessRunner)

// WithCommandEventObserver registers the observer notified about every execution.
func WithCommandEventObserver(observer CommandEventObserver) ProcessRunnerOption {
	return func(runner *ProcessRunner) {
		if observer != nil {
			runner.eventObserver = observer
		}
	}
}

// ProcessRunner executes CommandSpec values as child processes and reports a boolean outcome.
type ProcessRunner struct {
	logger        *zap.Logger
	launcher      ChildProcessLauncher
	eventObserver CommandEventObserver
}

// NewProcessRunner constructs a ProcessRunner around the provided logger and launcher.
func NewProcessRunner(logger *zap.Logger, launcher ChildProcessLauncher, options ...ProcessRunnerOption) (*ProcessRunner, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if launcher == nil {
		return nil, ErrLauncherNotConfigured
	}

	runner := &ProcessRunner{
		logger:        logger,
		launcher:      launcher,
		eventObserver: noopCommandEventObserver{},
	}
	for _, option := range options {
		if option != nil {
			option(runner)
		}
	}

	return runner, nil
}

// Run executes spec with inherited standard streams and blocks until the child terminates.
// It returns true only when the child exited normally with status zero.
func (runner *ProcessRunner) Run(spec CommandSpec) bool {
	return runner.execute(spec, RedirectTarget(""))
}

// RunRedirected executes spec with its standard output bound to target, which is created or truncated.
// An empty spec or target yields false without spawning a child or touching any file.
func (runner *ProcessRunner) RunRedirected(spec CommandSpec, target RedirectTarget) bool {
	if len(strings.TrimSpace(string(target))) == 0 {
		runner.reportExecutionFailure(spec, target, fmt.Errorf(emptyRedirectTargetTemplateConstant, ErrInvalidArgument))
		return false
	}
	return runner.execute(spec, target)
}

func (runner *ProcessRunner) execute(spec CommandSpec, target RedirectTarget) bool {
	if spec.IsEmpty() {
		runner.reportExecutionFailure(spec, target, fmt.Errorf(emptyCommandSpecTemplateConstant, ErrInvalidArgument))
		return false
	}

	runner.eventObserver.CommandStarted(spec)
	runner.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldExecutableConstant, spec.Executable()),
		zap.Strings(logFieldArgumentsConstant, spec.Arguments()),
		zap.String(logFieldRedirectTargetConstant, string(target)),
	)

	terminationStatus, launchError := runner.launcher.Launch(spec, target)
	if launchError != nil {
		runner.reportExecutionFailure(spec, target, launchError)
		return false
	}

	runner.eventObserver.CommandCompleted(spec, terminationStatus)
	runner.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldExecutableConstant, spec.Executable()),
		zap.Bool(logFieldExitedConstant, terminationStatus.Exited),
		zap.Int(logFieldExitCodeConstant, terminationStatus.ExitCode),
		zap.Bool(logFieldSucceededConstant, terminationStatus.Succeeded()),
		zap.NamedError(logFieldFailureConstant, terminationStatus.Failure()),
	)

	return terminationStatus.Succeeded()
}

func (runner *ProcessRunner) reportExecutionFailure(spec CommandSpec, target RedirectTarget, failure error) {
	runner.eventObserver.CommandExecutionFailed(spec, failure)
	runner.logger.Debug(
		commandExecutionFailedLogMessageConstant,
		zap.String(logFieldExecutableConstant, spec.Executable()),
		zap.String(logFieldRedirectTargetConstant, string(target)),
		zap.Error(failure),
	)
}
