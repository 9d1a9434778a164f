package execshell

import (
	"errors"
	"fmt"
)

const (
	// DefaultShellInterpreterPath is the interpreter used when none is configured.
	DefaultShellInterpreterPath               = "/bin/sh"
	shellCommandFlagConstant                  = "-c"
	processRunnerNotConfiguredMessageConstant = "shell runner requires a process runner"
	emptyShellCommandTemplateConstant         = "%w: empty shell command"
	shellInterpreterTemplateConstant          = "invalid shell interpreter %q: %w"
)

// ErrProcessRunnerNotConfigured indicates that a ShellRunner was constructed without a ProcessRunner.
var ErrProcessRunnerNotConfigured = errors.New(processRunnerNotConfiguredMessageConstant)

// ShellRunner hands raw command strings to a shell interpreter.
type ShellRunner struct {
	interpreterPath string
	processRunner   *ProcessRunner
}

// NewShellRunner constructs a ShellRunner. An empty interpreterPath selects DefaultShellInterpreterPath.
func NewShellRunner(interpreterPath string, processRunner *ProcessRunner) (*ShellRunner, error) {
	if processRunner == nil {
		return nil, ErrProcessRunnerNotConfigured
	}
	if len(interpreterPath) == 0 {
		interpreterPath = DefaultShellInterpreterPath
	}
	if _, specError := NewCommandSpec(interpreterPath); specError != nil {
		return nil, fmt.Errorf(shellInterpreterTemplateConstant, interpreterPath, specError)
	}

	return &ShellRunner{interpreterPath: interpreterPath, processRunner: processRunner}, nil
}

// InterpreterPath returns the absolute path of the configured shell.
func (runner *ShellRunner) InterpreterPath() string {
	return runner.interpreterPath
}

// RunViaShell runs command through "<interpreter> -c" and blocks until the shell terminates.
// An empty command yields false without launching the shell.
func (runner *ShellRunner) RunViaShell(command string) bool {
	if len(command) == 0 {
		runner.processRunner.reportExecutionFailure(CommandSpec{}, RedirectTarget(""), fmt.Errorf(emptyShellCommandTemplateConstant, ErrInvalidArgument))
		return false
	}

	shellSpec, specError := NewCommandSpec(runner.interpreterPath, shellCommandFlagConstant, command)
	if specError != nil {
		runner.processRunner.reportExecutionFailure(CommandSpec{}, RedirectTarget(""), specError)
		return false
	}

	return runner.processRunner.Run(shellSpec)
}
