package execshell

import (
	"errors"
	"fmt"
)

const (
	invalidArgumentMessageConstant         = "invalid argument"
	spawnFailureMessageConstant            = "unable to spawn child process"
	ioFailureMessageConstant               = "unable to prepare output redirection"
	execFailureMessageConstant             = "unable to replace child process image"
	waitFailureMessageConstant             = "unable to retrieve child process status"
	abnormalTerminationMessageConstant     = "child process terminated abnormally"
	nonZeroExitMessageConstant             = "child process exited with non-zero status"
	relativeExecutablePathTemplateConstant = "%w: executable path must be absolute"
)

// Failure classes reported to CommandEventObserver implementations. The
// runners never return these to their callers.
var (
	ErrInvalidArgument     = errors.New(invalidArgumentMessageConstant)
	ErrSpawnFailure        = errors.New(spawnFailureMessageConstant)
	ErrIOFailure           = errors.New(ioFailureMessageConstant)
	ErrExecFailure         = errors.New(execFailureMessageConstant)
	ErrWaitFailure         = errors.New(waitFailureMessageConstant)
	ErrAbnormalTermination = errors.New(abnormalTerminationMessageConstant)
	ErrNonZeroExit         = errors.New(nonZeroExitMessageConstant)
)

// ErrRelativeExecutablePath reports a CommandSpec whose executable is not an absolute path.
var ErrRelativeExecutablePath = fmt.Errorf(relativeExecutablePathTemplateConstant, ErrInvalidArgument)
