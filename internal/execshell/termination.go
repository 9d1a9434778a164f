package execshell

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	abnormalTerminationTemplateConstant = "%w: signal %s"
	nonZeroExitTemplateConstant         = "%w: exit code %d"
)

// TerminationStatus describes how a child process ended.
type TerminationStatus struct {
	Exited   bool
	ExitCode int
	Signaled bool
	Signal   syscall.Signal
}

func newTerminationStatus(waitStatus unix.WaitStatus) TerminationStatus {
	terminationStatus := TerminationStatus{
		Exited:   waitStatus.Exited(),
		Signaled: waitStatus.Signaled(),
	}
	if terminationStatus.Exited {
		terminationStatus.ExitCode = waitStatus.ExitStatus()
	}
	if terminationStatus.Signaled {
		terminationStatus.Signal = waitStatus.Signal()
	}
	return terminationStatus
}

// Succeeded reports whether the process terminated normally with exit code zero.
func (status TerminationStatus) Succeeded() bool {
	return status.Exited && status.ExitCode == 0
}

// Failure classifies an unsuccessful termination; it returns nil when Succeeded is true.
func (status TerminationStatus) Failure() error {
	switch {
	case status.Succeeded():
		return nil
	case status.Exited:
		return fmt.Errorf(nonZeroExitTemplateConstant, ErrNonZeroExit, status.ExitCode)
	case status.Signaled:
		return fmt.Errorf(abnormalTerminationTemplateConstant, ErrAbnormalTermination, status.Signal)
	default:
		return ErrAbnormalTermination
	}
}
