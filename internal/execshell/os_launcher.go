package execshell

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	redirectTargetPermissionsConstant = 0o644
	redirectTargetFlagsConstant       = unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC | unix.O_CLOEXEC
	standardOutputSlotConstant        = 1
	redirectOpenErrorTemplateConstant = "%w: open %s: %w"
	spawnErrorTemplateConstant        = "%w: %s: %w"
	waitErrorTemplateConstant         = "%w: pid %d: %w"
)

// RedirectTarget names the file that receives a child's standard output.
type RedirectTarget string

// ChildProcessLauncher starts a CommandSpec as a child process and waits for it to terminate.
// An empty RedirectTarget leaves the child's standard output inherited.
type ChildProcessLauncher interface {
	Launch(spec CommandSpec, redirectTarget RedirectTarget) (TerminationStatus, error)
}

// OSProcessLauncher forks and replaces the child image using the operating system facilities.
type OSProcessLauncher struct{}

// NewOSProcessLauncher constructs a launcher backed by fork, exec, and wait4.
func NewOSProcessLauncher() *OSProcessLauncher {
	return &OSProcessLauncher{}
}

// Launch forks a child bound to the inherited descriptors, or to redirectTarget in place of
// standard output, replaces its image with the spec executable, and waits for it.
func (launcher *OSProcessLauncher) Launch(spec CommandSpec, redirectTarget RedirectTarget) (TerminationStatus, error) {
	if spec.IsEmpty() {
		return TerminationStatus{}, ErrInvalidArgument
	}

	childDescriptors := []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()}

	if len(redirectTarget) > 0 {
		outputDescriptor, openError := unix.Open(string(redirectTarget), redirectTargetFlagsConstant, redirectTargetPermissionsConstant)
		if openError != nil {
			return TerminationStatus{}, fmt.Errorf(redirectOpenErrorTemplateConstant, ErrIOFailure, redirectTarget, openError)
		}
		// The child receives its own copy in the standard output slot; this one is close-on-exec.
		defer unix.Close(outputDescriptor)
		childDescriptors[standardOutputSlotConstant] = uintptr(outputDescriptor)
	}

	processAttributes := &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: childDescriptors,
	}

	processIdentifier, forkError := syscall.ForkExec(spec.Executable(), spec.ArgumentVector(), processAttributes)
	if forkError != nil {
		return TerminationStatus{}, fmt.Errorf(spawnErrorTemplateConstant, classifyForkError(forkError), spec.Executable(), forkError)
	}

	return waitForChild(processIdentifier)
}

// classifyForkError separates resource exhaustion while forking from errors reported by the
// child when image replacement failed.
func classifyForkError(forkError error) error {
	switch {
	case errors.Is(forkError, unix.EAGAIN), errors.Is(forkError, unix.ENOMEM), errors.Is(forkError, unix.ENOSYS):
		return ErrSpawnFailure
	default:
		return ErrExecFailure
	}
}

func waitForChild(processIdentifier int) (TerminationStatus, error) {
	var waitStatus unix.WaitStatus
	for {
		_, waitError := unix.Wait4(processIdentifier, &waitStatus, 0, nil)
		if waitError == nil {
			return newTerminationStatus(waitStatus), nil
		}
		if errors.Is(waitError, unix.EINTR) {
			continue
		}
		return TerminationStatus{}, fmt.Errorf(waitErrorTemplateConstant, ErrWaitFailure, processIdentifier, waitError)
	}
}
