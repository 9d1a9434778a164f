package execshell

// CommandEventObserver receives lifecycle notifications for child process execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that a child process is about to be launched.
	CommandStarted(spec CommandSpec)
	// CommandCompleted notifies observers that the child terminated and supplies its status.
	CommandCompleted(spec CommandSpec, status TerminationStatus)
	// CommandExecutionFailed reports failures that prevented a termination status from being collected.
	CommandExecutionFailed(spec CommandSpec, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(CommandSpec) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(CommandSpec, TerminationStatus) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(CommandSpec, error) {}
