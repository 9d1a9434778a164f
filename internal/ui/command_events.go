package ui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/execshell"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s"
	commandFailedExitCodeMessageTemplateConstant   = "%s failed with exit code %d"
	commandTerminatedBySignalTemplateConstant      = "%s terminated by signal %s"
	commandAbnormalTerminationTemplateConstant     = "%s terminated abnormally"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	emptyCommandLabelConstant                      = "<empty command>"
	unknownFailureMessageConstant                  = "unknown error"
)

// CommandEventFormatter builds human-readable messages for command lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execshell.CommandSpec) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildSuccessMessage formats the message describing a command that exited with status zero.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execshell.CommandSpec) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildFailureMessage formats the message describing a command that exited non-zero or was killed.
func (formatter CommandEventFormatter) BuildFailureMessage(command execshell.CommandSpec, status execshell.TerminationStatus) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch {
	case status.Exited:
		return fmt.Sprintf(commandFailedExitCodeMessageTemplateConstant, commandLabel, status.ExitCode)
	case status.Signaled:
		return fmt.Sprintf(commandTerminatedBySignalTemplateConstant, commandLabel, status.Signal)
	default:
		return fmt.Sprintf(commandAbnormalTerminationTemplateConstant, commandLabel)
	}
}

// BuildExecutionFailureMessage formats the message describing a command that could not be run.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execshell.CommandSpec, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, formatter.formatCommandLabel(command), failureMessage)
}

func (formatter CommandEventFormatter) formatCommandLabel(command execshell.CommandSpec) string {
	if command.IsEmpty() {
		return emptyCommandLabelConstant
	}
	return command.String()
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.CommandSpec) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver by logging command completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.CommandSpec, status execshell.TerminationStatus) {
	if eventLogger == nil {
		return
	}
	if status.Succeeded() {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, status))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging execution failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.CommandSpec, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
