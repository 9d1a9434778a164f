package lock

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/dependencies"
	"github.com/temirov/procsync/internal/mutexthread"
	flagutils "github.com/temirov/procsync/internal/utils/flags"
)

const (
	commandUseConstant                   = "lock-demo"
	commandShortDescriptionConstant      = "Contend for one lock from several delayed threads"
	commandLongDescriptionConstant       = "lock-demo starts several threads that each wait, acquire a shared exclusive lock, hold it, and release it. It joins every thread, prints their outcomes, and fails if any thread was unsuccessful."
	threadsFlagNameConstant              = "threads"
	threadsFlagDescriptionConstant       = "Number of threads competing for the lock"
	waitToObtainFlagNameConstant         = "wait-to-obtain"
	waitToObtainFlagDescriptionConstant  = "Delay before each thread tries to acquire the lock"
	waitToReleaseFlagNameConstant        = "wait-to-release"
	waitToReleaseFlagDescriptionConstant = "How long each thread holds the lock"
	formatFlagNameConstant               = "format"
	formatFlagDescriptionConstant        = "Report format"
	launcherErrorTemplateConstant        = "unable to construct lock launcher: %w"
	contentionErrorTemplateConstant      = "lock demo could not start: %w"
	renderErrorTemplateConstant          = "unable to render lock report: %w"
	lockDemoFailedMessageConstant        = "lock demo failed"
	lockDemoFinishedLogMessageConstant   = "lock demo finished"
	logFieldThreadCountConstant          = "threads"
	logFieldSucceededConstant            = "succeeded"
)

// ErrLockDemoFailed is returned when at least one thread reports an unsuccessful outcome.
var ErrLockDemoFailed = errors.New(lockDemoFailedMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the lock-demo command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Lock                  mutexthread.SharedLock
}

type commandOptions struct {
	configuration CommandConfiguration
	format        string
}

// Build constructs the lock-demo command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().Int(threadsFlagNameConstant, defaults.Threads, threadsFlagDescriptionConstant)
	command.Flags().Duration(waitToObtainFlagNameConstant, defaults.WaitToObtain, waitToObtainFlagDescriptionConstant)
	command.Flags().Duration(waitToReleaseFlagNameConstant, defaults.WaitToRelease, waitToReleaseFlagDescriptionConstant)

	var selectedFormat string
	flagutils.AddChoiceFlag(
		command.Flags(),
		&selectedFormat,
		formatFlagNameConstant,
		reportFormatYAMLConstant,
		[]string{reportFormatYAMLConstant, reportFormatTextConstant},
		formatFlagDescriptionConstant,
	)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	launcher, launcherError := dependencies.ResolveLockLauncher(logger)
	if launcherError != nil {
		return fmt.Errorf(launcherErrorTemplateConstant, launcherError)
	}

	report, contentionError := launcher.RunContention(
		dependencies.ResolveSharedLock(builder.Lock),
		mutexthread.ContentionRequest{
			Threads:       options.configuration.Threads,
			WaitToObtain:  options.configuration.WaitToObtain,
			WaitToRelease: options.configuration.WaitToRelease,
		},
	)
	if contentionError != nil {
		return fmt.Errorf(contentionErrorTemplateConstant, contentionError)
	}

	logger.Info(
		lockDemoFinishedLogMessageConstant,
		zap.Int(logFieldThreadCountConstant, len(report.Threads)),
		zap.Bool(logFieldSucceededConstant, report.Succeeded),
	)

	if renderError := renderReport(command.OutOrStdout(), options.format, report); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderError)
	}

	if !report.Succeeded {
		return ErrLockDemoFailed
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(threadsFlagNameConstant) {
		threads, threadsError := command.Flags().GetInt(threadsFlagNameConstant)
		if threadsError != nil {
			return commandOptions{}, threadsError
		}
		configuration.Threads = threads
	}

	if command.Flags().Changed(waitToObtainFlagNameConstant) {
		waitToObtain, waitError := command.Flags().GetDuration(waitToObtainFlagNameConstant)
		if waitError != nil {
			return commandOptions{}, waitError
		}
		configuration.WaitToObtain = waitToObtain
	}

	if command.Flags().Changed(waitToReleaseFlagNameConstant) {
		waitToRelease, waitError := command.Flags().GetDuration(waitToReleaseFlagNameConstant)
		if waitError != nil {
			return commandOptions{}, waitError
		}
		configuration.WaitToRelease = waitToRelease
	}

	format := command.Flags().Lookup(formatFlagNameConstant).Value.String()

	return commandOptions{configuration: configuration, format: format}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
