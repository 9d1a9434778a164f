package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/procsync/internal/dependencies"
	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/plan"
)

const (
	commandUseConstant                     = "plan FILE"
	commandShortDescriptionConstant        = "Run a YAML plan of process, shell, lock, and write steps"
	commandLongDescriptionConstant         = "plan executes the steps listed in FILE in order and prints a YAML report. It stops at the first step whose outcome differs from the expected one unless the plan sets continue_on_error."
	continueOnErrorFlagNameConstant        = "continue-on-error"
	continueOnErrorFlagDescriptionConstant = "Keep running after a failing step"
	loadConfigurationErrorTemplateConstant = "unable to load plan: %w"
	dependencyErrorTemplateConstant        = "unable to prepare plan dependencies: %w"
	executorErrorTemplateConstant          = "unable to build plan: %w"
	reportErrorTemplateConstant            = "unable to render plan report: %w"
	yamlIndentConstant                     = 2
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the plan command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConsoleLoggerProvider    LoggerProvider
	Launcher                 execshell.ChildProcessLauncher
	ShellInterpreterProvider func() string
}

// Build constructs the plan command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          builder.run,
	}

	command.Flags().Bool(continueOnErrorFlagNameConstant, false, continueOnErrorFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := plan.LoadConfiguration(arguments[0])
	if configurationError != nil {
		return fmt.Errorf(loadConfigurationErrorTemplateConstant, configurationError)
	}

	if command.Flags().Changed(continueOnErrorFlagNameConstant) {
		continueOnError, flagError := command.Flags().GetBool(continueOnErrorFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		configuration.ContinueOnError = continueOnError
	}

	environment, environmentError := builder.resolveEnvironment()
	if environmentError != nil {
		return fmt.Errorf(dependencyErrorTemplateConstant, environmentError)
	}

	executor, executorError := plan.NewExecutor(configuration, environment)
	if executorError != nil {
		return fmt.Errorf(executorErrorTemplateConstant, executorError)
	}

	report, executionError := executor.Execute(command.Context())

	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return fmt.Errorf(reportErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(reportErrorTemplateConstant, closeError)
	}

	return executionError
}

func (builder *CommandBuilder) resolveEnvironment() (plan.Environment, error) {
	logger := resolveLogger(builder.LoggerProvider)

	processRunner, runnerError := dependencies.ResolveProcessRunner(builder.Launcher, logger, resolveLogger(builder.ConsoleLoggerProvider))
	if runnerError != nil {
		return plan.Environment{}, runnerError
	}

	interpreterPath := execshell.DefaultShellInterpreterPath
	if builder.ShellInterpreterProvider != nil {
		if configuredInterpreter := strings.TrimSpace(builder.ShellInterpreterProvider()); len(configuredInterpreter) > 0 {
			interpreterPath = configuredInterpreter
		}
	}
	shellRunner, shellError := dependencies.ResolveShellRunner(interpreterPath, processRunner)
	if shellError != nil {
		return plan.Environment{}, shellError
	}

	lockLauncher, launcherError := dependencies.ResolveLockLauncher(logger)
	if launcherError != nil {
		return plan.Environment{}, launcherError
	}

	writerService, writerError := dependencies.ResolveWriter(logger)
	if writerError != nil {
		return plan.Environment{}, writerError
	}

	return plan.Environment{
		Logger:        logger,
		ProcessRunner: processRunner,
		ShellRunner:   shellRunner,
		LockLauncher:  lockLauncher,
		Lock:          dependencies.ResolveSharedLock(nil),
		Writer:        writerService,
	}, nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
