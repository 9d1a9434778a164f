package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/procsync/internal/dependencies"
	"github.com/temirov/procsync/internal/execshell"
)

const (
	shellCommandUseConstant              = "shell COMMAND"
	shellCommandShortDescriptionConstant = "Run a command string through the shell"
	shellCommandLongDescriptionConstant  = "shell hands COMMAND to the configured interpreter with -c and fails unless the shell exits with status zero. An empty COMMAND fails without starting the shell."
	shellRunnerErrorTemplateConstant     = "unable to construct shell runner: %w"
	interpreterFlagNameConstant          = "interpreter"
	interpreterFlagDescriptionConstant   = "Absolute path of the shell interpreter"
	shellCommandFailedTemplateConstant   = "%w: %q"
)

// ShellCommandBuilder assembles the shell command.
type ShellCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	Launcher              execshell.ChildProcessLauncher
	ConfigurationProvider func() ShellConfiguration
}

// Build constructs the shell command.
func (builder *ShellCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           shellCommandUseConstant,
		Short:         shellCommandShortDescriptionConstant,
		Long:          shellCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          builder.run,
	}

	command.Flags().String(interpreterFlagNameConstant, "", interpreterFlagDescriptionConstant)

	return command, nil
}

func (builder *ShellCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(interpreterFlagNameConstant) {
		interpreterPath, flagError := command.Flags().GetString(interpreterFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		configuration.Interpreter = interpreterPath
		configuration = configuration.Sanitize()
	}

	processRunner, runnerError := dependencies.ResolveProcessRunner(
		builder.Launcher,
		resolveLogger(builder.LoggerProvider),
		resolveLogger(builder.ConsoleLoggerProvider),
	)
	if runnerError != nil {
		return fmt.Errorf(processRunnerErrorTemplateConstant, runnerError)
	}

	shellRunner, shellError := dependencies.ResolveShellRunner(configuration.Interpreter, processRunner)
	if shellError != nil {
		return fmt.Errorf(shellRunnerErrorTemplateConstant, shellError)
	}

	if !shellRunner.RunViaShell(arguments[0]) {
		return fmt.Errorf(shellCommandFailedTemplateConstant, ErrCommandFailed, arguments[0])
	}
	return nil
}

func (builder *ShellCommandBuilder) resolveConfiguration() ShellConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultShellConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
