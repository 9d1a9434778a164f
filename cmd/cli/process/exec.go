package process

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/procsync/internal/dependencies"
	"github.com/temirov/procsync/internal/execshell"
	pathutils "github.com/temirov/procsync/internal/utils/path"
)

const (
	execCommandUseConstant              = "exec [--output FILE] -- /absolute/path [arguments...]"
	execCommandShortDescriptionConstant = "Run an executable and report whether it succeeded"
	execCommandLongDescriptionConstant  = "exec launches the executable at an absolute path with the given arguments, waits for it, and fails unless it exits with status zero. With --output its standard output is written to FILE, which is created or truncated."
	outputFlagNameConstant              = "output"
	outputFlagShorthandConstant         = "o"
	outputFlagDescriptionConstant       = "Redirect the child's standard output to this file"
	commandSpecErrorTemplateConstant    = "invalid command: %w"
	processRunnerErrorTemplateConstant  = "unable to construct process runner: %w"
	commandFailedTemplateConstant       = "%w: %s"
)

// ExecCommandBuilder assembles the exec command.
type ExecCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	Launcher              execshell.ChildProcessLauncher
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the exec command.
func (builder *ExecCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           execCommandUseConstant,
		Short:         execCommandShortDescriptionConstant,
		Long:          execCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.MinimumNArgs(1),
		RunE:          builder.run,
	}

	command.Flags().SetInterspersed(false)
	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagDescriptionConstant)

	return command, nil
}

func (builder *ExecCommandBuilder) run(command *cobra.Command, arguments []string) error {
	spec, specError := execshell.NewCommandSpec(arguments[0], arguments[1:]...)
	if specError != nil {
		return fmt.Errorf(commandSpecErrorTemplateConstant, specError)
	}

	outputPath, outputError := command.Flags().GetString(outputFlagNameConstant)
	if outputError != nil {
		return outputError
	}
	outputPath = strings.TrimSpace(outputPath)
	if builder.HomeExpander != nil {
		outputPath = builder.HomeExpander.Expand(outputPath)
	}

	processRunner, runnerError := dependencies.ResolveProcessRunner(
		builder.Launcher,
		resolveLogger(builder.LoggerProvider),
		resolveLogger(builder.ConsoleLoggerProvider),
	)
	if runnerError != nil {
		return fmt.Errorf(processRunnerErrorTemplateConstant, runnerError)
	}

	var succeeded bool
	if command.Flags().Changed(outputFlagNameConstant) {
		succeeded = processRunner.RunRedirected(spec, execshell.RedirectTarget(outputPath))
	} else {
		succeeded = processRunner.Run(spec)
	}

	if !succeeded {
		return fmt.Errorf(commandFailedTemplateConstant, ErrCommandFailed, spec.String())
	}
	return nil
}
