package writer

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/temirov/procsync/internal/utils/path"
)

const (
	commandUseConstant                    = "write FILE CONTENT"
	commandShortDescriptionConstant       = "Replace a file's contents with a string"
	commandLongDescriptionConstant        = "write creates FILE or truncates it, stores CONTENT without a trailing newline, and closes it."
	commandArgumentCountConstant          = 2
	commandExecutionErrorTemplateConstant = "write failed: %w"
	serviceCreationErrorTemplateConstant  = "unable to construct writer: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the write command.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	HomeExpander   *pathutils.HomeExpander
}

// Build constructs the write command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(commandArgumentCountConstant),
		RunE:          builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	service, serviceError := NewService(builder.resolveLogger())
	if serviceError != nil {
		return fmt.Errorf(serviceCreationErrorTemplateConstant, serviceError)
	}

	filePath := arguments[0]
	if builder.HomeExpander != nil {
		filePath = builder.HomeExpander.Expand(filePath)
	}

	if writeError := service.Write(filePath, arguments[1]); writeError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, writeError)
	}
	return nil
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
