package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/procsync/cmd/cli/lock"
	planCommand "github.com/temirov/procsync/cmd/cli/plan"
	"github.com/temirov/procsync/cmd/cli/process"
	"github.com/temirov/procsync/internal/utils"
	pathutils "github.com/temirov/procsync/internal/utils/path"
	"github.com/temirov/procsync/internal/writer"
)

const (
	applicationNameConstant                 = "procsync"
	applicationShortDescriptionConstant     = "Run child processes and exercise delayed lock contention"
	applicationLongDescriptionConstant      = "procsync launches executables and shell commands with optional output redirection, runs threads that contend for a shared lock after configurable delays, and replays YAML plans combining both."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	versionFlagNameConstant                 = "version"
	versionFlagUsageConstant                = "Print the procsync version and exit."
	versionOutputTemplateConstant           = "%s version: %s\n"
	unknownVersionConstant                  = "dev"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "PROCSYNC"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "procsync CLI executed"
	rootCommandDebugMessageConstant         = "procsync CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "procsync"
	toolsConfigurationKeyConstant           = "tools"
	shellConfigurationKeyConstant           = toolsConfigurationKeyConstant + ".shell"
	lockConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".lock"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Shell process.ShellConfiguration `mapstructure:"shell"`
	Lock  lock.CommandConfiguration  `mapstructure:"lock"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	consoleLogger         *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	versionFlagValue      bool
	versionResolver       func(context.Context) string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		consoleLogger:       zap.NewNop(),
		versionResolver:     resolveBuildVersion,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.versionFlagValue, versionFlagNameConstant, false, versionFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	consoleLoggerProvider := func() *zap.Logger {
		return application.consoleLogger
	}
	homeExpander := pathutils.NewHomeExpander()

	execBuilder := process.ExecCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConsoleLoggerProvider: consoleLoggerProvider,
		HomeExpander:          homeExpander,
	}
	execCommand, execBuildError := execBuilder.Build()
	if execBuildError == nil {
		cobraCommand.AddCommand(execCommand)
	}

	shellBuilder := process.ShellCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConsoleLoggerProvider: consoleLoggerProvider,
		ConfigurationProvider: func() process.ShellConfiguration {
			return application.configuration.Tools.Shell
		},
	}
	shellCommand, shellBuildError := shellBuilder.Build()
	if shellBuildError == nil {
		cobraCommand.AddCommand(shellCommand)
	}

	lockBuilder := lock.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() lock.CommandConfiguration {
			return application.configuration.Tools.Lock
		},
	}
	lockCommand, lockBuildError := lockBuilder.Build()
	if lockBuildError == nil {
		cobraCommand.AddCommand(lockCommand)
	}

	writeBuilder := writer.CommandBuilder{
		LoggerProvider: loggerProvider,
		HomeExpander:   homeExpander,
	}
	writeCommand, writeBuildError := writeBuilder.Build()
	if writeBuildError == nil {
		cobraCommand.AddCommand(writeCommand)
	}

	planBuilder := planCommand.CommandBuilder{
		LoggerProvider:        loggerProvider,
		ConsoleLoggerProvider: consoleLoggerProvider,
		ShellInterpreterProvider: func() string {
			return application.configuration.Tools.Shell.Sanitize().Interpreter
		},
	}
	planCommandInstance, planBuildError := planBuilder.Build()
	if planBuildError == nil {
		cobraCommand.AddCommand(planCommandInstance)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range process.DefaultConfigurationValues(shellConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range lock.DefaultConfigurationValues(lockConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logLevel, logLevelError := utils.ParseLogLevel(application.configuration.Common.LogLevel)
	if logLevelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logLevelError)
	}
	logFormat, logFormatError := utils.ParseLogFormat(application.configuration.Common.LogFormat)
	if logFormatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logFormatError)
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(logLevel, logFormat)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, string(logLevel)),
		zap.String(configurationLogFormatFieldConstant, string(logFormat)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	if application.versionFlagValue {
		_, printError := fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, applicationNameConstant, application.versionResolver(command.Context()))
		return printError
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func resolveBuildVersion(context.Context) string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 || buildInformation.Main.Version == "(devel)" {
		return unknownVersionConstant
	}
	return buildInformation.Main.Version
}

func (application *Application) flushLogger() error {
	for _, logger := range []*zap.Logger{application.logger, application.consoleLogger} {
		if syncError := application.syncLoggerInstance(logger); syncError != nil {
			return syncError
		}
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
