package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant           = "debug"
	logLevelInfoStringConstant            = "info"
	logLevelWarnStringConstant            = "warn"
	logLevelErrorStringConstant           = "error"
	logFormatStructuredStringConstant     = "structured"
	logFormatConsoleStringConstant        = "console"
	jsonZapEncodingStringConstant         = "json"
	consoleZapEncodingStringConstant      = "console"
	standardErrorOutputPathConstant       = "stderr"
	unsupportedLogLevelTemplateConstant   = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant  = "unsupported log format: %s"
	diagnosticLoggerBuildTemplateConstant = "unable to build diagnostic logger: %w"
	consoleLoggerBuildTemplateConstant    = "unable to build console logger: %w"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// LoggerOutputs groups the loggers produced for a single CLI invocation.
// DiagnosticLogger carries structured telemetry; ConsoleLogger renders
// plain command lifecycle messages and is a no-op in structured mode.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	ConsoleLogger    *zap.Logger
}

// LoggerFactoryOption customizes a LoggerFactory.
type LoggerFactoryOption func(*LoggerFactory)

// WithOutputPaths replaces the default stderr sink with the provided zap output paths.
func WithOutputPaths(outputPaths ...string) LoggerFactoryOption {
	return func(factory *LoggerFactory) {
		if len(outputPaths) == 0 {
			return
		}
		factory.outputPaths = append([]string(nil), outputPaths...)
	}
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	outputPaths []string
}

// NewLoggerFactory constructs a logger factory writing to stderr unless configured otherwise.
func NewLoggerFactory(options ...LoggerFactoryOption) *LoggerFactory {
	factory := &LoggerFactory{outputPaths: []string{standardErrorOutputPathConstant}}
	for _, option := range options {
		if option != nil {
			option(factory)
		}
	}
	return factory
}

// ParseLogLevel normalizes a configured log level and rejects unknown values.
func ParseLogLevel(rawLogLevel string) (LogLevel, error) {
	candidate := LogLevel(strings.ToLower(strings.TrimSpace(rawLogLevel)))
	if _, levelExists := logLevelMapping[candidate]; !levelExists {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, rawLogLevel)
	}
	return candidate, nil
}

// ParseLogFormat normalizes a configured log format and rejects unknown values.
func ParseLogFormat(rawLogFormat string) (LogFormat, error) {
	candidate := LogFormat(strings.ToLower(strings.TrimSpace(rawLogFormat)))
	if _, formatExists := logFormatEncodingMapping[candidate]; !formatExists {
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, rawLogFormat)
	}
	return candidate, nil
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoding, formatExists := logFormatEncodingMapping[requestedLogFormat]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding
	// Every child process and lock transition must be recorded.
	configuration.Sampling = nil
	configuration.OutputPaths = factory.outputPaths
	configuration.ErrorOutputPaths = factory.outputPaths
	if requestedLogFormat == LogFormatConsole {
		configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	return configuration.Build()
}

// CreateLoggerOutputs produces the diagnostic logger plus the console logger used for human-readable command events.
func (factory *LoggerFactory) CreateLoggerOutputs(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (LoggerOutputs, error) {
	diagnosticLogger, diagnosticError := factory.CreateLogger(requestedLogLevel, requestedLogFormat)
	if diagnosticError != nil {
		return LoggerOutputs{}, fmt.Errorf(diagnosticLoggerBuildTemplateConstant, diagnosticError)
	}

	if requestedLogFormat != LogFormatConsole {
		return LoggerOutputs{DiagnosticLogger: diagnosticLogger, ConsoleLogger: zap.NewNop()}, nil
	}

	consoleConfiguration := zap.NewDevelopmentConfig()
	consoleConfiguration.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	consoleConfiguration.Encoding = consoleZapEncodingStringConstant
	consoleConfiguration.DisableCaller = true
	consoleConfiguration.DisableStacktrace = true
	consoleConfiguration.EncoderConfig.TimeKey = ""
	consoleConfiguration.EncoderConfig.LevelKey = ""
	consoleConfiguration.EncoderConfig.NameKey = ""
	consoleConfiguration.OutputPaths = factory.outputPaths
	consoleConfiguration.ErrorOutputPaths = factory.outputPaths

	consoleLogger, consoleError := consoleConfiguration.Build()
	if consoleError != nil {
		return LoggerOutputs{}, fmt.Errorf(consoleLoggerBuildTemplateConstant, consoleError)
	}

	return LoggerOutputs{DiagnosticLogger: diagnosticLogger, ConsoleLogger: consoleLogger}, nil
}
