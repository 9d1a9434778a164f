package process_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/procsync/cmd/cli/process"
	"github.com/temirov/procsync/internal/execshell"
	pathutils "github.com/temirov/procsync/internal/utils/path"
)

const (
	testEchoExecutableConstant       = "/bin/echo"
	testFailingExecutableConstant    = "/bin/false"
	testCustomInterpreterConstant    = "/usr/bin/bash"
	testRedirectFileNameConstant     = "out.txt"
	testRunningEchoMessageConstant   = "Running /bin/echo -n hello"
	testCompletedEchoMessageConstant = "Completed /bin/echo -n hello"
)

type launchRecord struct {
	commandLine string
	target      execshell.RedirectTarget
}

type recordingLauncher struct {
	records []launchRecord
}

func (launcher *recordingLauncher) Launch(spec execshell.CommandSpec, target execshell.RedirectTarget) (execshell.TerminationStatus, error) {
	launcher.records = append(launcher.records, launchRecord{commandLine: spec.String(), target: target})
	if spec.Executable() == testFailingExecutableConstant {
		return execshell.TerminationStatus{Exited: true, ExitCode: 1}, nil
	}
	return execshell.TerminationStatus{Exited: true}, nil
}

func TestExecCommand(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()

	testCases := []struct {
		name            string
		arguments       []string
		expectError     error
		expectAnyError  bool
		expectedRecords []launchRecord
	}{
		{
			name:            "runs_executable_with_arguments",
			arguments:       []string{"--", testEchoExecutableConstant, "-n", "hello"},
			expectedRecords: []launchRecord{{commandLine: "/bin/echo -n hello"}},
		},
		{
			name:            "arguments_after_executable_are_not_flags",
			arguments:       []string{testEchoExecutableConstant, "--output", "x"},
			expectedRecords: []launchRecord{{commandLine: "/bin/echo --output x"}},
		},
		{
			name:      "redirects_output",
			arguments: []string{"--output", "~/" + testRedirectFileNameConstant, testEchoExecutableConstant},
			expectedRecords: []launchRecord{{
				commandLine: testEchoExecutableConstant,
				target:      execshell.RedirectTarget(filepath.Join(homeDirectory, testRedirectFileNameConstant)),
			}},
		},
		{
			name:            "empty_output_target_fails_without_launch",
			arguments:       []string{"--output", "", testEchoExecutableConstant},
			expectError:     process.ErrCommandFailed,
			expectedRecords: nil,
		},
		{
			name:            "failing_executable",
			arguments:       []string{testFailingExecutableConstant},
			expectError:     process.ErrCommandFailed,
			expectedRecords: []launchRecord{{commandLine: testFailingExecutableConstant}},
		},
		{
			name:            "relative_executable_rejected",
			arguments:       []string{"echo", "hello"},
			expectError:     execshell.ErrInvalidArgument,
			expectedRecords: nil,
		},
		{
			name:            "missing_executable_argument",
			arguments:       []string{},
			expectAnyError:  true,
			expectedRecords: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			launcher := &recordingLauncher{}
			builder := process.ExecCommandBuilder{
				LoggerProvider: func() *zap.Logger { return zap.NewNop() },
				Launcher:       launcher,
				HomeExpander: pathutils.NewHomeExpanderWithProvider(func() (string, error) {
					return homeDirectory, nil
				}),
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			command.SetArgs(testCase.arguments)
			executionError := command.Execute()

			switch {
			case testCase.expectError != nil:
				require.ErrorIs(testInstance, executionError, testCase.expectError)
			case testCase.expectAnyError:
				require.Error(testInstance, executionError)
			default:
				require.NoError(testInstance, executionError)
			}
			require.Equal(testInstance, testCase.expectedRecords, launcher.records)
		})
	}
}

func TestExecCommandReportsToConsoleLogger(testInstance *testing.T) {
	consoleCore, consoleLogs := observer.New(zapcore.InfoLevel)
	builder := process.ExecCommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConsoleLoggerProvider: func() *zap.Logger { return zap.New(consoleCore) },
		Launcher:              &recordingLauncher{},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{testEchoExecutableConstant, "-n", "hello"})
	require.NoError(testInstance, command.Execute())

	entries := consoleLogs.All()
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, testRunningEchoMessageConstant, entries[0].Message)
	require.Equal(testInstance, testCompletedEchoMessageConstant, entries[1].Message)
}

func TestExecCommandWritesRedirectedOutput(testInstance *testing.T) {
	if _, statError := os.Stat(testEchoExecutableConstant); statError != nil {
		testInstance.Skipf("%s not available: %v", testEchoExecutableConstant, statError)
	}

	outputPath := filepath.Join(testInstance.TempDir(), testRedirectFileNameConstant)
	builder := process.ExecCommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--output", outputPath, "--", testEchoExecutableConstant, "hello"})
	require.NoError(testInstance, command.Execute())

	writtenContent, readError := os.ReadFile(outputPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "hello\n", string(writtenContent))
}

func TestShellCommand(testInstance *testing.T) {
	testCases := []struct {
		name            string
		configuration   *process.ShellConfiguration
		arguments       []string
		expectError     error
		expectedRecords []launchRecord
	}{
		{
			name:            "uses_default_interpreter",
			arguments:       []string{"echo hi"},
			expectedRecords: []launchRecord{{commandLine: "/bin/sh -c echo hi"}},
		},
		{
			name:            "uses_configured_interpreter",
			configuration:   &process.ShellConfiguration{Interpreter: testCustomInterpreterConstant},
			arguments:       []string{"true"},
			expectedRecords: []launchRecord{{commandLine: testCustomInterpreterConstant + " -c true"}},
		},
		{
			name:            "flag_overrides_configuration",
			configuration:   &process.ShellConfiguration{Interpreter: testCustomInterpreterConstant},
			arguments:       []string{"--interpreter", "/bin/dash", "true"},
			expectedRecords: []launchRecord{{commandLine: "/bin/dash -c true"}},
		},
		{
			name:            "blank_configuration_restores_default",
			configuration:   &process.ShellConfiguration{Interpreter: "  "},
			arguments:       []string{"true"},
			expectedRecords: []launchRecord{{commandLine: "/bin/sh -c true"}},
		},
		{
			name:            "empty_command_fails_without_launch",
			arguments:       []string{""},
			expectError:     process.ErrCommandFailed,
			expectedRecords: nil,
		},
		{
			name:            "relative_interpreter_rejected",
			configuration:   &process.ShellConfiguration{Interpreter: "sh"},
			arguments:       []string{"true"},
			expectError:     execshell.ErrInvalidArgument,
			expectedRecords: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			launcher := &recordingLauncher{}
			builder := process.ShellCommandBuilder{Launcher: launcher}
			if testCase.configuration != nil {
				configuration := *testCase.configuration
				builder.ConfigurationProvider = func() process.ShellConfiguration { return configuration }
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			command.SetArgs(testCase.arguments)
			executionError := command.Execute()
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, executionError, testCase.expectError)
			} else {
				require.NoError(testInstance, executionError)
			}
			require.Equal(testInstance, testCase.expectedRecords, launcher.records)
		})
	}
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{"tools.shell.interpreter": execshell.DefaultShellInterpreterPath}, process.DefaultConfigurationValues("tools.shell"))
	require.Equal(testInstance, execshell.DefaultShellInterpreterPath, process.DefaultShellConfiguration().Interpreter)
}
