package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/mutexthread"
	"github.com/temirov/procsync/internal/plan"
	"github.com/temirov/procsync/internal/writer"
)

const (
	executorSuccessExecutableConstant = "/usr/bin/succeed"
	executorFailureExecutableConstant = "/usr/bin/fail"
	executorWrittenFileNameConstant   = "written.txt"
	executorWrittenContentConstant    = "plan content"
)

type scriptedLauncher struct {
	mutex    sync.Mutex
	launched []string
}

func (launcher *scriptedLauncher) Launch(spec execshell.CommandSpec, _ execshell.RedirectTarget) (execshell.TerminationStatus, error) {
	launcher.mutex.Lock()
	launcher.launched = append(launcher.launched, spec.String())
	launcher.mutex.Unlock()

	if spec.Executable() == executorFailureExecutableConstant {
		return execshell.TerminationStatus{Exited: true, ExitCode: 1}, nil
	}
	if spec.Executable() == execshell.DefaultShellInterpreterPath && spec.Arguments()[len(spec.Arguments())-1] == "false" {
		return execshell.TerminationStatus{Exited: true, ExitCode: 1}, nil
	}
	return execshell.TerminationStatus{Exited: true}, nil
}

func (launcher *scriptedLauncher) commands() []string {
	launcher.mutex.Lock()
	defer launcher.mutex.Unlock()
	return append([]string(nil), launcher.launched...)
}

func newTestEnvironment(testInstance *testing.T, launcher execshell.ChildProcessLauncher) plan.Environment {
	testInstance.Helper()

	logger := zap.NewNop()
	processRunner, runnerError := execshell.NewProcessRunner(logger, launcher)
	require.NoError(testInstance, runnerError)
	shellRunner, shellError := execshell.NewShellRunner("", processRunner)
	require.NoError(testInstance, shellError)
	lockLauncher, lockError := mutexthread.NewLauncher(logger)
	require.NoError(testInstance, lockError)
	writerService, writerError := writer.NewService(logger)
	require.NoError(testInstance, writerError)

	return plan.Environment{
		Logger:        logger,
		ProcessRunner: processRunner,
		ShellRunner:   shellRunner,
		LockLauncher:  lockLauncher,
		Lock:          mutexthread.NewExclusiveLock(),
		Writer:        writerService,
	}
}

func execStep(path string, expectFailure bool) string {
	step := "  - kind: exec\n    with:\n      path: " + path + "\n"
	if expectFailure {
		step += "    expect_failure: true\n"
	}
	return step
}

func TestExecutorRunsStepsInOrder(testInstance *testing.T) {
	launcher := &scriptedLauncher{}
	environment := newTestEnvironment(testInstance, launcher)
	writtenPath := filepath.Join(testInstance.TempDir(), executorWrittenFileNameConstant)

	planContent := "steps:\n" +
		execStep(executorSuccessExecutableConstant, false) +
		execStep(executorFailureExecutableConstant, true) +
		execStep("relative/tool", true) +
		"  - kind: shell\n    with:\n      command: \"false\"\n    expect_failure: true\n" +
		"  - kind: shell\n    expect_failure: true\n" +
		"  - kind: lock\n    with:\n      threads: 2\n" +
		"  - kind: write\n    with:\n      file: " + writtenPath + "\n      content: " + executorWrittenContentConstant + "\n"

	configuration, parseError := plan.ParseConfiguration([]byte(planContent))
	require.NoError(testInstance, parseError)

	executor, executorError := plan.NewExecutor(configuration, environment)
	require.NoError(testInstance, executorError)

	report, executionError := executor.Execute(context.Background())
	require.NoError(testInstance, executionError)
	require.True(testInstance, report.Passed)
	require.Len(testInstance, report.Steps, 7)

	expectedOutcomes := []bool{true, false, false, false, false, true, true}
	for stepIndex, stepReport := range report.Steps {
		require.Equal(testInstance, stepIndex+1, stepReport.Number)
		require.Equal(testInstance, expectedOutcomes[stepIndex], stepReport.Outcome, stepReport.Name)
		require.True(testInstance, stepReport.Passed, stepReport.Name)
	}

	require.Equal(testInstance, []string{
		executorSuccessExecutableConstant,
		executorFailureExecutableConstant,
		"/bin/sh -c false",
	}, launcher.commands())

	writtenContent, readError := os.ReadFile(writtenPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, executorWrittenContentConstant, string(writtenContent))
}

func TestExecutorFailureHandling(testInstance *testing.T) {
	testCases := []struct {
		name             string
		continueOnError  bool
		expectedReports  int
		expectedLaunches int
	}{
		{name: "stops_at_first_failure", continueOnError: false, expectedReports: 1, expectedLaunches: 1},
		{name: "continues_after_failure", continueOnError: true, expectedReports: 3, expectedLaunches: 3},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			launcher := &scriptedLauncher{}
			environment := newTestEnvironment(testInstance, launcher)

			planContent := "steps:\n" +
				execStep(executorFailureExecutableConstant, false) +
				execStep(executorSuccessExecutableConstant, false) +
				execStep(executorFailureExecutableConstant, false)
			if testCase.continueOnError {
				planContent = "continue_on_error: true\n" + planContent
			}

			configuration, parseError := plan.ParseConfiguration([]byte(planContent))
			require.NoError(testInstance, parseError)
			executor, executorError := plan.NewExecutor(configuration, environment)
			require.NoError(testInstance, executorError)

			report, executionError := executor.Execute(context.Background())
			require.ErrorIs(testInstance, executionError, plan.ErrStepFailed)
			require.False(testInstance, report.Passed)
			require.Len(testInstance, report.Steps, testCase.expectedReports)
			require.Len(testInstance, launcher.commands(), testCase.expectedLaunches)
		})
	}
}

func TestExecutorHonorsCancelledContext(testInstance *testing.T) {
	launcher := &scriptedLauncher{}
	environment := newTestEnvironment(testInstance, launcher)

	configuration, parseError := plan.ParseConfiguration([]byte("steps:\n" + execStep(executorSuccessExecutableConstant, false)))
	require.NoError(testInstance, parseError)
	executor, executorError := plan.NewExecutor(configuration, environment)
	require.NoError(testInstance, executorError)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	report, executionError := executor.Execute(cancelledContext)
	require.ErrorIs(testInstance, executionError, context.Canceled)
	require.False(testInstance, report.Passed)
	require.Empty(testInstance, report.Steps)
	require.Empty(testInstance, launcher.commands())
}

func TestNewExecutorRequiresDependencies(testInstance *testing.T) {
	configuration, parseError := plan.ParseConfiguration([]byte("steps:\n" + execStep(executorSuccessExecutableConstant, false)))
	require.NoError(testInstance, parseError)

	_, executorError := plan.NewExecutor(configuration, plan.Environment{Logger: zap.NewNop()})
	require.ErrorIs(testInstance, executorError, plan.ErrExecutorDependencies)
}
