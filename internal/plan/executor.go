package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/mutexthread"
	"github.com/temirov/procsync/internal/writer"
)

const (
	stepFailedMessageConstant           = "plan step failed"
	executorDependenciesMessageConstant = "plan executor requires a logger, process and shell runners, a lock launcher, a lock, and a writer"
	stepFailedTemplateConstant          = "%w: step %d (%s) returned %t, expected %t"
	planInterruptedTemplateConstant     = "plan interrupted before step %d: %w"
	stepStartedLogMessageConstant       = "plan step started"
	stepFinishedLogMessageConstant      = "plan step finished"
	stepSkippedLogMessageConstant       = "plan steps skipped"
	logFieldStepNumberConstant          = "step_number"
	logFieldStepNameConstant            = "step_name"
	logFieldStepKindConstant            = "step_kind"
	logFieldStepOutcomeConstant         = "outcome"
	logFieldStepPassedConstant          = "passed"
	logFieldRemainingStepsCountConstant = "remaining_steps"
)

// ErrStepFailed marks a step whose outcome differed from the plan's expectation.
var ErrStepFailed = errors.New(stepFailedMessageConstant)

// ErrExecutorDependencies indicates an Environment missing a collaborator.
var ErrExecutorDependencies = errors.New(executorDependenciesMessageConstant)

// Environment exposes the shared collaborators plan steps run against.
type Environment struct {
	Logger        *zap.Logger
	ProcessRunner *execshell.ProcessRunner
	ShellRunner   *execshell.ShellRunner
	LockLauncher  *mutexthread.Launcher
	Lock          mutexthread.SharedLock
	Writer        *writer.Service
}

// StepReport records the result of one executed step.
type StepReport struct {
	Number        int      `yaml:"number"`
	Name          string   `yaml:"name"`
	Kind          StepKind `yaml:"kind"`
	Outcome       bool     `yaml:"outcome"`
	ExpectFailure bool     `yaml:"expect_failure,omitempty"`
	Passed        bool     `yaml:"passed"`
}

// Report summarizes an executed plan. Steps that never ran are absent.
type Report struct {
	Steps  []StepReport `yaml:"steps"`
	Passed bool         `yaml:"passed"`
}

type plannedStep struct {
	step          Step
	expectFailure bool
}

// Executor runs plan steps in order.
type Executor struct {
	steps           []plannedStep
	continueOnError bool
	environment     Environment
}

// NewExecutor builds the configured steps and validates the environment.
func NewExecutor(configuration Configuration, environment Environment) (*Executor, error) {
	if environment.Logger == nil || environment.ProcessRunner == nil || environment.ShellRunner == nil ||
		environment.LockLauncher == nil || environment.Lock == nil || environment.Writer == nil {
		return nil, ErrExecutorDependencies
	}

	steps, buildError := BuildSteps(configuration)
	if buildError != nil {
		return nil, buildError
	}

	plannedSteps := make([]plannedStep, 0, len(steps))
	for stepIndex := range steps {
		plannedSteps = append(plannedSteps, plannedStep{step: steps[stepIndex], expectFailure: configuration.Steps[stepIndex].ExpectFailure})
	}

	return &Executor{steps: plannedSteps, continueOnError: configuration.ContinueOnError, environment: environment}, nil
}

// Execute runs every step in order. It stops at the first failing step unless the plan continues on error,
// and checks executionContext between steps. Every failing step contributes an ErrStepFailed to the returned error.
func (executor *Executor) Execute(executionContext context.Context) (Report, error) {
	report := Report{Steps: make([]StepReport, 0, len(executor.steps)), Passed: true}
	logger := executor.environment.Logger
	var stepErrors []error

	for stepIndex, planned := range executor.steps {
		stepNumber := stepIndex + 1
		if contextError := executionContext.Err(); contextError != nil {
			report.Passed = false
			stepErrors = append(stepErrors, fmt.Errorf(planInterruptedTemplateConstant, stepNumber, contextError))
			break
		}

		stepLogger := logger.With(
			zap.Int(logFieldStepNumberConstant, stepNumber),
			zap.String(logFieldStepNameConstant, planned.step.Name()),
			zap.String(logFieldStepKindConstant, string(planned.step.Kind())),
		)
		stepLogger.Debug(stepStartedLogMessageConstant)

		outcome := planned.step.Execute(&executor.environment)
		passed := outcome != planned.expectFailure
		stepLogger.Info(stepFinishedLogMessageConstant, zap.Bool(logFieldStepOutcomeConstant, outcome), zap.Bool(logFieldStepPassedConstant, passed))

		report.Steps = append(report.Steps, StepReport{
			Number:        stepNumber,
			Name:          planned.step.Name(),
			Kind:          planned.step.Kind(),
			Outcome:       outcome,
			ExpectFailure: planned.expectFailure,
			Passed:        passed,
		})

		if passed {
			continue
		}

		report.Passed = false
		stepErrors = append(stepErrors, fmt.Errorf(stepFailedTemplateConstant, ErrStepFailed, stepNumber, planned.step.Name(), outcome, !planned.expectFailure))
		if !executor.continueOnError {
			if remainingSteps := len(executor.steps) - stepNumber; remainingSteps > 0 {
				logger.Info(stepSkippedLogMessageConstant, zap.Int(logFieldRemainingStepsCountConstant, remainingSteps))
			}
			break
		}
	}

	return report, errors.Join(stepErrors...)
}
