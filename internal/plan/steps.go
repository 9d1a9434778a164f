package plan

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/procsync/internal/execshell"
	"github.com/temirov/procsync/internal/mutexthread"
	pathutils "github.com/temirov/procsync/internal/utils/path"
)

var planStepHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	unsupportedStepKindTemplateConstant    = "plan step %d: unsupported kind %q"
	stepOptionsDecodeTemplateConstant      = "plan step %d (%s): invalid options: %w"
	stepOptionRequiredTemplateConstant     = "plan step %d (%s): %q is required"
	stepNegativeValueTemplateConstant      = "plan step %d (%s): %q must not be negative"
	execStepNameTemplateConstant           = "exec %s"
	shellStepNameTemplateConstant          = "shell %q"
	lockStepNameTemplateConstant           = "lock x%d"
	writeStepNameTemplateConstant          = "write %s"
	execPathOptionConstant                 = "path"
	lockThreadsOptionConstant              = "threads"
	lockWaitOptionConstant                 = "wait_to_obtain/wait_to_release"
	writeFileOptionConstant                = "file"
	defaultLockThreadCountConstant         = 1
	argumentsJoinSeparatorConstant         = " "
	commandSpecRejectedLogMessageConstant  = "plan exec step rejected command"
	lockContentionFailedLogMessageConstant = "plan lock step failed"
	writeStepFailedLogMessageConstant      = "plan write step failed"
	logFieldStepConstant                   = "step"
)

// Step is a single executable plan entry. Execute reports the runner's boolean outcome.
type Step interface {
	Name() string
	Kind() StepKind
	Execute(environment *Environment) bool
}

type execOptions struct {
	Path      string   `yaml:"path"`
	Arguments []string `yaml:"args"`
	Output    string   `yaml:"output"`
}

type shellOptions struct {
	Command string `yaml:"command"`
}

type lockOptions struct {
	Threads       int           `yaml:"threads"`
	WaitToObtain  time.Duration `yaml:"wait_to_obtain"`
	WaitToRelease time.Duration `yaml:"wait_to_release"`
}

type writeOptions struct {
	File    string `yaml:"file"`
	Content string `yaml:"content"`
}

// ExecStep runs an executable directly, optionally redirecting its standard output.
type ExecStep struct {
	StepName       string
	ExecutablePath string
	Arguments      []string
	OutputPath     string
}

// Name returns the configured step label.
func (step *ExecStep) Name() string { return step.StepName }

// Kind returns StepKindExec.
func (step *ExecStep) Kind() StepKind { return StepKindExec }

// Execute runs the executable through the environment's ProcessRunner.
func (step *ExecStep) Execute(environment *Environment) bool {
	spec, specError := execshell.NewCommandSpec(step.ExecutablePath, step.Arguments...)
	if specError != nil {
		environment.Logger.Warn(commandSpecRejectedLogMessageConstant, zap.String(logFieldStepConstant, step.StepName), zap.Error(specError))
		return false
	}
	if len(step.OutputPath) == 0 {
		return environment.ProcessRunner.Run(spec)
	}
	return environment.ProcessRunner.RunRedirected(spec, execshell.RedirectTarget(step.OutputPath))
}

// ShellStep hands a command string to the configured shell.
type ShellStep struct {
	StepName string
	Command  string
}

// Name returns the configured step label.
func (step *ShellStep) Name() string { return step.StepName }

// Kind returns StepKindShell.
func (step *ShellStep) Kind() StepKind { return StepKindShell }

// Execute runs the command through the environment's ShellRunner.
func (step *ShellStep) Execute(environment *Environment) bool {
	return environment.ShellRunner.RunViaShell(step.Command)
}

// LockStep starts delayed mutex threads on the plan's shared lock and joins all of them.
type LockStep struct {
	StepName string
	Request  mutexthread.ContentionRequest
}

// Name returns the configured step label.
func (step *LockStep) Name() string { return step.StepName }

// Kind returns StepKindLock.
func (step *LockStep) Kind() StepKind { return StepKindLock }

// Execute reports true only when every thread acquired and released the lock.
func (step *LockStep) Execute(environment *Environment) bool {
	report, contentionError := environment.LockLauncher.RunContention(environment.Lock, step.Request)
	if contentionError != nil {
		environment.Logger.Warn(lockContentionFailedLogMessageConstant, zap.String(logFieldStepConstant, step.StepName), zap.Error(contentionError))
		return false
	}
	return report.Succeeded
}

// WriteStep replaces a file's contents.
type WriteStep struct {
	StepName string
	FilePath string
	Content  string
}

// Name returns the configured step label.
func (step *WriteStep) Name() string { return step.StepName }

// Kind returns StepKindWrite.
func (step *WriteStep) Kind() StepKind { return StepKindWrite }

// Execute writes the content through the environment's writer service.
func (step *WriteStep) Execute(environment *Environment) bool {
	if writeError := environment.Writer.Write(step.FilePath, step.Content); writeError != nil {
		environment.Logger.Warn(writeStepFailedLogMessageConstant, zap.String(logFieldStepConstant, step.StepName), zap.Error(writeError))
		return false
	}
	return true
}

// BuildSteps converts the declarative configuration into executable steps.
func BuildSteps(configuration Configuration) ([]Step, error) {
	steps := make([]Step, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		step, buildError := buildStep(stepIndex+1, configuration.Steps[stepIndex])
		if buildError != nil {
			return nil, buildError
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func buildStep(stepNumber int, stepConfiguration StepConfiguration) (Step, error) {
	switch stepConfiguration.Kind {
	case StepKindExec:
		return buildExecStep(stepNumber, stepConfiguration)
	case StepKindShell:
		return buildShellStep(stepNumber, stepConfiguration)
	case StepKindLock:
		return buildLockStep(stepNumber, stepConfiguration)
	case StepKindWrite:
		return buildWriteStep(stepNumber, stepConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedStepKindTemplateConstant, stepNumber, stepConfiguration.Kind)
	}
}

func decodeStepOptions(stepNumber int, stepConfiguration StepConfiguration, target any) error {
	if stepConfiguration.Options.Kind == 0 {
		return nil
	}
	if decodeError := stepConfiguration.Options.Decode(target); decodeError != nil {
		return fmt.Errorf(stepOptionsDecodeTemplateConstant, stepNumber, stepConfiguration.Kind, decodeError)
	}
	return nil
}

func buildExecStep(stepNumber int, stepConfiguration StepConfiguration) (Step, error) {
	var options execOptions
	if decodeError := decodeStepOptions(stepNumber, stepConfiguration, &options); decodeError != nil {
		return nil, decodeError
	}
	if len(strings.TrimSpace(options.Path)) == 0 {
		return nil, fmt.Errorf(stepOptionRequiredTemplateConstant, stepNumber, stepConfiguration.Kind, execPathOptionConstant)
	}

	stepName := stepConfiguration.Name
	if len(stepName) == 0 {
		stepName = fmt.Sprintf(execStepNameTemplateConstant, strings.Join(append([]string{options.Path}, options.Arguments...), argumentsJoinSeparatorConstant))
	}

	return &ExecStep{
		StepName:       stepName,
		ExecutablePath: options.Path,
		Arguments:      options.Arguments,
		OutputPath:     planStepHomeDirectoryExpander.Expand(strings.TrimSpace(options.Output)),
	}, nil
}

func buildShellStep(stepNumber int, stepConfiguration StepConfiguration) (Step, error) {
	var options shellOptions
	if decodeError := decodeStepOptions(stepNumber, stepConfiguration, &options); decodeError != nil {
		return nil, decodeError
	}

	stepName := stepConfiguration.Name
	if len(stepName) == 0 {
		stepName = fmt.Sprintf(shellStepNameTemplateConstant, options.Command)
	}

	// An empty command is kept so plans can assert that the shell runner rejects it.
	return &ShellStep{StepName: stepName, Command: options.Command}, nil
}

func buildLockStep(stepNumber int, stepConfiguration StepConfiguration) (Step, error) {
	var options lockOptions
	if decodeError := decodeStepOptions(stepNumber, stepConfiguration, &options); decodeError != nil {
		return nil, decodeError
	}
	if options.Threads < 0 {
		return nil, fmt.Errorf(stepNegativeValueTemplateConstant, stepNumber, stepConfiguration.Kind, lockThreadsOptionConstant)
	}
	if options.WaitToObtain < 0 || options.WaitToRelease < 0 {
		return nil, fmt.Errorf(stepNegativeValueTemplateConstant, stepNumber, stepConfiguration.Kind, lockWaitOptionConstant)
	}
	if options.Threads == 0 {
		options.Threads = defaultLockThreadCountConstant
	}

	stepName := stepConfiguration.Name
	if len(stepName) == 0 {
		stepName = fmt.Sprintf(lockStepNameTemplateConstant, options.Threads)
	}

	return &LockStep{
		StepName: stepName,
		Request: mutexthread.ContentionRequest{
			Threads:       options.Threads,
			WaitToObtain:  options.WaitToObtain,
			WaitToRelease: options.WaitToRelease,
		},
	}, nil
}

func buildWriteStep(stepNumber int, stepConfiguration StepConfiguration) (Step, error) {
	var options writeOptions
	if decodeError := decodeStepOptions(stepNumber, stepConfiguration, &options); decodeError != nil {
		return nil, decodeError
	}
	if len(strings.TrimSpace(options.File)) == 0 {
		return nil, fmt.Errorf(stepOptionRequiredTemplateConstant, stepNumber, stepConfiguration.Kind, writeFileOptionConstant)
	}

	filePath := planStepHomeDirectoryExpander.Expand(strings.TrimSpace(options.File))
	stepName := stepConfiguration.Name
	if len(stepName) == 0 {
		stepName = fmt.Sprintf(writeStepNameTemplateConstant, filePath)
	}

	return &WriteStep{StepName: stepName, FilePath: filePath, Content: options.Content}, nil
}
