package plan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationPathRequiredMessageConstant = "plan path must be provided"
	configurationEmptyStepsMessageConstant   = "plan must define at least one step"
	configurationLoadErrorTemplateConstant   = "failed to load plan: %w"
	configurationParseErrorTemplateConstant  = "failed to parse plan: %w"
	stepKindMissingTemplateConstant          = "plan step %d missing kind"
)

// StepKind identifies supported plan steps.
type StepKind string

// Supported plan steps.
const (
	StepKindExec  StepKind = StepKind("exec")
	StepKindShell StepKind = StepKind("shell")
	StepKindLock  StepKind = StepKind("lock")
	StepKindWrite StepKind = StepKind("write")
)

// ErrEmptyPlan indicates a plan without steps.
var ErrEmptyPlan = errors.New(configurationEmptyStepsMessageConstant)

// Configuration describes an ordered list of steps.
type Configuration struct {
	ContinueOnError bool                `yaml:"continue_on_error"`
	Steps           []StepConfiguration `yaml:"steps"`
}

// StepConfiguration associates a step kind with its kind-specific options under "with".
type StepConfiguration struct {
	Name          string    `yaml:"name"`
	Kind          StepKind  `yaml:"kind"`
	ExpectFailure bool      `yaml:"expect_failure"`
	Options       yaml.Node `yaml:"with"`
}

// LoadConfiguration reads a plan from disk and validates its shape.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes a YAML plan document.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, ErrEmptyPlan
	}

	for stepIndex := range configuration.Steps {
		trimmedKind := strings.ToLower(strings.TrimSpace(string(configuration.Steps[stepIndex].Kind)))
		if len(trimmedKind) == 0 {
			return Configuration{}, fmt.Errorf(stepKindMissingTemplateConstant, stepIndex+1)
		}
		configuration.Steps[stepIndex].Kind = StepKind(trimmedKind)
		configuration.Steps[stepIndex].Name = strings.TrimSpace(configuration.Steps[stepIndex].Name)
	}

	return configuration, nil
}
