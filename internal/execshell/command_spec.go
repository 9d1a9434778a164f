package execshell

import (
	"path/filepath"
	"strings"
)

// CommandSpec is an immutable argument vector whose first element is the absolute path of the executable.
// The zero value is the empty spec, which every runner rejects.
type CommandSpec struct {
	argumentVector []string
}

// NewCommandSpec copies the executable path and arguments into a CommandSpec.
func NewCommandSpec(executablePath string, arguments ...string) (CommandSpec, error) {
	if len(strings.TrimSpace(executablePath)) == 0 {
		return CommandSpec{}, ErrInvalidArgument
	}
	if !filepath.IsAbs(executablePath) {
		return CommandSpec{}, ErrRelativeExecutablePath
	}

	argumentVector := make([]string, 0, len(arguments)+1)
	argumentVector = append(argumentVector, executablePath)
	argumentVector = append(argumentVector, arguments...)

	return CommandSpec{argumentVector: argumentVector}, nil
}

// IsEmpty reports whether the spec carries no executable.
func (spec CommandSpec) IsEmpty() bool {
	return len(spec.argumentVector) == 0
}

// Executable returns the absolute executable path, or an empty string for the empty spec.
func (spec CommandSpec) Executable() string {
	if spec.IsEmpty() {
		return ""
	}
	return spec.argumentVector[0]
}

// Arguments returns a copy of the arguments following the executable.
func (spec CommandSpec) Arguments() []string {
	if len(spec.argumentVector) < 2 {
		return nil
	}
	return append([]string{}, spec.argumentVector[1:]...)
}

// ArgumentVector returns a copy of the full argument vector, argv[0] included.
func (spec CommandSpec) ArgumentVector() []string {
	return append([]string{}, spec.argumentVector...)
}

// String renders the argument vector separated by spaces.
func (spec CommandSpec) String() string {
	return strings.Join(spec.argumentVector, commandArgumentsJoinSeparatorConstant)
}
