package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/procsync/internal/execshell"
)

func TestNewCommandSpecValidation(testInstance *testing.T) {
	testCases := []struct {
		name           string
		executablePath string
		arguments      []string
		expectError    error
		expectedVector []string
	}{
		{
			name:           "absolute_with_arguments",
			executablePath: "/bin/echo",
			arguments:      []string{"hello", "world"},
			expectedVector: []string{"/bin/echo", "hello", "world"},
		},
		{
			name:           "absolute_without_arguments",
			executablePath: "/bin/true",
			expectedVector: []string{"/bin/true"},
		},
		{
			name:           "empty_path",
			executablePath: "",
			expectError:    execshell.ErrInvalidArgument,
		},
		{
			name:           "relative_path",
			executablePath: "echo",
			expectError:    execshell.ErrRelativeExecutablePath,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			spec, specError := execshell.NewCommandSpec(testCase.executablePath, testCase.arguments...)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, specError, testCase.expectError)
				require.ErrorIs(testInstance, specError, execshell.ErrInvalidArgument)
				require.True(testInstance, spec.IsEmpty())
				return
			}

			require.NoError(testInstance, specError)
			require.False(testInstance, spec.IsEmpty())
			require.Equal(testInstance, testCase.expectedVector, spec.ArgumentVector())
			require.Equal(testInstance, testCase.executablePath, spec.Executable())
		})
	}
}

func TestCommandSpecIsImmutable(testInstance *testing.T) {
	arguments := []string{"first", "second"}
	spec, specError := execshell.NewCommandSpec("/bin/echo", arguments...)
	require.NoError(testInstance, specError)

	arguments[0] = "mutated"
	require.Equal(testInstance, []string{"first", "second"}, spec.Arguments())

	returnedVector := spec.ArgumentVector()
	returnedVector[0] = "/bin/false"
	require.Equal(testInstance, "/bin/echo", spec.Executable())

	returnedArguments := spec.Arguments()
	returnedArguments[1] = "changed"
	require.Equal(testInstance, "/bin/echo first second", spec.String())
}

func TestEmptyCommandSpec(testInstance *testing.T) {
	var spec execshell.CommandSpec

	require.True(testInstance, spec.IsEmpty())
	require.Empty(testInstance, spec.Executable())
	require.Empty(testInstance, spec.Arguments())
	require.Empty(testInstance, spec.ArgumentVector())
}
