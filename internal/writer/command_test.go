package writer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pathutils "github.com/temirov/procsync/internal/utils/path"
	"github.com/temirov/procsync/internal/writer"
)

func TestWriteCommand(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()

	testCases := []struct {
		name          string
		arguments     []string
		expectError   bool
		expectedPath  string
		expectedValue string
	}{
		{
			name:          "writes_absolute_path",
			arguments:     []string{filepath.Join(homeDirectory, "absolute.txt"), "hello"},
			expectedPath:  filepath.Join(homeDirectory, "absolute.txt"),
			expectedValue: "hello",
		},
		{
			name:          "expands_home_directory",
			arguments:     []string{"~/expanded.txt", "world"},
			expectedPath:  filepath.Join(homeDirectory, "expanded.txt"),
			expectedValue: "world",
		},
		{
			name:        "rejects_single_argument",
			arguments:   []string{filepath.Join(homeDirectory, "single.txt")},
			expectError: true,
		},
		{
			name:        "rejects_extra_arguments",
			arguments:   []string{filepath.Join(homeDirectory, "extra.txt"), "a", "b"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builder := writer.CommandBuilder{
				LoggerProvider: func() *zap.Logger { return zap.NewNop() },
				HomeExpander: pathutils.NewHomeExpanderWithProvider(func() (string, error) {
					return homeDirectory, nil
				}),
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			command.SetArgs(testCase.arguments)
			executionError := command.Execute()
			if testCase.expectError {
				require.Error(testInstance, executionError)
				return
			}
			require.NoError(testInstance, executionError)

			writtenContent, readError := os.ReadFile(testCase.expectedPath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedValue, string(writtenContent))
		})
	}
}
