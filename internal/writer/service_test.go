package writer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/procsync/internal/writer"
)

const (
	testFileNameConstant          = "writer.txt"
	testContentConstant           = "procsync"
	testPreviousContentConstant   = "previous content that is longer"
	testMissingDirectoryConstant  = "missing"
	testSuccessLogMessageConstant = "Successfully wrote 'procsync' to file '%s'"
	testFailureLogMessageConstant = "file write failed"
)

func TestNewServiceRequiresLogger(testInstance *testing.T) {
	service, creationError := writer.NewService(nil)
	require.ErrorIs(testInstance, creationError, writer.ErrLoggerNotConfigured)
	require.Nil(testInstance, service)
}

func TestServiceWrite(testInstance *testing.T) {
	testCases := []struct {
		name            string
		previousContent *string
		content         string
	}{
		{name: "creates_file", content: testContentConstant},
		{name: "truncates_existing_file", previousContent: ptr(testPreviousContentConstant), content: testContentConstant},
		{name: "empty_content", previousContent: ptr(testPreviousContentConstant), content: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			service, creationError := writer.NewService(zap.New(observerCore))
			require.NoError(testInstance, creationError)

			filePath := filepath.Join(testInstance.TempDir(), testFileNameConstant)
			if testCase.previousContent != nil {
				require.NoError(testInstance, os.WriteFile(filePath, []byte(*testCase.previousContent), 0o600))
			}

			require.NoError(testInstance, service.Write(filePath, testCase.content))

			writtenContent, readError := os.ReadFile(filePath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.content, string(writtenContent))

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, zapcore.DebugLevel, entries[0].Level)
		})
	}
}

func TestServiceWriteLogsSuccessMessage(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	service, creationError := writer.NewService(zap.New(observerCore))
	require.NoError(testInstance, creationError)

	filePath := filepath.Join(testInstance.TempDir(), testFileNameConstant)
	require.NoError(testInstance, service.Write(filePath, testContentConstant))

	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, fmt.Sprintf(testSuccessLogMessageConstant, filePath), entries[0].Message)
}

func TestServiceWriteFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		filePath      func(directory string) string
		expectedError error
	}{
		{
			name:          "empty_path",
			filePath:      func(string) string { return "" },
			expectedError: writer.ErrMissingFilePath,
		},
		{
			name: "missing_directory",
			filePath: func(directory string) string {
				return filepath.Join(directory, testMissingDirectoryConstant, testFileNameConstant)
			},
			expectedError: os.ErrNotExist,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			service, creationError := writer.NewService(zap.New(observerCore))
			require.NoError(testInstance, creationError)

			writeError := service.Write(testCase.filePath(testInstance.TempDir()), testContentConstant)
			require.ErrorIs(testInstance, writeError, testCase.expectedError)

			failureEntries := observedLogs.FilterMessage(testFailureLogMessageConstant).All()
			require.Len(testInstance, failureEntries, 1)
			require.Equal(testInstance, zapcore.ErrorLevel, failureEntries[0].Level)
		})
	}
}

func ptr(value string) *string {
	return &value
}
