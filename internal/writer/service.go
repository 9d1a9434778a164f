package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant = "writer logger not configured"
	missingFilePathMessageConstant     = "file path must be provided"
	openFailureTemplateConstant        = "unable to open %s: %w"
	writeFailureTemplateConstant       = "unable to write %s: %w"
	closeFailureTemplateConstant       = "unable to close %s: %w"
	writeSucceededTemplateConstant     = "Successfully wrote '%s' to file '%s'"
	writeFailedLogMessageConstant      = "file write failed"
	logFieldFilePathConstant           = "file_path"
	targetFileFlagsConstant            = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	targetFilePermissionsConstant      = 0o644
)

// ErrLoggerNotConfigured indicates that a Service was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrMissingFilePath indicates an empty destination path.
var ErrMissingFilePath = errors.New(missingFilePathMessageConstant)

// Service writes content to files.
type Service struct {
	logger *zap.Logger
}

// NewService constructs a Service that reports through logger.
func NewService(logger *zap.Logger) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	return &Service{logger: logger}, nil
}

// Write creates or truncates filePath and stores content in it verbatim, without a trailing newline.
func (service *Service) Write(filePath string, content string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		service.logger.Error(writeFailedLogMessageConstant, zap.Error(ErrMissingFilePath))
		return ErrMissingFilePath
	}

	if writeError := writeFile(filePath, content); writeError != nil {
		service.logger.Error(writeFailedLogMessageConstant, zap.String(logFieldFilePathConstant, filePath), zap.Error(writeError))
		return writeError
	}

	service.logger.Debug(fmt.Sprintf(writeSucceededTemplateConstant, content, filePath))
	return nil
}

func writeFile(filePath string, content string) error {
	targetFile, openError := os.OpenFile(filePath, targetFileFlagsConstant, targetFilePermissionsConstant)
	if openError != nil {
		return fmt.Errorf(openFailureTemplateConstant, filePath, openError)
	}

	if _, writeError := io.WriteString(targetFile, content); writeError != nil {
		_ = targetFile.Close()
		return fmt.Errorf(writeFailureTemplateConstant, filePath, writeError)
	}

	if closeError := targetFile.Close(); closeError != nil {
		return fmt.Errorf(closeFailureTemplateConstant, filePath, closeError)
	}
	return nil
}
