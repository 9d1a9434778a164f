package lock

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/procsync/internal/mutexthread"
)

const (
	reportFormatYAMLConstant          = "yaml"
	reportFormatTextConstant          = "text"
	yamlIndentConstant                = 2
	textThreadLineTemplateConstant    = "%s acquired_after=%s held_for=%s success=%t\n"
	textSummaryLineTemplateConstant   = "succeeded=%t\n"
	unsupportedFormatTemplateConstant = "unsupported report format %q"
)

func renderReport(output io.Writer, format string, report mutexthread.ContentionReport) error {
	switch format {
	case reportFormatYAMLConstant:
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(report); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	case reportFormatTextConstant:
		for _, threadReport := range report.Threads {
			if _, writeError := fmt.Fprintf(output, textThreadLineTemplateConstant, threadReport.ID, threadReport.AcquiredAfter, threadReport.HeldFor, threadReport.Success); writeError != nil {
				return writeError
			}
		}
		_, writeError := fmt.Fprintf(output, textSummaryLineTemplateConstant, report.Succeeded)
		return writeError
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}
