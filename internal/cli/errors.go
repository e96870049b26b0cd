package cli

import (
	"errors"

	"github.com/roach88/splice/internal/fragment"
	"github.com/roach88/splice/internal/scenario"
	"github.com/roach88/splice/internal/template"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric          = "E001" // Generic/unknown error
	ErrCodeConfigNotFound   = "E002" // Scenario file missing or unreadable
	ErrCodeConfigInvalid    = "E003" // Scenario file malformed
	ErrCodeTemplateMissing  = "E004" // Template file missing or unreadable
	ErrCodeTemplateParse    = "E005" // Template is not valid Go
	ErrCodeUnknownGenerator = "E006" // Scenario names an unregistered generator
	ErrCodeWriteFailed      = "E007" // Output write error
	ErrCodeFragmentFailed   = "E008" // Generator returned an error
	ErrCodeJournalFailed    = "E009" // Journal open/append/list error
	ErrCodeOutputInvalid    = "E010" // Generated or verified text does not parse
)

// errorCode maps a pipeline error to its CLI error code.
func errorCode(err error) string {
	var (
		loadErr  *scenario.LoadError
		tmplErr  *scenario.TemplateNotFoundError
		parseErr *template.ParseError
		unknown  *fragment.UnknownGeneratorError
		genErr   *fragment.GenerateError
	)

	switch {
	case errors.As(err, &loadErr):
		if loadErr.Kind == scenario.ErrKindNotFound {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.As(err, &tmplErr):
		return ErrCodeTemplateMissing
	case errors.As(err, &parseErr):
		return ErrCodeTemplateParse
	case errors.As(err, &unknown):
		return ErrCodeUnknownGenerator
	case errors.As(err, &genErr):
		return ErrCodeFragmentFailed
	default:
		return ErrCodeGeneric
	}
}
