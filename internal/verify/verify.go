// Package verify re-parses generated text to check that it is still Go.
//
// Verification is advisory: a failed check yields a Diagnostic value, never
// an error, and the caller decides whether to keep, warn about or discard
// the text.
package verify

import (
	"errors"
	"fmt"
	"go/format"

	"github.com/roach88/splice/internal/template"
)

// Diagnostic describes why generated text failed to parse.
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Check parses text with the template grammar rules. It returns nil when
// the text parses.
func Check(text string) *Diagnostic {
	_, err := template.Parse("", text)
	if err == nil {
		return nil
	}

	var pe *template.ParseError
	if errors.As(err, &pe) {
		return &Diagnostic{Line: pe.Line, Column: pe.Column, Message: pe.Message}
	}
	return &Diagnostic{Line: 1, Column: 1, Message: err.Error()}
}

// Format gofmt-formats text. It accepts the same fragments Check does.
func Format(text string) (string, error) {
	out, err := format.Source([]byte(text))
	if err != nil {
		return "", fmt.Errorf("format generated source: %w", err)
	}
	return string(out), nil
}
