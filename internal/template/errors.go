package template

import (
	"errors"
	"fmt"
	"go/scanner"
)

// ParseError reports why template text is not valid Go.
// Line and Column are 1-based and refer to the template text, not to any
// synthetic wrapper added while parsing a fragment.
type ParseError struct {
	Name    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// IsParseError returns true if err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// newParseError converts a go/parser error into a ParseError positioned
// against the original template lines.
//
// prefix is the number of bytes inserted before the template on line 1.
func newParseError(name string, err error, prefix int, lines []string) *ParseError {
	pe := &ParseError{Name: name, Line: 1, Column: 1, Message: err.Error()}

	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		first := list[0]
		pe.Line = first.Pos.Line
		pe.Column = first.Pos.Column
		pe.Message = first.Msg
	}

	if pe.Line == 1 && prefix > 0 {
		pe.Column -= prefix
	}
	if pe.Column < 1 {
		pe.Column = 1
	}

	// Errors reported against the synthetic closing brace of a statement
	// list land past the end of the template.
	if n := len(lines); n > 0 && pe.Line > n {
		pe.Line = n
		pe.Column = len(lines[n-1]) + 1
	}
	if pe.Line < 1 {
		pe.Line = 1
	}

	return pe
}
