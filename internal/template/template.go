package template

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// Kind identifies which Go grammar a template was parsed as.
type Kind int

const (
	// KindFile is a complete source file with a package clause.
	KindFile Kind = iota
	// KindDeclarations is a list of top-level declarations.
	KindDeclarations
	// KindStatements is a list of statements, parsed as a function body.
	KindStatements
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDeclarations:
		return "declarations"
	case KindStatements:
		return "statements"
	default:
		return "unknown"
	}
}

// Synthetic wrappers for fragments. Both end without a newline so the
// template's first line shares line 1 with the wrapper.
const (
	declarationPrefix = "package p;"
	statementPrefix   = "package p; func _() {"
	statementSuffix   = "\n\n}"
)

const parserMode = parser.ParseComments | parser.SkipObjectResolution

// Template is parsed template text together with its syntax tree.
type Template struct {
	name   string
	src    string
	lines  []string
	kind   Kind
	fset   *token.FileSet
	file   *ast.File
	prefix int
}

// Parse parses src as a Go file, declaration list or statement list.
// name is used in error messages only and may be empty.
//
// On failure the returned error is a *ParseError.
func Parse(name, src string) (*Template, error) {
	t := &Template{
		name:  name,
		src:   src,
		lines: strings.Split(src, "\n"),
		fset:  token.NewFileSet(),
	}

	// Try as a whole source file.
	file, err := parser.ParseFile(t.fset, name, src, parserMode)
	if err == nil {
		t.file, t.kind = file, KindFile
		return t, nil
	}
	if !strings.Contains(err.Error(), "expected 'package'") {
		return nil, newParseError(name, err, 0, t.lines)
	}

	// Declaration list: insert a package clause.
	file, err = parser.ParseFile(t.fset, name, declarationPrefix+src, parserMode)
	if err == nil {
		t.file, t.kind, t.prefix = file, KindDeclarations, len(declarationPrefix)
		return t, nil
	}
	if !strings.Contains(err.Error(), "expected declaration") {
		return nil, newParseError(name, err, len(declarationPrefix), t.lines)
	}

	// Statement list: turn it into a function body.
	file, err = parser.ParseFile(t.fset, name, statementPrefix+src+statementSuffix, parserMode)
	if err != nil {
		return nil, newParseError(name, err, len(statementPrefix), t.lines)
	}
	t.file, t.kind, t.prefix = file, KindStatements, len(statementPrefix)
	return t, nil
}

// Name returns the name the template was parsed with.
func (t *Template) Name() string { return t.name }

// Text returns the raw template text.
func (t *Template) Text() string { return t.src }

// Kind returns the grammar the template was parsed as.
func (t *Template) Kind() Kind { return t.kind }

// File returns the root of the syntax tree. For fragments this is the
// synthetic file wrapping the template.
func (t *Template) File() *ast.File { return t.file }

// FileSet returns the file set holding the tree's positions.
func (t *Template) FileSet() *token.FileSet { return t.fset }

// LineCount returns the number of lines in the template text.
func (t *Template) LineCount() int { return len(t.lines) }

// Line returns the 1-based line n, or "" if n is out of range.
func (t *Template) Line(n int) string {
	if n < 1 || n > len(t.lines) {
		return ""
	}
	return t.lines[n-1]
}

// Lines returns a copy of the template's lines.
func (t *Template) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// LineOf returns the template line holding pos.
func (t *Template) LineOf(pos token.Pos) int {
	return t.fset.Position(pos).Line
}

// Source returns the original template text spanned by node, or "" when the
// node lies in a synthetic wrapper.
func (t *Template) Source(node ast.Node) string {
	start, ok := t.offset(node.Pos())
	if !ok {
		return ""
	}
	end, ok := t.offset(node.End())
	if !ok || end < start {
		return ""
	}
	return t.src[start:end]
}

// offset maps a tree position to a byte offset in the template text.
func (t *Template) offset(pos token.Pos) (int, bool) {
	if !pos.IsValid() {
		return 0, false
	}
	off := t.fset.Position(pos).Offset - t.prefix
	if off < 0 || off > len(t.src) {
		return 0, false
	}
	return off, true
}
