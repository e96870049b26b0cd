package marker

import (
	"go/ast"
	"go/token"
	"regexp"
	"strconv"

	"github.com/roach88/splice/internal/template"
)

// pattern matches a marker token and captures its name.
var pattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Scan walks the template's syntax tree depth-first and records every marker
// found in a string-literal statement.
//
// Two node shapes carry markers:
//
//	"{{name}}"            // expression statement holding only a string literal
//	var _ = "{{name}}"    // blank declaration of a string literal
//
// The literal text is searched as opaque text; its position in the tree does
// not matter, so markers in nested blocks, closures and method bodies are
// found the same way as top-level ones.
func Scan(t *template.Template) *Table {
	table := newTable()

	ast.Inspect(t.File(), func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.ExprStmt:
			if lit, ok := stringLiteral(node.X); ok {
				record(table, t, node, lit)
			}
		case *ast.GenDecl:
			if lit, ok := blankDeclLiteral(node); ok {
				record(table, t, node, lit)
			}
		}
		return true
	})

	return table
}

// record appends one occurrence per marker match in lit.
func record(table *Table, t *template.Template, owner ast.Node, lit *ast.BasicLit) {
	content := literalValue(lit)
	matches := pattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return
	}

	line := t.LineOf(lit.Pos())
	stmt := t.Source(owner)
	for _, m := range matches {
		table.add(Occurrence{
			Name:      m[1],
			Node:      owner,
			Line:      line,
			Whole:     content == m[0],
			Statement: stmt,
		})
	}
}

// stringLiteral reports whether expr is a string constant.
func stringLiteral(expr ast.Expr) (*ast.BasicLit, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, false
	}
	return lit, true
}

// blankDeclLiteral matches `var _ = "..."` and `const _ = "..."`.
func blankDeclLiteral(decl *ast.GenDecl) (*ast.BasicLit, bool) {
	if decl.Tok != token.VAR && decl.Tok != token.CONST {
		return nil, false
	}
	if decl.Lparen.IsValid() || len(decl.Specs) != 1 {
		return nil, false
	}
	spec, ok := decl.Specs[0].(*ast.ValueSpec)
	if !ok || spec.Type != nil || len(spec.Names) != 1 || len(spec.Values) != 1 {
		return nil, false
	}
	if spec.Names[0].Name != "_" {
		return nil, false
	}
	return stringLiteral(spec.Values[0])
}

// literalValue returns the unquoted literal, falling back to its raw text.
func literalValue(lit *ast.BasicLit) string {
	if s, err := strconv.Unquote(lit.Value); err == nil {
		return s
	}
	return lit.Value
}
