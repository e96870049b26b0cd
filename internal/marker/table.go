// Package marker finds {{name}} placeholders in a parsed template.
package marker

import "go/ast"

// Occurrence is one appearance of a marker in a template.
type Occurrence struct {
	// Name is the marker identifier without braces.
	Name string

	// Node is the statement (or blank declaration) owning the literal.
	Node ast.Node

	// Line is the 1-based line on which the owning literal starts.
	// Markers inside multi-line literals are all attributed to this line.
	Line int

	// Whole is true when the marker token is the literal's entire content.
	Whole bool

	// Statement is the owning node's original source text.
	Statement string
}

// Token returns the delimited form of the marker, e.g. "{{name}}".
func (o Occurrence) Token() string {
	return Token(o.Name)
}

// Token wraps name in marker delimiters.
func Token(name string) string {
	return "{{" + name + "}}"
}

// Table maps marker names to their occurrences in discovery order.
// A Table is built once by Scan and never modified afterwards.
type Table struct {
	names       []string
	occurrences map[string][]Occurrence
}

func newTable() *Table {
	return &Table{occurrences: make(map[string][]Occurrence)}
}

func (t *Table) add(occ Occurrence) {
	if _, ok := t.occurrences[occ.Name]; !ok {
		t.names = append(t.names, occ.Name)
	}
	t.occurrences[occ.Name] = append(t.occurrences[occ.Name], occ)
}

// Lookup returns the occurrences of name and whether the marker exists.
// The returned slice is a copy.
func (t *Table) Lookup(name string) ([]Occurrence, bool) {
	occs, ok := t.occurrences[name]
	if !ok {
		return nil, false
	}
	out := make([]Occurrence, len(occs))
	copy(out, occs)
	return out, true
}

// Has reports whether name was found in the template.
func (t *Table) Has(name string) bool {
	_, ok := t.occurrences[name]
	return ok
}

// Names returns marker names in the order they were first discovered.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of distinct markers.
func (t *Table) Len() int {
	return len(t.names)
}

// All returns every occurrence, grouped by name in discovery order.
func (t *Table) All() []Occurrence {
	var out []Occurrence
	for _, name := range t.names {
		out = append(out, t.occurrences[name]...)
	}
	return out
}
