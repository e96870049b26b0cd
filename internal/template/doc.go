// Package template parses generation templates written in Go.
//
// A template is Go source with placeholder markers of the form {{name}}
// embedded in string-literal statements. Parse accepts three grammars, tried
// in the same order gofmt uses for source fragments:
//
//  1. a complete source file (starts with a package clause)
//  2. a list of top-level declarations
//  3. a list of statements
//
// Fragments are parsed by prepending a synthetic package clause (and function
// header for statement lists) on the template's first line, so line numbers in
// the syntax tree always match the template text line for line.
//
// A Template is immutable once parsed. Line numbers and node offsets are only
// meaningful against the Template they were computed from.
package template
