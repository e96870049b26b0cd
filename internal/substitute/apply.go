// Package substitute rewrites template lines with marker fragments.
//
// Substitution is line-granular text replacement against the template's
// original line array. All replacements are applied in one batch:
//
//   - markers are processed in lexicographic order of their names;
//   - occurrences of one marker are processed in discovery order;
//   - each occurrence reads its target line as it stands at that moment,
//     including edits made earlier in the same batch.
//
// A fragment containing newlines stays in a single line slot, so the slice
// never changes length and later occurrences keep valid line numbers.
package substitute

import (
	"sort"
	"strings"

	"github.com/roach88/splice/internal/marker"
)

// ReplacementMap maps marker names to fragment text. Names that do not
// appear in the template are ignored.
type ReplacementMap map[string]string

// Mode describes how an occurrence was rewritten.
type Mode string

const (
	// ModeStatement replaced the whole owning statement.
	ModeStatement Mode = "statement"
	// ModeToken replaced the {{name}} token inside the line.
	ModeToken Mode = "token"
	// ModeLine overwrote the line because the token was no longer there.
	ModeLine Mode = "line"
)

// Application records one rewritten occurrence.
type Application struct {
	Marker string `json:"marker"`
	Line   int    `json:"line"`
	Mode   Mode   `json:"mode"`
}

// Result is the rewritten line array plus a record of what happened.
type Result struct {
	// Lines has the same length as the input; slots may hold several
	// physical lines when a fragment contains newlines.
	Lines []string

	// Applied lists rewritten occurrences in application order.
	Applied []Application

	// Unmatched lists replacement names with no marker in the table, sorted.
	Unmatched []string
}

// Text joins the result lines with newlines.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Apply rewrites a copy of lines using the markers in table.
func Apply(table *marker.Table, repl ReplacementMap, lines []string) *Result {
	res := &Result{Lines: make([]string, len(lines))}
	copy(res.Lines, lines)

	for _, name := range sortedNames(repl) {
		occs, ok := table.Lookup(name)
		if !ok {
			res.Unmatched = append(res.Unmatched, name)
			continue
		}

		fragment := repl[name]
		for _, occ := range occs {
			idx := occ.Line - 1
			if idx < 0 || idx >= len(res.Lines) {
				continue
			}
			line, mode := rewrite(res.Lines[idx], occ, fragment)
			res.Lines[idx] = line
			res.Applied = append(res.Applied, Application{
				Marker: name,
				Line:   occ.Line,
				Mode:   mode,
			})
		}
	}

	return res
}

// rewrite applies fragment to a single line for one occurrence.
func rewrite(line string, occ marker.Occurrence, fragment string) (string, Mode) {
	if occ.Whole && occ.Statement != "" {
		if strings.TrimSpace(line) == occ.Statement {
			return fragment, ModeStatement
		}
		if strings.Contains(line, occ.Statement) {
			return strings.Replace(line, occ.Statement, fragment, 1), ModeStatement
		}
	}

	token := occ.Token()
	if strings.Contains(line, token) {
		return strings.Replace(line, token, fragment, 1), ModeToken
	}

	return fragment, ModeLine
}

func sortedNames(repl ReplacementMap) []string {
	names := make([]string, 0, len(repl))
	for name := range repl {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
