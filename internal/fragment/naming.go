package fragment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goName converts a snake_case or kebab-case name into a Go identifier.
// Exported names start with an upper-case letter; the rest of each word
// keeps its original case, so "HTTPCommunicate" survives unchanged.
func goName(name string, exported bool) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	// Casers carry state and are not safe for concurrent use.
	title := cases.Title(language.Und, cases.NoLower)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	for i, part := range parts {
		if i == 0 && !exported {
			b.WriteString(lower.String(part))
			continue
		}
		b.WriteString(title.String(part))
	}
	return b.String()
}
