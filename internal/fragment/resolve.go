package fragment

import (
	"sort"

	"github.com/roach88/splice/internal/substitute"
)

// Spec binds one marker to either literal text or a named generator.
type Spec struct {
	Marker string

	// Text is used verbatim when Generator is empty.
	Text string

	// Generator names a registered generator.
	Generator string

	// Params is passed to the generator. Nil means no parameters.
	Params Params
}

// Resolve renders every spec into a replacement map. Specs are processed in
// marker order so the first reported failure is deterministic.
func Resolve(reg *Registry, specs []Spec) (substitute.ReplacementMap, error) {
	ordered := make([]Spec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Marker < ordered[j].Marker
	})

	repl := make(substitute.ReplacementMap, len(ordered))
	for _, spec := range ordered {
		if spec.Generator == "" {
			repl[spec.Marker] = spec.Text
			continue
		}

		g, err := reg.Get(spec.Generator)
		if err != nil {
			return nil, err
		}

		params := spec.Params
		if params == nil {
			params = NoParams
		}
		text, err := g.Generate(params)
		if err != nil {
			return nil, &GenerateError{Marker: spec.Marker, Generator: spec.Generator, Err: err}
		}
		repl[spec.Marker] = text
	}

	return repl, nil
}
