// Package fragment turns structured configuration into code fragments.
//
// A Generator is a named function from configuration parameters to fragment
// text. Generators are collected in a Registry populated at startup and
// looked up by name when a scenario binds a marker to a generator.
package fragment

// Params is a structured configuration value a generator decodes into its
// own parameter type. Both *yaml.Node and cue.Value satisfy it.
type Params interface {
	Decode(v any) error
}

// Generator produces fragment text from parameters.
type Generator interface {
	// Name is the registry key, e.g. "queue-initialization".
	Name() string

	// Generate renders the fragment.
	Generate(params Params) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc struct {
	ID string
	Fn func(params Params) (string, error)
}

// Name returns the generator's registry key.
func (g GeneratorFunc) Name() string { return g.ID }

// Generate calls the wrapped function.
func (g GeneratorFunc) Generate(params Params) (string, error) {
	return g.Fn(params)
}

// NoParams is the Params value used when a binding has no parameters.
// Decoding leaves the target untouched.
var NoParams Params = noParams{}

type noParams struct{}

func (noParams) Decode(any) error { return nil }
