package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/splice/internal/fragment"
)

// Scenario is a loaded generation job.
type Scenario struct {
	// Path is the scenario file the job was loaded from.
	Path string

	// Template is the resolved template path.
	Template string

	// Output is the resolved output path; empty means stdout.
	Output string

	// Format requests gofmt formatting of valid output.
	Format bool

	// Fragments binds markers to fragments, sorted by marker.
	Fragments []fragment.Spec
}

// Markers returns the bound marker names in order.
func (s *Scenario) Markers() []string {
	names := make([]string, len(s.Fragments))
	for i, f := range s.Fragments {
		names[i] = f.Marker
	}
	return names
}

// LoadErrorKind categorizes scenario load failures.
type LoadErrorKind string

const (
	// ErrKindNotFound indicates the scenario file could not be read.
	ErrKindNotFound LoadErrorKind = "NOT_FOUND"

	// ErrKindInvalid indicates the scenario file is malformed.
	ErrKindInvalid LoadErrorKind = "INVALID"
)

// LoadError reports a scenario that could not be loaded.
type LoadError struct {
	Kind    LoadErrorKind
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// TemplateNotFoundError reports an unreadable template file.
type TemplateNotFoundError struct {
	Path string
	Err  error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return e.Err
}

// IsTemplateNotFound returns true if err is, or wraps, a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var te *TemplateNotFoundError
	return errors.As(err, &te)
}

// LoadFile reads a scenario, choosing the decoder by file extension.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrKindNotFound, Path: path, Message: fmt.Sprintf("reading scenario: %v", err)}
	}

	var s *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		s, err = decodeYAML(path, data)
	case ".cue":
		s, err = decodeCUE(path, data)
	default:
		return nil, &LoadError{Kind: ErrKindInvalid, Path: path, Message: fmt.Sprintf("unsupported scenario format %q", ext)}
	}
	if err != nil {
		return nil, err
	}

	s.Path = path
	return s, nil
}

// ReadTemplate returns the scenario's template text.
func (s *Scenario) ReadTemplate() (string, error) {
	data, err := os.ReadFile(s.Template)
	if err != nil {
		return "", &TemplateNotFoundError{Path: s.Template, Err: err}
	}
	return string(data), nil
}

// builder collects fields shared by both decoders.
type builder struct {
	path       string
	template   string
	output     string
	format     bool
	explicit   map[string]fragment.Spec
	energyplus map[string]fragment.Params
}

func newBuilder(path string) *builder {
	return &builder{
		path:       path,
		explicit:   make(map[string]fragment.Spec),
		energyplus: make(map[string]fragment.Params),
	}
}

func (b *builder) invalid(format string, args ...any) error {
	return &LoadError{Kind: ErrKindInvalid, Path: b.path, Message: fmt.Sprintf(format, args...)}
}

// addFragment validates and records an explicit fragment binding.
func (b *builder) addFragment(marker string, text *string, generator string, params fragment.Params) error {
	switch {
	case marker == "":
		return b.invalid("fragment marker name is empty")
	case text != nil && generator != "":
		return b.invalid("fragment %q: text and generator are mutually exclusive", marker)
	case text == nil && generator == "":
		return b.invalid("fragment %q: one of text or generator is required", marker)
	case text != nil && params != nil:
		return b.invalid("fragment %q: params require a generator", marker)
	}

	spec := fragment.Spec{Marker: marker, Generator: generator, Params: params}
	if text != nil {
		spec.Text = *text
	}
	b.explicit[marker] = spec
	return nil
}

// build resolves paths and merges energyplus bindings under explicit ones.
func (b *builder) build() (*Scenario, error) {
	if b.template == "" {
		return nil, b.invalid("template is required")
	}

	specs := make(map[string]fragment.Spec, len(b.explicit)+len(b.energyplus))

	known := make(map[string]fragment.Binding)
	for _, binding := range fragment.EnergyPlusBindings() {
		known[binding.Key] = binding
	}
	for key, params := range b.energyplus {
		binding, ok := known[key]
		if !ok {
			return nil, b.invalid("energyplus: unknown key %q", key)
		}
		specs[binding.Marker] = fragment.Spec{
			Marker:    binding.Marker,
			Generator: binding.Generator,
			Params:    params,
		}
	}
	for marker, spec := range b.explicit {
		specs[marker] = spec
	}

	s := &Scenario{
		Template: resolvePath(b.path, b.template),
		Format:   b.format,
	}
	if b.output != "" {
		s.Output = resolvePath(b.path, b.output)
	}
	for _, spec := range specs {
		s.Fragments = append(s.Fragments, spec)
	}
	sort.Slice(s.Fragments, func(i, j int) bool {
		return s.Fragments[i].Marker < s.Fragments[j].Marker
	})

	return s, nil
}

// resolvePath makes p relative to the directory holding the scenario file.
func resolvePath(scenarioPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(scenarioPath), p)
}
