package scenario

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/splice/internal/fragment"
)

// yamlScenario mirrors the YAML document layout.
// Params stay as nodes so each generator decodes its own shape.
type yamlScenario struct {
	Template   string                  `yaml:"template"`
	Output     string                  `yaml:"output,omitempty"`
	Format     bool                    `yaml:"format,omitempty"`
	Fragments  map[string]yamlFragment `yaml:"fragments,omitempty"`
	EnergyPlus map[string]yaml.Node    `yaml:"energyplus,omitempty"`
}

type yamlFragment struct {
	Text      *string   `yaml:"text,omitempty"`
	Generator string    `yaml:"generator,omitempty"`
	Params    yaml.Node `yaml:"params,omitempty"`
}

func decodeYAML(path string, data []byte) (*Scenario, error) {
	b := newBuilder(path)

	// Strict field validation catches typos like "fragment:" vs "fragments:"
	var raw yamlScenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, b.invalid("scenario is empty")
		}
		return nil, b.invalid("parsing YAML: %v", err)
	}

	b.template = raw.Template
	b.output = raw.Output
	b.format = raw.Format

	for marker, f := range raw.Fragments {
		if err := b.addFragment(marker, f.Text, f.Generator, nodeParams(f.Params)); err != nil {
			return nil, err
		}
	}
	for key, node := range raw.EnergyPlus {
		b.energyplus[key] = nodeParams(node)
	}

	return b.build()
}

// nodeParams returns nil for an absent node.
func nodeParams(node yaml.Node) fragment.Params {
	if node.Kind == 0 {
		return nil
	}
	return &node
}
