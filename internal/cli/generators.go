package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/fragment"
)

// GeneratorInfo describes one registered generator.
type GeneratorInfo struct {
	Name   string `json:"name"`
	Marker string `json:"marker,omitempty"` // default marker in the energyplus section
	Key    string `json:"key,omitempty"`    // energyplus section key
}

// NewGeneratorsCommand creates the generators command.
func NewGeneratorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "generators",
		Short:         "List registered fragment generators",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerators(rootOpts, cmd)
		},
	}

	return cmd
}

func runGenerators(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	bindings := make(map[string]fragment.Binding)
	for _, b := range fragment.EnergyPlusBindings() {
		bindings[b.Generator] = b
	}

	infos := []GeneratorInfo{}
	for _, name := range fragment.NewDefaultRegistry().List() {
		info := GeneratorInfo{Name: name}
		if b, ok := bindings[name]; ok {
			info.Marker, info.Key = b.Marker, b.Key
		}
		infos = append(infos, info)
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	for _, info := range infos {
		if info.Marker == "" {
			fmt.Fprintln(formatter.Writer, info.Name)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%-24s marker %-16s key %s\n", info.Name, info.Marker, info.Key)
	}
	return nil
}
