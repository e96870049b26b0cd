package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/marker"
	"github.com/roach88/splice/internal/scenario"
	"github.com/roach88/splice/internal/template"
)

// MarkerInfo describes one marker occurrence.
type MarkerInfo struct {
	Name      string `json:"name"`
	Line      int    `json:"line"`
	Whole     bool   `json:"whole"`
	Statement string `json:"statement"`
}

// MarkersResult is the payload reported by markers.
type MarkersResult struct {
	Template string       `json:"template"`
	Kind     string       `json:"kind"`
	Markers  []MarkerInfo `json:"markers"`
}

// NewMarkersCommand creates the markers command.
func NewMarkersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markers <template>",
		Short: "List the markers in a template",
		Long: `Parse a template and list its {{marker}} placeholders in discovery order.

A marker is "whole" when it is the entire string literal; such statements
are replaced in full. Other markers are replaced token by token.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkers(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runMarkers(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.FailWith(ExitCommandError, &scenario.TemplateNotFoundError{Path: path, Err: err})
	}

	tmpl, err := template.Parse(path, string(data))
	if err != nil {
		return formatter.FailWith(ExitCommandError, err)
	}

	table := marker.Scan(tmpl)
	result := MarkersResult{
		Template: path,
		Kind:     tmpl.Kind().String(),
		Markers:  []MarkerInfo{},
	}
	for _, occ := range table.All() {
		result.Markers = append(result.Markers, MarkerInfo{
			Name:      occ.Name,
			Line:      occ.Line,
			Whole:     occ.Whole,
			Statement: occ.Statement,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s (%s): %d marker(s)\n", path, result.Kind, len(result.Markers))
	for _, m := range result.Markers {
		placement := "embedded"
		if m.Whole {
			placement = "whole"
		}
		fmt.Fprintf(formatter.Writer, "  %-20s line %-4d %s\n", m.Name, m.Line, placement)
	}
	return nil
}
