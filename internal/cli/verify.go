package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/verify"
)

// VerifyResult is the payload reported by verify.
type VerifyResult struct {
	File       string             `json:"file"`
	Valid      bool               `json:"valid"`
	Diagnostic *verify.Diagnostic `json:"diagnostic,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a file parses as Go",
		Long: `Check that a file parses as a Go file, declaration list or statement list.

Exits 1 with the first syntax error when it does not.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("reading %s: %v", path, err), nil)
	}

	diag := verify.Check(string(data))
	if diag != nil {
		return formatter.Fail(ExitFailure, ErrCodeOutputInvalid,
			fmt.Sprintf("%s:%s", path, diag), VerifyResult{File: path, Diagnostic: diag})
	}

	if formatter.Format == "json" {
		return formatter.Success(VerifyResult{File: path, Valid: true})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s parses\n", path)
	return nil
}
