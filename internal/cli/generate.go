package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/engine"
	"github.com/roach88/splice/internal/fragment"
	"github.com/roach88/splice/internal/journal"
	"github.com/roach88/splice/internal/scenario"
	"github.com/roach88/splice/internal/substitute"
	"github.com/roach88/splice/internal/verify"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output  string // overrides the scenario output path
	Strict  bool   // a diagnostic fails the command
	Journal string // optional journal database
}

// GenerateResult is the payload reported by generate.
type GenerateResult struct {
	Config     string                   `json:"config"`
	Template   string                   `json:"template"`
	Output     string                   `json:"output,omitempty"`
	Kind       string                   `json:"kind"`
	Markers    []string                 `json:"markers"`
	Applied    []substitute.Application `json:"applied"`
	Unmatched  []string                 `json:"unmatched"`
	Valid      bool                     `json:"valid"`
	Formatted  bool                     `json:"formatted"`
	Diagnostic *verify.Diagnostic       `json:"diagnostic,omitempty"`
	RunID      string                   `json:"run_id,omitempty"`
	Text       string                   `json:"text,omitempty"` // set when no output path is configured
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <scenario>",
		Short: "Generate source from a scenario",
		Long: `Generate Go source from a YAML or CUE scenario.

The scenario names a template and binds each marker to literal text or a
registered generator. The template is parsed, markers are replaced and the
result is re-parsed. Output that does not parse is still written unless
--strict is set; the diagnostic is reported either way.

Examples:
  splice generate energyplus.yaml
  splice generate energyplus.cue -o controller.go
  splice generate energyplus.yaml --strict --journal splice.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: scenario output, else stdout)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when the generated source does not parse")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the run in this SQLite journal")

	return cmd
}

func runGenerate(opts *GenerateOptions, scenarioPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := commandLogger(opts.RootOptions, cmd.ErrOrStderr())

	s, err := scenario.LoadFile(scenarioPath)
	if err != nil {
		return formatter.FailWith(ExitCommandError, err)
	}
	if opts.Output != "" {
		s.Output = opts.Output
	}
	formatter.VerboseLog("Loaded scenario %s (%d fragment(s))", scenarioPath, len(s.Fragments))

	src, err := s.ReadTemplate()
	if err != nil {
		return formatter.FailWith(ExitCommandError, err)
	}

	repl, err := fragment.Resolve(fragment.NewDefaultRegistry(), s.Fragments)
	if err != nil {
		return formatter.FailWith(ExitCommandError, err)
	}

	res, err := engine.Generate(s.Template, src, repl,
		engine.WithLogger(logger),
		engine.WithFormat(s.Format),
	)
	if err != nil {
		return formatter.FailWith(ExitCommandError, err)
	}

	result := GenerateResult{
		Config:     scenarioPath,
		Template:   s.Template,
		Output:     s.Output,
		Kind:       res.Kind.String(),
		Markers:    res.Table.Names(),
		Applied:    res.Applied,
		Unmatched:  res.Unmatched,
		Valid:      res.Valid(),
		Formatted:  res.Formatted,
		Diagnostic: res.Diagnostic,
	}
	if result.Applied == nil {
		result.Applied = []substitute.Application{}
	}
	if result.Unmatched == nil {
		result.Unmatched = []string{}
	}

	blocked := opts.Strict && !res.Valid()
	if !blocked {
		if s.Output != "" {
			if err := writeOutput(s.Output, res.Text); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
			}
			logger.Info("output written", "path", s.Output, "bytes", len(res.Text))
		} else {
			result.Text = res.Text
		}
	}

	if opts.Journal != "" {
		runID, err := recordRun(cmd.Context(), opts.Journal, src, res.Text, result)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournalFailed, err.Error(), nil)
		}
		result.RunID = runID
		formatter.VerboseLog("Journaled run %s", runID)
	}

	if blocked {
		return formatter.Fail(ExitFailure, ErrCodeOutputInvalid,
			"generated source does not parse: "+res.Diagnostic.String(), res.Diagnostic)
	}

	return outputGenerateSuccess(formatter, result)
}

// writeOutput atomically replaces path with text, creating parent directories.
func writeOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(text))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// recordRun appends the run to the journal at dbPath and returns its ID.
func recordRun(ctx context.Context, dbPath, templateText, outputText string, result GenerateResult) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	j, err := journal.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rec := journal.Record{
		Config:       result.Config,
		Template:     result.Template,
		Output:       result.Output,
		TemplateHash: journal.TemplateHash(templateText),
		OutputHash:   journal.OutputHash(outputText),
		Markers:      result.Markers,
		Applied:      result.Applied,
		Unmatched:    result.Unmatched,
		Valid:        result.Valid,
	}
	if result.Diagnostic != nil {
		rec.Diagnostic = result.Diagnostic.String()
	}

	rec, err = j.Append(ctx, rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func outputGenerateSuccess(formatter *OutputFormatter, result GenerateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Generated text on stdout stays pipeable; the summary goes to stderr.
	w := formatter.Writer
	if result.Output == "" {
		fmt.Fprint(formatter.Writer, result.Text)
		w = formatter.GetErrWriter()
	}

	if result.Valid {
		fmt.Fprintf(w, "✓ Generated %s (%d replacement(s))\n", displayOutput(result.Output), len(result.Applied))
	} else {
		fmt.Fprintf(w, "⚠ Generated %s, but it does not parse: %s\n", displayOutput(result.Output), result.Diagnostic)
	}
	if len(result.Unmatched) > 0 {
		fmt.Fprintf(w, "  unmatched: %v\n", result.Unmatched)
	}
	return nil
}

func displayOutput(path string) string {
	if path == "" {
		return "<stdout>"
	}
	return path
}
