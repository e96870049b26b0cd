package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/splice/internal/marker"
	"github.com/roach88/splice/internal/substitute"
	"github.com/roach88/splice/internal/template"
	"github.com/roach88/splice/internal/verify"
)

// Result is the outcome of one generation call.
type Result struct {
	// Text is the generated source, possibly invalid (see Diagnostic).
	Text string

	// Kind is the grammar the template was parsed as.
	Kind template.Kind

	// Table holds the markers found in the template.
	Table *marker.Table

	// Applied lists rewritten occurrences in application order.
	Applied []substitute.Application

	// Unmatched lists replacement names absent from the template.
	Unmatched []string

	// Diagnostic is set when the generated text does not parse.
	Diagnostic *verify.Diagnostic

	// Formatted is true when Text was passed through gofmt.
	Formatted bool
}

// Valid reports whether the generated text parsed.
func (r *Result) Valid() bool {
	return r.Diagnostic == nil
}

type options struct {
	logger *slog.Logger
	format bool
}

// Option configures a Generate call.
type Option func(*options)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFormat gofmt-formats the generated text when it parses.
func WithFormat(enabled bool) Option {
	return func(o *options) {
		o.format = enabled
	}
}

// Generate parses src, substitutes repl into its markers and verifies the
// result. name labels the template in errors and logs.
func Generate(name, src string, repl substitute.ReplacementMap, opts ...Option) (*Result, error) {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger.With("template", name)

	tmpl, err := template.Parse(name, src)
	if err != nil {
		log.Debug("template parse failed", "error", err)
		return nil, err
	}

	table := marker.Scan(tmpl)
	log.Debug("markers scanned",
		"kind", tmpl.Kind().String(),
		"lines", tmpl.LineCount(),
		"markers", table.Len(),
	)

	sub := substitute.Apply(table, repl, tmpl.Lines())
	for _, app := range sub.Applied {
		log.Debug("marker applied", "marker", app.Marker, "line", app.Line, "mode", string(app.Mode))
	}
	for _, missing := range sub.Unmatched {
		log.Debug("replacement has no marker, skipping", "marker", missing)
	}

	res := &Result{
		Text:      sub.Text(),
		Kind:      tmpl.Kind(),
		Table:     table,
		Applied:   sub.Applied,
		Unmatched: sub.Unmatched,
	}

	res.Diagnostic = verify.Check(res.Text)
	if res.Diagnostic != nil {
		log.Warn("generated text does not parse",
			"line", res.Diagnostic.Line,
			"column", res.Diagnostic.Column,
			"message", res.Diagnostic.Message,
		)
		return res, nil
	}

	if o.format {
		formatted, err := verify.Format(res.Text)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		res.Text = formatted
		res.Formatted = true
	}

	return res, nil
}
