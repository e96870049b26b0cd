// Package engine runs the template generation pipeline.
//
// PIPELINE:
//
//  1. Parse the template (internal/template). A parse failure aborts
//     generation and is returned as a *template.ParseError.
//  2. Scan the syntax tree for markers (internal/marker).
//  3. Apply the replacement map to the template lines (internal/substitute).
//  4. Re-parse the generated text (internal/verify). A failure here is
//     reported as Result.Diagnostic; the text is still returned.
//
// Every call builds its own template, marker table and line array, and no
// state survives between calls, so Generate is safe for concurrent use.
package engine
