package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/splice/internal/substitute"
)

// Record is one journaled generation run.
type Record struct {
	ID           string                   `json:"id"`
	Seq          int64                    `json:"seq"`
	Config       string                   `json:"config"`
	Template     string                   `json:"template"`
	Output       string                   `json:"output"`
	TemplateHash string                   `json:"template_hash"`
	OutputHash   string                   `json:"output_hash"`
	Markers      []string                 `json:"markers"`
	Applied      []substitute.Application `json:"applied"`
	Unmatched    []string                 `json:"unmatched"`
	Valid        bool                     `json:"valid"`
	Diagnostic   string                   `json:"diagnostic,omitempty"`
}

// Append stores rec and returns it with ID and Seq assigned.
// A caller-supplied ID is kept; seq is always the next in sequence.
func (j *Journal) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = j.ids.Generate()
	}

	markers, err := marshalList(rec.Markers)
	if err != nil {
		return Record{}, fmt.Errorf("append run: markers: %w", err)
	}
	applied, err := marshalList(rec.Applied)
	if err != nil {
		return Record{}, fmt.Errorf("append run: applied: %w", err)
	}
	unmatched, err := marshalList(rec.Unmatched)
	if err != nil {
		return Record{}, fmt.Errorf("append run: unmatched: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("append run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&rec.Seq); err != nil {
		return Record{}, fmt.Errorf("append run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(seq, id, config, template, output, template_hash, output_hash, markers, applied, unmatched, valid, diagnostic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Seq,
		rec.ID,
		rec.Config,
		rec.Template,
		rec.Output,
		rec.TemplateHash,
		rec.OutputHash,
		markers,
		applied,
		unmatched,
		rec.Valid,
		rec.Diagnostic,
	)
	if err != nil {
		return Record{}, fmt.Errorf("append run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("append run: commit: %w", err)
	}

	return rec, nil
}

// List returns the most recent limit runs in seq order. A limit of zero or
// less returns every run.
//
// Returns an empty slice (not nil) when the journal is empty.
func (j *Journal) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, config, template, output, template_hash, output_hash, markers, applied, unmatched, valid, diagnostic
		FROM (SELECT * FROM runs ORDER BY seq DESC LIMIT ?)
		ORDER BY seq ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return records, nil
}

// Get returns the run with the given ID. The boolean is false if no such
// run exists.
func (j *Journal) Get(ctx context.Context, id string) (Record, bool, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT seq, id, config, template, output, template_hash, output_hash, markers, applied, unmatched, valid, diagnostic
		FROM runs
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec                         Record
		markers, applied, unmatched string
	)
	err := s.Scan(
		&rec.Seq,
		&rec.ID,
		&rec.Config,
		&rec.Template,
		&rec.Output,
		&rec.TemplateHash,
		&rec.OutputHash,
		&markers,
		&applied,
		&unmatched,
		&rec.Valid,
		&rec.Diagnostic,
	)
	if err == sql.ErrNoRows {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(markers), &rec.Markers); err != nil {
		return Record{}, fmt.Errorf("unmarshal markers: %w", err)
	}
	if err := json.Unmarshal([]byte(applied), &rec.Applied); err != nil {
		return Record{}, fmt.Errorf("unmarshal applied: %w", err)
	}
	if err := json.Unmarshal([]byte(unmatched), &rec.Unmatched); err != nil {
		return Record{}, fmt.Errorf("unmarshal unmatched: %w", err)
	}

	return rec, nil
}

// marshalList encodes a slice as a JSON array, writing [] for nil.
func marshalList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
