package journal

import (
	"path/filepath"
	"testing"

	"github.com/roach88/splice/internal/substitute"
	"github.com/roach88/splice/internal/testutil"
)

// createTestJournal opens a journal in a temp dir with predictable run IDs.
func createTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

// createTestRecord creates a valid run record with minimal fields.
func createTestRecord(config string) Record {
	return Record{
		Config:       config,
		Template:     "template.go.tmpl",
		Output:       "generated.go",
		TemplateHash: TemplateHash("package p"),
		OutputHash:   OutputHash("package p"),
		Markers:      []string{"greeting"},
		Applied: []substitute.Application{
			{Marker: "greeting", Line: 3, Mode: substitute.ModeStatement},
		},
		Valid: true,
	}
}
