package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/splice/internal/substitute"
)

func TestAppend_AssignsIDAndSeq(t *testing.T) {
	j := createTestJournal(t)
	ctx := context.Background()

	first, err := j.Append(ctx, createTestRecord("a.yaml"))
	require.NoError(t, err)
	second, err := j.Append(ctx, createTestRecord("b.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "run-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, "run-0002", second.ID)
	assert.Equal(t, int64(2), second.Seq)
}

func TestAppend_KeepsCallerID(t *testing.T) {
	j := createTestJournal(t)

	rec := createTestRecord("a.yaml")
	rec.ID = "custom-id"

	got, err := j.Append(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "custom-id", got.ID)
}

func TestAppend_DuplicateIDFails(t *testing.T) {
	j := createTestJournal(t)
	ctx := context.Background()

	rec := createTestRecord("a.yaml")
	rec.ID = "same"
	_, err := j.Append(ctx, rec)
	require.NoError(t, err)

	_, err = j.Append(ctx, rec)
	require.Error(t, err)

	// The failed append leaves no partial state
	records, err := j.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAppend_DefaultIDIsUUIDv7(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	rec, err := j.Append(context.Background(), createTestRecord("a.yaml"))
	require.NoError(t, err)

	parsed, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestList_RoundTrip(t *testing.T) {
	j := createTestJournal(t)
	ctx := context.Background()

	valid := createTestRecord("valid.yaml")

	invalid := createTestRecord("invalid.yaml")
	invalid.Markers = []string{"a", "b"}
	invalid.Applied = []substitute.Application{
		{Marker: "a", Line: 1, Mode: substitute.ModeToken},
		{Marker: "b", Line: 2, Mode: substitute.ModeLine},
	}
	invalid.Unmatched = []string{"zzz"}
	invalid.Valid = false
	invalid.Diagnostic = "1:5: expected operand"

	_, err := j.Append(ctx, valid)
	require.NoError(t, err)
	_, err = j.Append(ctx, invalid)
	require.NoError(t, err)

	records, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by seq
	assert.Equal(t, "valid.yaml", records[0].Config)
	assert.Equal(t, "invalid.yaml", records[1].Config)

	got := records[1]
	assert.Equal(t, "run-0002", got.ID)
	assert.Equal(t, int64(2), got.Seq)
	assert.Equal(t, "template.go.tmpl", got.Template)
	assert.Equal(t, "generated.go", got.Output)
	assert.Equal(t, TemplateHash("package p"), got.TemplateHash)
	assert.Equal(t, []string{"a", "b"}, got.Markers)
	assert.Equal(t, invalid.Applied, got.Applied)
	assert.Equal(t, []string{"zzz"}, got.Unmatched)
	assert.False(t, got.Valid)
	assert.Equal(t, "1:5: expected operand", got.Diagnostic)

	// nil lists come back empty, not nil
	assert.Equal(t, []string{}, records[0].Unmatched)
	assert.True(t, records[0].Valid)
}

func TestList_LimitKeepsMostRecent(t *testing.T) {
	j := createTestJournal(t)
	ctx := context.Background()

	for _, cfg := range []string{"1.yaml", "2.yaml", "3.yaml", "4.yaml"} {
		_, err := j.Append(ctx, createTestRecord(cfg))
		require.NoError(t, err)
	}

	records, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "3.yaml", records[0].Config)
	assert.Equal(t, "4.yaml", records[1].Config)
}

func TestList_Empty(t *testing.T) {
	j := createTestJournal(t)

	records, err := j.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGet(t *testing.T) {
	j := createTestJournal(t)
	ctx := context.Background()

	appended, err := j.Append(ctx, createTestRecord("a.yaml"))
	require.NoError(t, err)

	got, ok, err := j.Get(ctx, appended.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, appended.Config, got.Config)
	assert.Equal(t, appended.Seq, got.Seq)

	_, ok, err = j.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
