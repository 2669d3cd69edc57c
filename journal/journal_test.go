package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "moves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	base := time.Unix(1700000000, 0)
	first := Entry{
		ID:        uuid.New(),
		CreatedAt: base,
		Source:    "http",
		Board:     "000000000",
		Position:  4,
		Stage:     "opening",
		Reason:    "center",
	}
	second := Entry{
		CreatedAt: base.Add(time.Second),
		Source:    "ws",
		Board:     "110000000",
		Position:  2,
		Stage:     "tactical",
		Reason:    "win",
	}

	require.NoError(t, j.Record(ctx, first))
	require.NoError(t, j.Record(ctx, second))

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ws", entries[0].Source)
	assert.Equal(t, 2, entries[0].Position)
	assert.NotEqual(t, uuid.Nil, entries[0].ID, "missing ids are generated")
	assert.True(t, entries[0].CreatedAt.Equal(second.CreatedAt))

	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, first.Board, entries[1].Board)
	assert.Equal(t, first.Stage, entries[1].Stage)
	assert.Equal(t, first.Reason, entries[1].Reason)
	assert.True(t, entries[1].CreatedAt.Equal(first.CreatedAt))

	entries, err = j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ws", entries[0].Source)
}

func TestJournalDuplicateID(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	e := Entry{ID: uuid.New(), Source: "http", Board: "0", Stage: "opening", Reason: "center"}
	require.NoError(t, j.Record(ctx, e))
	assert.Error(t, j.Record(ctx, e))
}

func TestJournalReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moves.db")

	j, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, Entry{Source: "sms", Board: "0", Stage: "opening", Reason: "center"}))
	require.NoError(t, j.Close())

	j, err = Open(ctx, path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sms", entries[0].Source)
}
