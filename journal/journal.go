// Package journal records served moves into an SQLite database.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS moves (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	source TEXT NOT NULL,
	board TEXT NOT NULL,
	position INTEGER NOT NULL,
	stage TEXT NOT NULL,
	reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS moves_created_at ON moves (created_at);
`

// Entry is a single recorded move.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// Source is the surface the move was requested from.
	Source string `json:"source"`
	// Board is the board the move was chosen for, one digit per cell.
	Board    string `json:"board"`
	Position int    `json:"position"`
	Stage    string `json:"stage"`
	Reason   string `json:"reason"`
}

// Journal is an append-only log of moves.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal at the given path.
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// SQLite only allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends an entry. A zero ID or time is filled in.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO moves (id, created_at, source, board, position, stage, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(),
		e.CreatedAt.UnixNano(),
		e.Source,
		e.Board,
		e.Position,
		e.Stage,
		e.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to record move %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, created_at, source, board, position, stage, reason
		FROM moves
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			id        string
			createdAt int64
		)
		if err := rows.Scan(&id, &createdAt, &e.Source, &e.Board, &e.Position, &e.Stage, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid move id %q: %w", id, err)
		}
		e.CreatedAt = time.Unix(0, createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moves: %w", err)
	}

	return entries, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}
