package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"pomoflow/internal/core/model"
)

// EntryKind classifies a journal row.
type EntryKind string

const (
	EntryCompleted   EntryKind = "completed"
	EntryInterrupted EntryKind = "interrupted"
	EntrySkipped     EntryKind = "skipped"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS session_events (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	kind     TEXT    NOT NULL,
	mode     TEXT    NOT NULL,
	session  INTEGER NOT NULL,
	task_id  TEXT    NOT NULL DEFAULT '',
	minutes  REAL    NOT NULL DEFAULT 0,
	at_ms    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS session_events_at ON session_events(at_ms);
`

// Entry is one journaled timer event.
type Entry struct {
	ID      int64
	Kind    EntryKind
	Mode    model.Mode
	Session int
	TaskID  string
	Minutes float64
	At      time.Time
}

// Summary aggregates journal entries over a period.
type Summary struct {
	Completed    int
	Interrupted  int
	Skipped      int
	FocusMinutes float64
}

// Journal appends timer events to a SQLite database.
type Journal struct {
	db *sql.DB
}

// OpenJournal opens (or creates) the journal at dbPath. The caller is
// responsible for calling Close.
func OpenJournal(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database connection.
func (journal *Journal) Close() error { return journal.db.Close() }

// Append stores entry and returns its row id.
func (journal *Journal) Append(ctx context.Context, entry Entry) (int64, error) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	res, err := journal.db.ExecContext(ctx, `
		INSERT INTO session_events (kind, mode, session, task_id, minutes, at_ms)
		VALUES (?,?,?,?,?,?)`,
		string(entry.Kind), string(entry.Mode), entry.Session, entry.TaskID, entry.Minutes, entry.At.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session event: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (journal *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := journal.db.QueryContext(ctx, `
		SELECT id, kind, mode, session, task_id, minutes, at_ms
		FROM session_events
		ORDER BY at_ms DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var kind, mode string
		var atMillis int64
		if err := rows.Scan(&entry.ID, &kind, &mode, &entry.Session, &entry.TaskID, &entry.Minutes, &atMillis); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		entry.Kind = EntryKind(kind)
		entry.Mode = model.Mode(mode)
		entry.At = time.UnixMilli(atMillis).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Summary counts entries recorded at or after since.
func (journal *Journal) Summary(ctx context.Context, since time.Time) (Summary, error) {
	var summary Summary
	err := journal.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'completed' AND mode = 'work' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'interrupted' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'skipped' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'completed' AND mode = 'work' THEN minutes ELSE 0 END), 0)
		FROM session_events
		WHERE at_ms >= ?`, since.UnixMilli(),
	).Scan(&summary.Completed, &summary.Interrupted, &summary.Skipped, &summary.FocusMinutes)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize session events: %w", err)
	}
	return summary, nil
}
