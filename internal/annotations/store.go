// Package annotations persists marked time windows so an inspection session
// can be resumed or reviewed later.
package annotations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-free SQLite
)

type Store struct {
	db *sql.DB
}

// Window is one marked time span of a recording.
type Window struct {
	ID        string    `json:"id"`
	Recording string    `json:"recording"`
	StartSec  float64   `json:"start_sec"`
	EndSec    float64   `json:"end_sec"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Open creates or opens the annotation database at path.
func Open(path string) (*Store, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS windows(
	  id          TEXT    PRIMARY KEY,
	  recording   TEXT    NOT NULL,
	  start_sec   REAL    NOT NULL,
	  end_sec     REAL    NOT NULL CHECK (end_sec > start_sec),
	  note        TEXT,
	  created_utc INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_windows_recording ON windows(recording);
	`)
	if err != nil {
		return fmt.Errorf("failed to create database tables: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Mark stores a new window for a recording and returns it.
func (s *Store) Mark(recording string, start, end float64, note string) (Window, error) {
	if recording == "" {
		return Window{}, fmt.Errorf("recording path cannot be empty")
	}
	if end <= start {
		return Window{}, fmt.Errorf("window end %.3f must be after start %.3f", end, start)
	}
	w := Window{
		ID:        uuid.NewString(),
		Recording: recording,
		StartSec:  start,
		EndSec:    end,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO windows(id, recording, start_sec, end_sec, note, created_utc) VALUES(?,?,?,?,?,?)`,
		w.ID, w.Recording, w.StartSec, w.EndSec, w.Note, w.CreatedAt.Unix(),
	)
	if err != nil {
		return Window{}, fmt.Errorf("failed to insert window: %w", err)
	}
	return w, nil
}

// List returns every window marked for a recording, ordered by start time.
func (s *Store) List(recording string) ([]Window, error) {
	rows, err := s.db.Query(
		`SELECT id, recording, start_sec, end_sec, note, created_utc FROM windows WHERE recording = ? ORDER BY start_sec`,
		recording,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows: %w", err)
	}
	defer rows.Close()

	windows := make([]Window, 0)
	for rows.Next() {
		var w Window
		var created int64
		var note sql.NullString
		if err := rows.Scan(&w.ID, &w.Recording, &w.StartSec, &w.EndSec, &note, &created); err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		w.Note = note.String
		w.CreatedAt = time.Unix(created, 0).UTC()
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// Delete removes a window by id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM windows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete window: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no window with id %s", id)
	}
	return nil
}
