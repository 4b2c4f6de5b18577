package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DropRecord is one completed drop as stored in the history database.
type DropRecord struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Paths     []string  `json:"paths"`
	Files     int       `json:"files"`
	Dirs      int       `json:"dirs"`
	Bytes     int64     `json:"bytes"`
}

// History persists dropped file lists in ~/.webdrop/history.db.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at path and removes
// rows older than keepDays.
func OpenHistory(path string, keepDays int) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// modernc's driver serialises through one connection anyway; one avoids
	// SQLITE_BUSY between the pool's connections.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS drops (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL, -- unix ms
			paths TEXT NOT NULL,
			files INTEGER DEFAULT 0,
			dirs INTEGER DEFAULT 0,
			bytes INTEGER DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_drops_timestamp ON drops(timestamp DESC);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		Log.Warn("setting WAL mode failed", "error", err)
	}

	h := &History{db: db}
	if n, err := h.Prune(keepDays); err != nil {
		Log.Error("pruning drop history failed", "error", err)
	} else if n > 0 {
		Log.Info("pruned drop history", "rows", n, "keepDays", keepDays)
	}
	return h, nil
}

// Record stores a drop and returns its row id.
func (h *History) Record(s DropSummary, at time.Time) (int64, error) {
	paths, err := json.Marshal(s.Paths)
	if err != nil {
		return 0, err
	}
	res, err := h.db.Exec(
		"INSERT INTO drops (timestamp, paths, files, dirs, bytes) VALUES (?, ?, ?, ?, ?)",
		at.UnixMilli(), string(paths), s.Files, s.Dirs, s.Bytes,
	)
	if err != nil {
		return 0, fmt.Errorf("record drop: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit drops, newest first.
func (h *History) Recent(limit int) ([]DropRecord, error) {
	rows, err := h.db.Query(`
		SELECT id, timestamp, paths, files, dirs, bytes
		FROM drops
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query drops: %w", err)
	}
	defer rows.Close()

	var out []DropRecord
	for rows.Next() {
		var r DropRecord
		var ts int64
		var paths string
		if err := rows.Scan(&r.ID, &ts, &paths, &r.Files, &r.Dirs, &r.Bytes); err != nil {
			return nil, err
		}
		r.Timestamp = time.UnixMilli(ts)
		if err := json.Unmarshal([]byte(paths), &r.Paths); err != nil {
			Log.Warn("skipping unreadable history row", "id", r.ID, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune removes drops older than keepDays and returns how many went.
func (h *History) Prune(keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -keepDays)
	res, err := h.db.Exec("DELETE FROM drops WHERE timestamp < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear removes every stored drop.
func (h *History) Clear() error {
	_, err := h.db.Exec("DELETE FROM drops")
	return err
}

func (h *History) Close() error {
	return h.db.Close()
}
