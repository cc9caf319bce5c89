// Package store persists log entries for the bundled backend in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timekeeper/internal/journal"
	"timekeeper/internal/logging"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite" (pure Go)
)

// LogStore is the SQLite-backed log table.
type LogStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open initializes the database at path using driver ("sqlite3" or
// "sqlite"). ":memory:" is accepted for tests.
func Open(driver, path string) (*LogStore, error) {
	log := logging.Get(logging.CategoryStore)
	log.Info("opening log store", zap.String("driver", driver), zap.String("path", path))

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("failed to set busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("failed to set journal_mode=WAL", zap.Error(err))
	}

	s := &LogStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *LogStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS log_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL, -- unix nanoseconds, UTC
		activity TEXT NOT NULL,
		slot_time TEXT NOT NULL     -- "H:MM"
	);
	CREATE INDEX IF NOT EXISTS idx_log_entries_timestamp ON log_entries(timestamp);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *LogStore) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *LogStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create inserts an entry stamped with at and returns it.
func (s *LogStore) Create(ctx context.Context, activity, slotTime string, at time.Time) (journal.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO log_entries (timestamp, activity, slot_time) VALUES (?, ?, ?)`,
		at.UTC().UnixNano(), activity, slotTime)
	if err != nil {
		return journal.LogEntry{}, fmt.Errorf("failed to insert log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return journal.LogEntry{}, fmt.Errorf("failed to read log entry id: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("log entry stored", zap.Int64("id", id), zap.String("slot", slotTime))
	return journal.LogEntry{
		ID:        id,
		Activity:  activity,
		SlotTime:  slotTime,
		Timestamp: journal.FormatTimestamp(at),
	}, nil
}

// List returns every entry, newest first.
func (s *LogStore) List(ctx context.Context) ([]journal.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, activity, slot_time FROM log_entries ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	logs := []journal.LogEntry{}
	for rows.Next() {
		var (
			e  journal.LogEntry
			ns int64
		)
		if err := rows.Scan(&e.ID, &ns, &e.Activity, &e.SlotTime); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		e.Timestamp = journal.FormatTimestamp(time.Unix(0, ns))
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log entries: %w", err)
	}
	return logs, nil
}
