package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	stdlog "log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
)

var DB *sql.DB

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS registry_snapshots (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	loaded_at TEXT NOT NULL,
	payload   BLOB NOT NULL
);`

// InitDB opens the snapshot database and creates its schema.
func InitDB(databasePath string) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", databasePath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	// Limit open connections to 1 for SQLite to avoid locking issues
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		stdlog.Fatalf("failed to ping database: %v", err)
	}
	if _, err = db.Exec(snapshotSchema); err != nil {
		stdlog.Fatalf("failed to create snapshot schema: %v", err)
	}
	DB = db
	logger.L.Info("Database connection established with WAL mode, busy_timeout, and foreign_keys enabled.")
}

// SnapshotStore persists the last successfully loaded registry so the
// dashboard can keep serving when the upstream workbook is unreachable.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save replaces the stored snapshot with the given registry.
func (s *SnapshotStore) Save(reg *dataset.Registry) error {
	payload, err := json.Marshal(reg.Tables())
	if err != nil {
		return fmt.Errorf("marshaling registry snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO registry_snapshots (id, loaded_at, payload) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET loaded_at = excluded.loaded_at, payload = excluded.payload`,
		reg.LoadedAt.Format(time.RFC3339), payload)
	if err != nil {
		return fmt.Errorf("storing registry snapshot: %w", err)
	}
	return nil
}

// Load restores the last stored snapshot. sql.ErrNoRows when none exists.
func (s *SnapshotStore) Load() (*dataset.Registry, error) {
	var loadedAt string
	var payload []byte
	err := s.db.QueryRow(`SELECT loaded_at, payload FROM registry_snapshots WHERE id = 1`).Scan(&loadedAt, &payload)
	if err != nil {
		return nil, err
	}

	var tables map[string]*dataset.Table
	if err := json.Unmarshal(payload, &tables); err != nil {
		return nil, fmt.Errorf("unmarshaling registry snapshot: %w", err)
	}
	logger.L.Info("Restored registry from snapshot", "snapshotLoadedAt", loadedAt)
	return dataset.NewRegistry(tables), nil
}
