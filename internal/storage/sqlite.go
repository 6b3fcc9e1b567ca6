package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/jera/internal/models"
)

const blobKey = "tracker"

const blobSchemaSQL = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite implements Provider on top of a single-row blob table. It is
// the backend to pick when the host already keeps its own data in a
// SQLite database.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database and applies the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := conn.Exec(blobSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Load reads the blob row. A missing row returns (nil, nil).
func (s *SQLite) Load() (*models.StoreData, error) {
	var raw []byte
	err := s.conn.QueryRow(`SELECT value FROM blobs WHERE key = ?`, blobKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load blob: %w", err)
	}
	var data models.StoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("storage: decode blob: %w", err)
	}
	return &data, nil
}

// Save upserts the blob row.
func (s *SQLite) Save(data *models.StoreData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, blobKey, raw, time.Now())
	if err != nil {
		return fmt.Errorf("storage: save blob: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
