package cache

import (
	"context"
	"database/sql"
	"fmt"

	gojson "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	shapegen "github.com/shapegen/shapegen"
)

// SQLite stores documents in a single-table SQLite database. INSERT OR IGNORE
// makes concurrent stores of the same fingerprint equivalent without
// application-level locking.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and migrates) a schema store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schemas (
		fingerprint TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		document JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) Lookup(ctx context.Context, fp shapegen.Fingerprint) (*shapegen.Document, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM schemas WHERE fingerprint = ?`, string(fp)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: lookup %s: %w", fp, err)
	}
	var doc shapegen.Document
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", fp, err)
	}
	return &doc, true, nil
}

func (s *SQLite) Store(ctx context.Context, fp shapegen.Fingerprint, doc *shapegen.Document) error {
	data, err := gojson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", fp, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schemas (fingerprint, format, document) VALUES (?, ?, ?)`,
		string(fp), doc.Format.String(), string(data))
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", fp, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
