// Package store keeps a library of model documents in SQLite
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/martinmajer/mechanika/internal/document"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when no model has the requested ID
var ErrNotFound = errors.New("store: model not found")

// ============================================================
// Records
// ============================================================

// Record is a stored model without its body
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is a stored model with its document
type Entry struct {
	Record
	Document *document.Document `json:"document"`
}

// ============================================================
// SQLite Store
// ============================================================

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS models (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    version    INTEGER NOT NULL,
    body       TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS models_name ON models (name);
`

// Init creates the schema
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Save inserts d under a new ID
func (s *Store) Save(ctx context.Context, name string, d *document.Document) (Record, error) {
	body, err := document.Marshal(d)
	if err != nil {
		return Record{}, fmt.Errorf("encode model: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	rec := Record{
		ID:        uuid.New().String(),
		Name:      name,
		Version:   document.CurrentVersion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO models (id, name, version, body, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, rec.ID, rec.Name, rec.Version, string(body), now.Unix(), now.Unix())
	if err != nil {
		return Record{}, fmt.Errorf("insert model: %w", err)
	}
	return rec, nil
}

// Update replaces the document stored under id
func (s *Store) Update(ctx context.Context, id string, d *document.Document) error {
	body, err := document.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE models SET body = ?, version = ?, updated_at = ?
        WHERE id = ?
    `, string(body), document.CurrentVersion, time.Now().UTC().Unix(), id)
	if err != nil {
		return fmt.Errorf("update model: %w", err)
	}
	return expectOne(res, id)
}

func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, version, body, created_at, updated_at
        FROM models
        WHERE id = ?
    `, id)

	var (
		e                Entry
		body             string
		created, updated int64
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Version, &body, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	e.CreatedAt = time.Unix(created, 0).UTC()
	e.UpdatedAt = time.Unix(updated, 0).UTC()

	d, err := document.Unmarshal([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}
	d.Name = e.Name
	e.Document = d
	return &e, nil
}

// List returns all records, newest first
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, version, created_at, updated_at
        FROM models
        ORDER BY created_at DESC, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                Record
			created, updated int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Version, &created, &updated); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		r.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ============================================================
// Connection
// ============================================================

// Open opens the sqlite database at path, creating its directory
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
