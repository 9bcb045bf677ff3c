package store

import (
	"context"
	"database/sql"
	"fmt"

	"ovencontroller/internal/models"
)

// schemaCatalog holds exactly one row: the raw byte image of the catalog
// buffer (spec.md §4.4), persisted as a BLOB so the on-disk layout stays
// bit-exact across restarts, grounded on the teacher's single-row
// furnace_state table convention (internal/repository/db/db_connection.go).
const schemaCatalog = `
CREATE TABLE IF NOT EXISTS oven_catalog (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    image BLOB NOT NULL
);
`

const (
	catalogRowID = 1

	selectCatalogSQL = `SELECT image FROM oven_catalog WHERE id = ?`

	upsertCatalogSQL = `
		INSERT INTO oven_catalog (id, image) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET image = excluded.image
	`
)

// EnsureSchema creates the oven_catalog table if missing. Call once at
// startup, mirroring the teacher's ensureSchema.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaCatalog); err != nil {
		return fmt.Errorf("apply oven_catalog schema: %w", err)
	}
	return nil
}

// SQLiteBacked persists an Engine's byte image in a single sqlite BLOB row,
// reading it into memory on Open and flushing it back on every mutating
// call. This mirrors the teacher's StateSQLite single-row repository
// (internal/repository/state_repo.go) adapted to a binary catalog instead of
// JSON columns.
type SQLiteBacked struct {
	db     *sql.DB
	size   int
	engine *Engine
}

// Open loads the persisted catalog image, or formats a fresh one of size
// bytes if none exists yet.
func Open(ctx context.Context, db *sql.DB, size int) (*SQLiteBacked, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	var image []byte
	err := db.QueryRowContext(ctx, selectCatalogSQL, catalogRowID).Scan(&image)
	switch {
	case err == sql.ErrNoRows:
		engine := New(size)
		s := &SQLiteBacked{db: db, size: size, engine: engine}
		if err := s.flush(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load oven_catalog row: %w", err)
	default:
		return &SQLiteBacked{db: db, size: len(image), engine: Wrap(image)}, nil
	}
}

// flush writes the current engine image back to sqlite.
func (s *SQLiteBacked) flush(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, upsertCatalogSQL, catalogRowID, s.engine.Bytes()); err != nil {
		return fmt.Errorf("persist oven_catalog row: %w", err)
	}
	return nil
}

// ValidateSignature, Count, FindFreeOffset, LoadHeader, LoadProfile and Dump
// delegate straight to the in-memory engine; they don't mutate so they
// never need to flush.

func (s *SQLiteBacked) ValidateSignature() bool             { return s.engine.ValidateSignature() }
func (s *SQLiteBacked) Count() (int, error)                 { return s.engine.Count() }
func (s *SQLiteBacked) FindFreeOffset() (int, error)        { return s.engine.FindFreeOffset() }
func (s *SQLiteBacked) LoadHeader(i int) (Header, error)    { return s.engine.LoadHeader(i) }
func (s *SQLiteBacked) LoadProfile(i int) (models.Profile, error) { return s.engine.LoadProfile(i) }
func (s *SQLiteBacked) Dump(offset, length int) ([]byte, error) { return s.engine.Dump(offset, length) }
func (s *SQLiteBacked) Size() int                            { return s.engine.Size() }

// Format reformats the catalog, wiping all stored profiles, and persists
// the change immediately.
func (s *SQLiteBacked) Format(ctx context.Context) error {
	s.engine.Format()
	return s.flush(ctx)
}

// Append stores a new profile and persists the updated image.
func (s *SQLiteBacked) Append(ctx context.Context, p models.Profile) error {
	if err := s.engine.Append(p); err != nil {
		return err
	}
	return s.flush(ctx)
}
