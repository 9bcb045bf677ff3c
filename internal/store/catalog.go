package store

import (
	"context"

	"ovencontroller/internal/models"
)

// Catalog is the interface the dispatcher and controller depend on,
// satisfied by both the pure in-memory Engine (via the adapter below) and
// SQLiteBacked, grounded on the teacher's repository.StateRepo /
// repository.EventRepo split between interface and sqlite implementation.
type Catalog interface {
	ValidateSignature() bool
	Format(ctx context.Context) error
	Count() (int, error)
	FindFreeOffset() (int, error)
	LoadHeader(index int) (Header, error)
	LoadProfile(index int) (models.Profile, error)
	Append(ctx context.Context, p models.Profile) error
	Dump(offset, length int) ([]byte, error)
	Size() int
}

// memoryCatalog adapts an Engine (no backing persistence) to Catalog, for
// tests and for the "no store file configured" fallback.
type memoryCatalog struct {
	engine *Engine
}

// NewMemoryCatalog returns a Catalog backed purely by process memory.
func NewMemoryCatalog(size int) Catalog {
	return &memoryCatalog{engine: New(size)}
}

// NewMemoryCatalogFromBytes wraps an existing image verbatim, without
// reformatting it. It exists so tests (and anything else that needs to
// start from a foreign or corrupted buffer) can exercise boot-time
// signature validation against a known-bad image.
func NewMemoryCatalogFromBytes(buf []byte) Catalog {
	return &memoryCatalog{engine: Wrap(buf)}
}

func (m *memoryCatalog) ValidateSignature() bool { return m.engine.ValidateSignature() }
func (m *memoryCatalog) Format(ctx context.Context) error {
	m.engine.Format()
	return nil
}
func (m *memoryCatalog) Count() (int, error)          { return m.engine.Count() }
func (m *memoryCatalog) FindFreeOffset() (int, error) { return m.engine.FindFreeOffset() }
func (m *memoryCatalog) LoadHeader(i int) (Header, error) {
	return m.engine.LoadHeader(i)
}
func (m *memoryCatalog) LoadProfile(i int) (models.Profile, error) {
	return m.engine.LoadProfile(i)
}
func (m *memoryCatalog) Append(ctx context.Context, p models.Profile) error {
	return m.engine.Append(p)
}
func (m *memoryCatalog) Dump(offset, length int) ([]byte, error) {
	return m.engine.Dump(offset, length)
}
func (m *memoryCatalog) Size() int { return m.engine.Size() }

var _ Catalog = (*memoryCatalog)(nil)
var _ Catalog = (*SQLiteBacked)(nil)
