// Package cache persists qualified_name -> element_id mappings across
// sessions in a SQLite database, so a restarted host reuses the same
// element ids for unchanged declarations instead of minting fresh ones
// (§3.7, §6.6). Grounded on termfx-morfx/db's gorm.Open-plus-AutoMigrate
// connection shape (adapted from its libsql/cgo-sqlite dialector to the
// pure-Go glebarez/sqlite driver already in this module's dependency
// set), content-hashed via the same minio/highwayhash the pack's
// viant-linager graph hasher uses, and guarded by a gofrs/flock lock file
// the way bufbuild-buf's archive reader serializes access to a shared
// on-disk resource.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/flock"
	"github.com/minio/highwayhash"
	"gorm.io/gorm"
)

// highwayKey is a fixed 32-byte key: the cache only needs a stable,
// fast non-cryptographic hash to detect unchanged file content between
// sessions, not a keyed MAC, so a constant key is sufficient (mirrors
// viant-linager/inspector/graph.Hash's fixed key).
var highwayKey = []byte("sysmlcore-element-id-cache-key!!")

// ElementRecord is the persisted row for one declaration's element id.
type ElementRecord struct {
	QualifiedName string `gorm:"primaryKey"`
	ElementID     string
	FileHandle    string
	ContentHash   uint64
	UpdatedAt     time.Time
}

// TableName pins the table name instead of relying on gorm's pluralizer.
func (ElementRecord) TableName() string { return "element_ids" }

// Cache wraps a gorm.DB over a SQLite file plus a sibling lock file that
// serializes access across processes sharing the same cache path.
type Cache struct {
	db   *gorm.DB
	lock *flock.Flock
}

// Open connects to (creating if absent) the SQLite database at path,
// taking an exclusive file lock at `{path}.lock` (held until Close) so two
// host processes never interleave writes to the same cache file. While
// another holder has the lock, Open retries every 100ms and fails only
// once ctx is done.
func Open(ctx context.Context, path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	lockPath := path + ".lock"
	fl := flock.New(lockPath)
	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("lock cache file %q: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("cache file %q is locked by another process", lockPath)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.AutoMigrate(&ElementRecord{}); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	return &Cache{db: db, lock: fl}, nil
}

// Close releases the database connection and the file lock.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	return c.lock.Unlock()
}

// ContentHash computes the cache's content fingerprint for src, used to
// decide whether a file's prior element ids are still applicable.
func ContentHash(src []byte) (uint64, error) {
	h, err := highwayhash.New64(highwayKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(src); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// Put records or updates qname's element id for file, tagged with the
// content hash of the file it was extracted from.
func (c *Cache) Put(qname, elementID, file string, contentHash uint64) error {
	rec := ElementRecord{
		QualifiedName: qname,
		ElementID:     elementID,
		FileHandle:    file,
		ContentHash:   contentHash,
		UpdatedAt:     time.Now(),
	}
	return c.db.Save(&rec).Error
}

// Get returns the persisted element id for qname, if any.
func (c *Cache) Get(qname string) (string, bool) {
	var rec ElementRecord
	if err := c.db.First(&rec, "qualified_name = ?", qname).Error; err != nil {
		return "", false
	}
	return rec.ElementID, true
}

// LoadFile returns every persisted qualified_name -> element_id mapping
// recorded against file, for bulk reinstatement via
// pkg/index.AddExternalIDs on startup.
func (c *Cache) LoadFile(file string) (map[string]string, error) {
	var recs []ElementRecord
	if err := c.db.Where("file_handle = ?", file).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load cached element ids for %q: %w", file, err)
	}
	out := make(map[string]string, len(recs))
	for _, r := range recs {
		out[r.QualifiedName] = r.ElementID
	}
	return out, nil
}

// RemoveFile deletes every persisted mapping recorded against file.
func (c *Cache) RemoveFile(file string) error {
	return c.db.Where("file_handle = ?", file).Delete(&ElementRecord{}).Error
}
