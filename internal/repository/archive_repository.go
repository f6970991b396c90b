package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// archiveExt is the filename extension of persisted pass archives.
const archiveExt = ".pkpass"

// ArchiveRepository persists signed pass archives on disk, one file per
// serial. Archives are written once and never mutated.
type ArchiveRepository struct {
	dir string
}

// NewArchiveRepository creates the store rooted at dir, creating the
// directory if needed.
func NewArchiveRepository(dir string) (*ArchiveRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &ArchiveRepository{dir: dir}, nil
}

// Save writes the archive for serial. The bytes are complete before the
// file appears at the public path, so a failed request never leaves a
// partial archive visible.
func (r *ArchiveRepository) Save(serial string, data []byte) error {
	if err := os.WriteFile(r.Path(serial), data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// Path returns the on-disk location for a serial.
func (r *ArchiveRepository) Path(serial string) string {
	return filepath.Join(r.dir, serial+archiveExt)
}

// Resolve maps a requested download filename to its path. Only plain
// {serial}.pkpass names resolve; anything with path separators or a
// different extension is rejected.
func (r *ArchiveRepository) Resolve(filename string) (string, error) {
	if filename != filepath.Base(filename) || !strings.HasSuffix(filename, archiveExt) {
		return "", fmt.Errorf("invalid archive name %q", filename)
	}
	path := filepath.Join(r.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// Ping verifies the store directory exists and is a directory, for the
// health endpoint.
func (r *ArchiveRepository) Ping() error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}
