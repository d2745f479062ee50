// Package storage holds uploaded CV files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// BlobStore persists uploaded files and serves them back for download.
type BlobStore interface {
	// Save writes the blob and returns the stored key. The key embeds a
	// random prefix so two uploads with the same original name never
	// collide.
	Save(originalName string, r io.Reader) (key string, err error)
	// Open returns a reader over a stored blob.
	Open(key string) (io.ReadCloser, error)
	// Remove deletes a stored blob. Removing a missing blob is not an
	// error.
	Remove(key string) error
}

type diskStore struct {
	dir    string
	logger *zap.Logger
}

// NewDiskStore creates a BlobStore rooted at dir, creating the
// directory if needed.
func NewDiskStore(dir string, logger *zap.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskStore{dir: dir, logger: logger}, nil
}

func (s *diskStore) Save(originalName string, r io.Reader) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate file id: %w", err)
	}

	key := id.String() + "_" + sanitizeName(originalName)
	path := filepath.Join(s.dir, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	s.logger.Debug("Stored blob", zap.String("key", key))
	return key, nil
}

func (s *diskStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *diskStore) Remove(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// resolve rejects keys that would escape the store directory.
func (s *diskStore) resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// sanitizeName strips any path components from a client-supplied file
// name.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	return name
}
