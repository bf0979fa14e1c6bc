// Package images provides recipe image decoding, processing, and storage.
package images

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when no image exists for the requested path.
var ErrNotFound = errors.New("image not found")

// Storage persists image blobs in a Badger database keyed by their
// logical path (e.g. "recipes/recipe-abc123.jpg"). Badger handles
// concurrent access, so callers need no external locking.
type Storage struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewStorage opens (or creates) the blob database at the given path.
func NewStorage(path string, logger *slog.Logger) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Sync writes to disk to prevent corruption on crashes

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open image db: %w", err)
	}

	return &Storage{db: db, logger: logger}, nil
}

// Close gracefully closes the blob database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Save stores image data under the given path, replacing any previous blob.
func (s *Storage) Save(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), data)
	})
}

// Get retrieves the image data stored under the given path.
func (s *Storage) Get(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists reports whether a blob is stored under the given path.
func (s *Storage) Exists(path string) bool {
	if path == "" {
		return false
	}

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(path))
		return err
	})
	return err == nil
}

// Delete removes the blob stored under the given path.
// Deleting a missing blob is not an error.
func (s *Storage) Delete(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(path))
	})
}

// Hash computes the SHA256 hash of a stored blob.
// Returns a hex-encoded string for ETag/cache validation.
func (s *Storage) Hash(path string) (string, error) {
	data, err := s.Get(path)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
