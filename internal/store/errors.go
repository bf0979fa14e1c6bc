package store

import "errors"

// Sentinel errors returned by store operations. Services translate these
// into domain errors with user-facing messages.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a UNIQUE constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInUse indicates a RESTRICT foreign key blocked the delete.
	ErrInUse = errors.New("still referenced")

	// ErrInvalidReference indicates a write referenced a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)
