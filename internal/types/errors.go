package types

import "errors"

// Error kinds shared by every layer. Callers wrap them with context and test
// with errors.Is.
var (
	// ErrAlreadyExists is returned when creating a file at a path that exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned when an index file is missing or inaccessible.
	ErrNotFound = errors.New("not found")

	// ErrCorruptFormat is returned for a bad magic signature, a short block or
	// a node that contradicts the file's structure.
	ErrCorruptFormat = errors.New("corrupt index format")

	// ErrCapacityExceeded is returned when an entry is added to a node that
	// already holds MaxKeys keys.
	ErrCapacityExceeded = errors.New("node capacity exceeded")

	// ErrMalformedRecord is returned for a bulk-load record that does not parse
	// into two unsigned integers.
	ErrMalformedRecord = errors.New("malformed record")
)
