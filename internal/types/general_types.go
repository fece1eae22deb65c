// Package types implements the on-disk data structures of a block index file.
package types

// General-Purpose Types
// Basic types that are used in a variety of contexts, and aren't associated with
// any particular functionality.

// BlockID is the zero-based address of a 512-byte block in the index file.
// Block 0 holds the header; the value 0 is also the "no block" sentinel
// wherever it appears as a child pointer or as the root pointer.
type BlockID uint64

// IsNull reports whether the identifier is the "no block" sentinel.
func (b BlockID) IsNull() bool {
	return b == NullBlock
}

// Offset returns the byte offset of the block within the index file.
func (b BlockID) Offset() int64 {
	return int64(b) * BlockSize
}

const (
	// BlockSize is the size, in bytes, of every block in the file.
	BlockSize = 512

	// NullBlock is the reserved block identifier meaning "no block".
	NullBlock BlockID = 0

	// HeaderBlock is the block that holds the index header.
	HeaderBlock BlockID = 0

	// FirstNodeBlock is the first block identifier handed out to a node.
	FirstNodeBlock BlockID = 1
)
