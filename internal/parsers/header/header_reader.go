package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// HeaderReader provides read access to a decoded index header
type HeaderReader struct {
	header *types.HeaderPhysT
}

// NewHeaderReader parses block 0 and validates its signature
func NewHeaderReader(data []byte) (*HeaderReader, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &HeaderReader{header: h}, nil
}

// DecodeHeader parses raw bytes into a HeaderPhysT and checks the magic
func DecodeHeader(data []byte) (*types.HeaderPhysT, error) {
	if len(data) < types.HeaderEncodedSize {
		return nil, fmt.Errorf("data too small for index header: %d bytes: %w", len(data), types.ErrCorruptFormat)
	}

	h := &types.HeaderPhysT{}
	copy(h.Magic[:], data[types.HeaderMagicOffset:types.HeaderMagicOffset+types.HeaderMagicSize])

	if !bytes.Equal(h.Magic[:], []byte(types.IndexMagic)) {
		return nil, fmt.Errorf("invalid index header magic: got %q, want %q: %w",
			h.Magic[:], types.IndexMagic, types.ErrCorruptFormat)
	}

	h.RootID = types.BlockID(binary.BigEndian.Uint64(data[types.HeaderRootOffset:]))
	h.NextFreeID = types.BlockID(binary.BigEndian.Uint64(data[types.HeaderNextFreeOffset:]))

	// The allocator never hands out block 0 and the root must be one of its blocks
	if h.NextFreeID < types.FirstNodeBlock {
		return nil, fmt.Errorf("invalid next free block %d: %w", h.NextFreeID, types.ErrCorruptFormat)
	}
	if !h.RootID.IsNull() && !h.IsAllocated(h.RootID) {
		return nil, fmt.Errorf("root block %d outside allocated range [1, %d): %w",
			h.RootID, h.NextFreeID, types.ErrCorruptFormat)
	}

	return h, nil
}

// EncodeHeader serializes the header into a full block. The magic written is
// always IndexMagic regardless of the value held in h.
func EncodeHeader(h *types.HeaderPhysT) []byte {
	data := make([]byte, types.BlockSize)
	copy(data[types.HeaderMagicOffset:], types.IndexMagic)
	binary.BigEndian.PutUint64(data[types.HeaderRootOffset:], uint64(h.RootID))
	binary.BigEndian.PutUint64(data[types.HeaderNextFreeOffset:], uint64(h.NextFreeID))
	return data
}

// Header returns a copy of the decoded header
func (hr *HeaderReader) Header() *types.HeaderPhysT {
	h := *hr.header
	return &h
}

// Magic returns the format signature
func (hr *HeaderReader) Magic() string {
	return string(hr.header.Magic[:])
}
