package types

// Index File Header
// Block 0 of every index file. It identifies the format, points at the root
// node and carries the block allocator.

// IndexMagic is the 8-byte signature at the start of every index file.
const IndexMagic = "4348PRJ3"

// Header layout offsets. All integers are big-endian.
const (
	HeaderMagicOffset     = 0
	HeaderMagicSize       = 8
	HeaderRootOffset      = 8
	HeaderNextFreeOffset  = 16
	HeaderEncodedSize     = 24
	HeaderInitialNextFree = FirstNodeBlock
)

// HeaderPhysT is the decoded index header.
type HeaderPhysT struct {
	// The format signature. Always IndexMagic for a valid file.
	Magic [HeaderMagicSize]byte

	// The root node's block, or NullBlock for an empty tree.
	RootID BlockID

	// The next unallocated block. Grows monotonically; blocks are never reused.
	NextFreeID BlockID
}

// NewHeaderPhys returns the header of a freshly created, empty index.
func NewHeaderPhys() *HeaderPhysT {
	h := &HeaderPhysT{
		RootID:     NullBlock,
		NextFreeID: HeaderInitialNextFree,
	}
	copy(h.Magic[:], IndexMagic)
	return h
}

// IsEmpty reports whether the tree has no root.
func (h *HeaderPhysT) IsEmpty() bool {
	return h.RootID.IsNull()
}

// Allocate hands out the next free block and advances the counter.
func (h *HeaderPhysT) Allocate() BlockID {
	id := h.NextFreeID
	h.NextFreeID++
	return id
}

// IsAllocated reports whether id names a node block handed out by the allocator.
func (h *HeaderPhysT) IsAllocated(id BlockID) bool {
	return id >= FirstNodeBlock && id < h.NextFreeID
}
