package types

// B-Trees
// The index is a B-tree of minimum degree Degree. Every node occupies exactly
// one block and is addressed only by its block identifier.

const (
	// Degree is the minimum degree (t) of the tree.
	Degree = 10

	// MaxKeys is the maximum number of keys a node can hold (2t-1).
	MaxKeys = 2*Degree - 1

	// MaxChildren is the maximum number of child pointers a node can hold (2t).
	MaxChildren = 2 * Degree

	// MedianIndex is the index of the promoted entry in an overfull
	// sequence of 2t entries.
	MedianIndex = Degree - 1
)

// Node layout offsets. All integers are big-endian.
const (
	NodeBlockIDOffset  = 0
	NodeParentIDOffset = 8
	NodeNumKeysOffset  = 16
	NodeKeysOffset     = 24
	NodeValuesOffset   = NodeKeysOffset + MaxKeys*8
	NodeChildrenOffset = NodeValuesOffset + MaxKeys*8
	NodeEncodedSize    = NodeChildrenOffset + MaxChildren*8
)

// NodePhysT is a B-tree node as stored in a single block.
//
// Only indices below NumKeys of Keys and Values are meaningful. Children[i]
// is the subtree holding keys ordered before Keys[i]; Children[NumKeys]
// holds the keys after the last one. A zero child pointer means no child.
type NodePhysT struct {
	// The node's own block address. Must equal the block it was read from.
	BlockID BlockID

	// The parent's block address, or 0 for the root. Informational only.
	ParentID BlockID

	// The number of valid entries in the node.
	NumKeys uint64

	// Keys, sorted ascending.
	Keys [MaxKeys]uint64

	// Values paired with Keys by index.
	Values [MaxKeys]uint64

	// Child block pointers.
	Children [MaxChildren]BlockID
}

// IsLeaf reports whether all of the node's first NumKeys+1 child pointers are null.
func (n *NodePhysT) IsLeaf() bool {
	limit := int(n.NumKeys) + 1
	if limit > MaxChildren {
		limit = MaxChildren
	}
	for i := 0; i < limit; i++ {
		if !n.Children[i].IsNull() {
			return false
		}
	}
	return true
}

// IsFull reports whether the node holds the maximum number of keys.
func (n *NodePhysT) IsFull() bool {
	return n.NumKeys >= MaxKeys
}

// Entry returns the key/value pair at index i.
func (n *NodePhysT) Entry(i int) Entry {
	return Entry{Key: n.Keys[i], Value: n.Values[i]}
}

// Entry is a single key/value pair stored in the index.
type Entry struct {
	Key   uint64 `json:"key" yaml:"key"`
	Value uint64 `json:"value" yaml:"value"`
}
