package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// btreeSearcher implements the BTreeSearcher interface
type btreeSearcher struct {
	store interfaces.NodeStore
}

// NewBTreeSearcher creates a new BTreeSearcher implementation
func NewBTreeSearcher(store interfaces.NodeStore) interfaces.BTreeSearcher {
	return &btreeSearcher{store: store}
}

// Search descends from root scanning each node left to right. An exact match
// returns immediately; the first larger key sends the search into the child
// at that index, and exhausting the keys sends it into the last child.
func (s *btreeSearcher) Search(root types.BlockID, key uint64) (uint64, bool, error) {
	if root.IsNull() {
		return 0, false, nil
	}

	id := root
	for depth := 0; depth < maxTreeDepth; depth++ {
		node, err := s.store.ReadNode(id)
		if err != nil {
			return 0, false, fmt.Errorf("search failed at depth %d: %w", depth, err)
		}

		n := int(node.NumKeys)
		i := 0
		for ; i < n; i++ {
			if node.Keys[i] == key {
				return node.Values[i], true, nil
			}
			if node.Keys[i] > key {
				break
			}
		}

		next := node.Children[i]
		if next.IsNull() {
			return 0, false, nil
		}
		id = next
	}

	return 0, false, fmt.Errorf("search exceeded depth %d: %w", maxTreeDepth, types.ErrCorruptFormat)
}
