package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// btreeTraverser implements the BTreeTraverser interface
type btreeTraverser struct {
	store interfaces.NodeStore
}

// NewBTreeTraverser creates a new BTreeTraverser implementation
func NewBTreeTraverser(store interfaces.NodeStore) interfaces.BTreeTraverser {
	return &btreeTraverser{store: store}
}

// InOrderTraversal visits every entry in ascending key order. An empty tree
// visits nothing.
func (traverser *btreeTraverser) InOrderTraversal(root types.BlockID, visitor interfaces.EntryVisitor) error {
	if root.IsNull() {
		return nil
	}

	_, err := traverser.inOrderTraversal(root, 0, visitor)
	return err
}

// inOrderTraversal recurses into children[i] before emitting entry i, then
// into children[NumKeys]. It returns false once the visitor asks to stop.
func (traverser *btreeTraverser) inOrderTraversal(id types.BlockID, depth int, visitor interfaces.EntryVisitor) (bool, error) {
	if depth >= maxTreeDepth {
		return false, fmt.Errorf("traversal exceeded depth %d: %w", maxTreeDepth, types.ErrCorruptFormat)
	}

	node, err := traverser.store.ReadNode(id)
	if err != nil {
		return false, fmt.Errorf("failed to read node during traversal: %w", err)
	}

	n := int(node.NumKeys)
	for i := 0; i < n; i++ {
		if !node.Children[i].IsNull() {
			cont, err := traverser.inOrderTraversal(node.Children[i], depth+1, visitor)
			if err != nil || !cont {
				return cont, err
			}
		}

		cont, err := visitor(node.Entry(i))
		if err != nil {
			return false, fmt.Errorf("visitor error: %w", err)
		}
		if !cont {
			return false, nil
		}
	}

	if !node.Children[n].IsNull() {
		return traverser.inOrderTraversal(node.Children[n], depth+1, visitor)
	}

	return true, nil
}

// LevelOrderTraversal visits every node breadth first with its depth
func (traverser *btreeTraverser) LevelOrderTraversal(root types.BlockID, visitor interfaces.NodeVisitor) error {
	if root.IsNull() {
		return nil
	}

	type queueItem struct {
		id    types.BlockID
		depth int
	}

	queue := []queueItem{{id: root, depth: 0}}
	seen := map[types.BlockID]bool{root: true}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth >= maxTreeDepth {
			return fmt.Errorf("traversal exceeded depth %d: %w", maxTreeDepth, types.ErrCorruptFormat)
		}

		node, err := traverser.store.ReadNode(item.id)
		if err != nil {
			return fmt.Errorf("failed to read node during traversal: %w", err)
		}

		cont, err := visitor(node, item.depth)
		if err != nil {
			return fmt.Errorf("visitor error: %w", err)
		}
		if !cont {
			return nil
		}

		if node.IsLeaf() {
			continue
		}
		for i := 0; i <= int(node.NumKeys); i++ {
			child := node.Children[i]
			if child.IsNull() {
				continue
			}
			if seen[child] {
				return fmt.Errorf("block %d reachable twice: %w", child, types.ErrCorruptFormat)
			}
			seen[child] = true
			queue = append(queue, queueItem{id: child, depth: item.depth + 1})
		}
	}

	return nil
}

// CollectEntries returns every entry in ascending key order
func CollectEntries(traverser interfaces.BTreeTraverser, root types.BlockID) ([]types.Entry, error) {
	entries := []types.Entry{}
	err := traverser.InOrderTraversal(root, func(entry types.Entry) (bool, error) {
		entries = append(entries, entry)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
