package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// btreeInserter implements the BTreeInserter interface
type btreeInserter struct {
	store interfaces.NodeStore
}

// NewBTreeInserter creates a new BTreeInserter implementation
func NewBTreeInserter(store interfaces.NodeStore) interfaces.BTreeInserter {
	return &btreeInserter{store: store}
}

// Insert adds entry to the tree described by header.
//
// The descent picks the leaf by the same comparison rule as Search, except
// that equal keys continue to the right. A full leaf splits around its median
// and the median moves into the parent; a full parent splits the same way, up
// to the root, which is replaced by a new one-key root when it splits.
//
// All node blocks are written before Insert returns. header.RootID and
// header.NextFreeID are updated in memory only; persisting the header is the
// caller's last write.
func (ins *btreeInserter) Insert(header *types.HeaderPhysT, entry types.Entry) (*interfaces.InsertResult, error) {
	if header.IsEmpty() {
		return ins.insertFirst(header, entry)
	}

	path, slots, err := ins.descend(header.RootID, entry.Key)
	if err != nil {
		return nil, err
	}

	leaf := path[len(path)-1]
	result := &interfaces.InsertResult{LeafID: leaf.BlockID}
	ws := newWriteSet(ins.store)

	pending := entry
	pendingRight := types.NullBlock
	pos := childIndex(leaf, entry.Key)

	for level := len(path) - 1; level >= 0; level-- {
		node := path[level]

		if !node.IsFull() {
			if err := insertAt(node, pos, pending, pendingRight); err != nil {
				return nil, err
			}
			ws.markModified(node)
			pendingRight = types.NullBlock
			break
		}

		buf := newOverflowBuffer(node, pos, pending, pendingRight)
		node.ParentID = parentOf(path, level)
		right := &types.NodePhysT{
			BlockID:  header.Allocate(),
			ParentID: node.ParentID,
		}
		median := buf.split(node, right)

		ws.markModified(node)
		ws.markNew(right)
		result.Allocated = append(result.Allocated, right.BlockID)
		result.Splits++

		// Children that moved into the new node now belong to it
		if err := ws.reparent(right); err != nil {
			return nil, err
		}

		pending = median
		pendingRight = right.BlockID
		if level > 0 {
			pos = slots[level-1]
		}
	}

	// The root itself split
	if !pendingRight.IsNull() {
		oldRoot := path[0]
		newRoot := &types.NodePhysT{
			BlockID: header.Allocate(),
			NumKeys: 1,
		}
		newRoot.Keys[0] = pending.Key
		newRoot.Values[0] = pending.Value
		newRoot.Children[0] = oldRoot.BlockID
		newRoot.Children[1] = pendingRight

		oldRoot.ParentID = newRoot.BlockID
		if right, ok := ws.lookup(pendingRight); ok {
			right.ParentID = newRoot.BlockID
		}

		ws.markNew(newRoot)
		result.Allocated = append(result.Allocated, newRoot.BlockID)
		header.RootID = newRoot.BlockID
		result.RootChanged = true
	}

	if err := ws.flush(); err != nil {
		return nil, err
	}

	return result, nil
}

// insertFirst creates the root of an empty tree
func (ins *btreeInserter) insertFirst(header *types.HeaderPhysT, entry types.Entry) (*interfaces.InsertResult, error) {
	root := &types.NodePhysT{
		BlockID: header.Allocate(),
		NumKeys: 1,
	}
	root.Keys[0] = entry.Key
	root.Values[0] = entry.Value

	if err := ins.store.WriteNode(root); err != nil {
		return nil, fmt.Errorf("failed to write root node: %w", err)
	}

	header.RootID = root.BlockID
	return &interfaces.InsertResult{
		LeafID:      root.BlockID,
		Allocated:   []types.BlockID{root.BlockID},
		RootChanged: true,
	}, nil
}

// descend walks from root to the insertion leaf, returning the visited nodes
// and, for each non-leaf node, the child slot taken
func (ins *btreeInserter) descend(root types.BlockID, key uint64) ([]*types.NodePhysT, []int, error) {
	var path []*types.NodePhysT
	var slots []int
	visited := make(map[types.BlockID]bool)

	id := root
	for {
		if len(path) >= maxTreeDepth || visited[id] {
			return nil, nil, fmt.Errorf("insertion path loops at block %d: %w", id, types.ErrCorruptFormat)
		}
		visited[id] = true

		node, err := ins.store.ReadNode(id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read insertion path: %w", err)
		}
		path = append(path, node)

		if node.IsLeaf() {
			return path, slots, nil
		}

		slot := childIndex(node, key)
		child := node.Children[slot]
		if child.IsNull() {
			return nil, nil, fmt.Errorf("internal node %d has no child at slot %d: %w",
				node.BlockID, slot, types.ErrCorruptFormat)
		}
		slots = append(slots, slot)
		id = child
	}
}

// parentOf returns the block of the node above path[level], or 0 for the root
func parentOf(path []*types.NodePhysT, level int) types.BlockID {
	if level == 0 {
		return types.NullBlock
	}
	return path[level-1].BlockID
}

// insertAt places entry at index pos, shifting later entries right. A non-null
// right child is placed at pos+1, immediately after the new key.
func insertAt(node *types.NodePhysT, pos int, entry types.Entry, right types.BlockID) error {
	n := int(node.NumKeys)
	if n >= types.MaxKeys {
		return fmt.Errorf("node %d already holds %d keys: %w", node.BlockID, n, types.ErrCapacityExceeded)
	}
	if pos < 0 || pos > n {
		return fmt.Errorf("insert position %d out of range [0, %d]", pos, n)
	}

	copy(node.Keys[pos+1:n+1], node.Keys[pos:n])
	copy(node.Values[pos+1:n+1], node.Values[pos:n])
	node.Keys[pos] = entry.Key
	node.Values[pos] = entry.Value

	if !right.IsNull() {
		copy(node.Children[pos+2:n+2], node.Children[pos+1:n+1])
		node.Children[pos+1] = right
	}

	node.NumKeys++
	return nil
}

// overflowBuffer holds a full node plus one extra entry: 2t entries and
// 2t+1 child pointers
type overflowBuffer struct {
	keys     [types.MaxKeys + 1]uint64
	values   [types.MaxKeys + 1]uint64
	children [types.MaxChildren + 1]types.BlockID
}

func newOverflowBuffer(node *types.NodePhysT, pos int, entry types.Entry, right types.BlockID) *overflowBuffer {
	buf := &overflowBuffer{}
	n := int(node.NumKeys)

	copy(buf.keys[:pos], node.Keys[:pos])
	copy(buf.values[:pos], node.Values[:pos])
	buf.keys[pos] = entry.Key
	buf.values[pos] = entry.Value
	copy(buf.keys[pos+1:], node.Keys[pos:n])
	copy(buf.values[pos+1:], node.Values[pos:n])

	copy(buf.children[:pos+1], node.Children[:pos+1])
	buf.children[pos+1] = right
	copy(buf.children[pos+2:], node.Children[pos+1:n+1])

	return buf
}

// split rewrites left with entries [0, t-1) and fills right with entries
// [t, 2t), returning the median entry t-1 for promotion
func (buf *overflowBuffer) split(left, right *types.NodePhysT) types.Entry {
	const mid = types.MedianIndex
	const total = types.MaxKeys + 1

	median := types.Entry{Key: buf.keys[mid], Value: buf.values[mid]}

	left.Keys = [types.MaxKeys]uint64{}
	left.Values = [types.MaxKeys]uint64{}
	left.Children = [types.MaxChildren]types.BlockID{}
	copy(left.Keys[:], buf.keys[:mid])
	copy(left.Values[:], buf.values[:mid])
	copy(left.Children[:], buf.children[:mid+1])
	left.NumKeys = mid

	copy(right.Keys[:], buf.keys[mid+1:total])
	copy(right.Values[:], buf.values[mid+1:total])
	copy(right.Children[:], buf.children[mid+1:total+1])
	right.NumKeys = total - mid - 1

	return median
}

// writeSet collects the nodes touched by one insertion so they can be written
// in a safe order: new blocks first, then rewritten ones
type writeSet struct {
	store    interfaces.NodeStore
	order    []types.BlockID
	nodes    map[types.BlockID]*types.NodePhysT
	newNodes map[types.BlockID]bool
}

func newWriteSet(store interfaces.NodeStore) *writeSet {
	return &writeSet{
		store:    store,
		nodes:    make(map[types.BlockID]*types.NodePhysT),
		newNodes: make(map[types.BlockID]bool),
	}
}

func (ws *writeSet) add(node *types.NodePhysT) {
	if _, ok := ws.nodes[node.BlockID]; !ok {
		ws.order = append(ws.order, node.BlockID)
	}
	ws.nodes[node.BlockID] = node
}

func (ws *writeSet) markModified(node *types.NodePhysT) {
	ws.add(node)
}

func (ws *writeSet) markNew(node *types.NodePhysT) {
	ws.add(node)
	ws.newNodes[node.BlockID] = true
}

func (ws *writeSet) lookup(id types.BlockID) (*types.NodePhysT, bool) {
	node, ok := ws.nodes[id]
	return node, ok
}

// reparent points every child of parent back at it, reading children that
// are not already part of this insertion
func (ws *writeSet) reparent(parent *types.NodePhysT) error {
	if parent.IsLeaf() {
		return nil
	}

	for i := 0; i <= int(parent.NumKeys); i++ {
		id := parent.Children[i]
		if id.IsNull() {
			continue
		}

		child, ok := ws.lookup(id)
		if !ok {
			var err error
			child, err = ws.store.ReadNode(id)
			if err != nil {
				return fmt.Errorf("failed to read moved child %d: %w", id, err)
			}
		}

		if child.ParentID != parent.BlockID {
			child.ParentID = parent.BlockID
			ws.markModified(child)
		}
	}

	return nil
}

// flush writes new nodes, then modified nodes, each in the order first seen
func (ws *writeSet) flush() error {
	for _, pass := range []bool{true, false} {
		for _, id := range ws.order {
			if ws.newNodes[id] != pass {
				continue
			}
			if err := ws.store.WriteNode(ws.nodes[id]); err != nil {
				return fmt.Errorf("failed to persist node %d: %w", id, err)
			}
		}
	}
	return nil
}
