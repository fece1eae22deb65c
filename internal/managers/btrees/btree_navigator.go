package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/parsers/btrees"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// maxTreeDepth bounds every descent. A degree-10 tree never gets close;
// reaching it means the child pointers form a cycle.
const maxTreeDepth = 64

// BTreeNavigator reads and writes nodes by block identifier. Every read goes
// to the device; nothing is cached between calls.
type BTreeNavigator struct {
	device interfaces.BlockDevice
	header *types.HeaderPhysT
	reads  int
	writes int
}

// NewBTreeNavigator creates a navigator over device. header supplies the
// allocated block range and is shared with the caller, so allocations made
// during an insertion are visible immediately.
func NewBTreeNavigator(device interfaces.BlockDevice, header *types.HeaderPhysT) *BTreeNavigator {
	return &BTreeNavigator{
		device: device,
		header: header,
	}
}

// ReadNode reads the node at id and rejects nodes that cannot belong to the tree
func (nav *BTreeNavigator) ReadNode(id types.BlockID) (*types.NodePhysT, error) {
	if !nav.header.IsAllocated(id) {
		return nil, fmt.Errorf("node block %d outside allocated range [1, %d): %w",
			id, nav.header.NextFreeID, types.ErrCorruptFormat)
	}

	node, err := nav.ReadRawNode(id)
	if err != nil {
		return nil, err
	}

	if node.BlockID != id {
		return nil, fmt.Errorf("block %d holds node with id %d: %w", id, node.BlockID, types.ErrCorruptFormat)
	}
	if node.NumKeys > types.MaxKeys {
		return nil, fmt.Errorf("node %d has %d keys, maximum is %d: %w",
			id, node.NumKeys, types.MaxKeys, types.ErrCorruptFormat)
	}

	return node, nil
}

// ReadRawNode reads and decodes the block at id without structural checks
func (nav *BTreeNavigator) ReadRawNode(id types.BlockID) (*types.NodePhysT, error) {
	data, err := nav.device.ReadBlock(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read node block %d: %w", id, err)
	}
	nav.reads++

	node, err := btrees.DecodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode node block %d: %w", id, err)
	}

	return node, nil
}

// WriteNode persists the node at its own block identifier
func (nav *BTreeNavigator) WriteNode(node *types.NodePhysT) error {
	if node.BlockID.IsNull() {
		return fmt.Errorf("refusing to write node to reserved block 0")
	}
	if node.NumKeys > types.MaxKeys {
		return fmt.Errorf("node %d has %d keys: %w", node.BlockID, node.NumKeys, types.ErrCapacityExceeded)
	}

	if err := nav.device.WriteBlock(node.BlockID, btrees.EncodeNode(node)); err != nil {
		return fmt.Errorf("failed to write node block %d: %w", node.BlockID, err)
	}
	nav.writes++

	return nil
}

// Header returns the header the navigator validates against
func (nav *BTreeNavigator) Header() *types.HeaderPhysT {
	return nav.header
}

// BlocksRead returns the number of node blocks read so far
func (nav *BTreeNavigator) BlocksRead() int {
	return nav.reads
}

// BlocksWritten returns the number of node blocks written so far
func (nav *BTreeNavigator) BlocksWritten() int {
	return nav.writes
}

// childIndex returns the child slot a key descends into: the first index
// whose key is greater than key, or NumKeys. Equal keys go right.
func childIndex(node *types.NodePhysT, key uint64) int {
	n := int(node.NumKeys)
	for i := 0; i < n; i++ {
		if key < node.Keys[i] {
			return i
		}
	}
	return n
}
