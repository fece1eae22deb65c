package btrees

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// EncodeNode serializes a node into a full block.
//
// Layout (big-endian, fixed offsets):
//   - 0..8     block id
//   - 8..16    parent block id
//   - 16..24   key count
//   - 24..176  MaxKeys key slots
//   - 176..328 MaxKeys value slots
//   - 328..488 MaxChildren child pointers
//   - 488..512 zero padding
func EncodeNode(node *types.NodePhysT) []byte {
	data := make([]byte, types.BlockSize)

	binary.BigEndian.PutUint64(data[types.NodeBlockIDOffset:], uint64(node.BlockID))
	binary.BigEndian.PutUint64(data[types.NodeParentIDOffset:], uint64(node.ParentID))
	binary.BigEndian.PutUint64(data[types.NodeNumKeysOffset:], node.NumKeys)

	for i := 0; i < types.MaxKeys; i++ {
		binary.BigEndian.PutUint64(data[types.NodeKeysOffset+i*8:], node.Keys[i])
		binary.BigEndian.PutUint64(data[types.NodeValuesOffset+i*8:], node.Values[i])
	}
	for i := 0; i < types.MaxChildren; i++ {
		binary.BigEndian.PutUint64(data[types.NodeChildrenOffset+i*8:], uint64(node.Children[i]))
	}

	return data
}

// DecodeNode parses a block into a node. It does not check key order or
// count bounds; a never-written (all zero) block decodes to an empty node
// at block 0.
func DecodeNode(data []byte) (*types.NodePhysT, error) {
	if len(data) < types.NodeEncodedSize {
		return nil, fmt.Errorf("data too small for B-tree node: %d bytes: %w", len(data), types.ErrCorruptFormat)
	}

	node := &types.NodePhysT{
		BlockID:  types.BlockID(binary.BigEndian.Uint64(data[types.NodeBlockIDOffset:])),
		ParentID: types.BlockID(binary.BigEndian.Uint64(data[types.NodeParentIDOffset:])),
		NumKeys:  binary.BigEndian.Uint64(data[types.NodeNumKeysOffset:]),
	}

	for i := 0; i < types.MaxKeys; i++ {
		node.Keys[i] = binary.BigEndian.Uint64(data[types.NodeKeysOffset+i*8:])
		node.Values[i] = binary.BigEndian.Uint64(data[types.NodeValuesOffset+i*8:])
	}
	for i := 0; i < types.MaxChildren; i++ {
		node.Children[i] = types.BlockID(binary.BigEndian.Uint64(data[types.NodeChildrenOffset+i*8:]))
	}

	return node, nil
}
