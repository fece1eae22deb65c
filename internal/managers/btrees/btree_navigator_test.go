package btrees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/internal/device"
	parser "github.com/deploymenttheory/go-blockidx/internal/parsers/btrees"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// testTree bundles an in-memory device with the engine components
type testTree struct {
	device    *device.MemoryBlockDevice
	header    *types.HeaderPhysT
	navigator *BTreeNavigator
	searcher  *btreeSearcher
	traverser *btreeTraverser
	inserter  *btreeInserter
}

func newTestTree(t testing.TB) *testTree {
	t.Helper()

	dev := device.NewMemoryBlockDevice()
	header := types.NewHeaderPhys()
	nav := NewBTreeNavigator(dev, header)

	return &testTree{
		device:    dev,
		header:    header,
		navigator: nav,
		searcher:  NewBTreeSearcher(nav).(*btreeSearcher),
		traverser: NewBTreeTraverser(nav).(*btreeTraverser),
		inserter:  NewBTreeInserter(nav).(*btreeInserter),
	}
}

func (tt *testTree) insert(t testing.TB, key, value uint64) {
	t.Helper()
	_, err := tt.inserter.Insert(tt.header, types.Entry{Key: key, Value: value})
	require.NoError(t, err)
}

func (tt *testTree) entries(t testing.TB) []types.Entry {
	t.Helper()
	entries, err := CollectEntries(tt.traverser, tt.header.RootID)
	require.NoError(t, err)
	return entries
}

// writeRawNode stores a node without going through the navigator checks
func (tt *testTree) writeRawNode(t testing.TB, at types.BlockID, node *types.NodePhysT) {
	t.Helper()
	require.NoError(t, tt.device.WriteBlock(at, parser.EncodeNode(node)))
}

func TestNavigatorReadWrite(t *testing.T) {
	tt := newTestTree(t)

	node := &types.NodePhysT{BlockID: tt.header.Allocate(), NumKeys: 2}
	node.Keys[0], node.Values[0] = 1, 10
	node.Keys[1], node.Values[1] = 2, 20

	require.NoError(t, tt.navigator.WriteNode(node))

	got, err := tt.navigator.ReadNode(node.BlockID)
	require.NoError(t, err)
	assert.Equal(t, *node, *got)
	assert.Equal(t, 1, tt.navigator.BlocksRead())
	assert.Equal(t, 1, tt.navigator.BlocksWritten())
	assert.Same(t, tt.header, tt.navigator.Header())
}

func TestNavigatorRejectsBadNodes(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, tt *testTree) types.BlockID
	}{
		{
			name: "reserved block zero",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				return types.NullBlock
			},
		},
		{
			name: "beyond allocator",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				return tt.header.NextFreeID + 3
			},
		},
		{
			name: "block id mismatch",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				id := tt.header.Allocate()
				tt.writeRawNode(t, id, &types.NodePhysT{BlockID: id + 7, NumKeys: 1})
				return id
			},
		},
		{
			name: "never written block",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				id := tt.header.Allocate()
				require.NoError(t, tt.device.WriteBlock(id, make([]byte, types.BlockSize)))
				return id
			},
		},
		{
			name: "too many keys",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				id := tt.header.Allocate()
				tt.writeRawNode(t, id, &types.NodePhysT{BlockID: id, NumKeys: types.MaxKeys + 1})
				return id
			},
		},
		{
			name: "missing block",
			setup: func(t *testing.T, tt *testTree) types.BlockID {
				return tt.header.Allocate()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tt := newTestTree(t)
			id := tc.setup(t, tt)

			_, err := tt.navigator.ReadNode(id)
			assert.ErrorIs(t, err, types.ErrCorruptFormat)
		})
	}
}

func TestNavigatorWriteGuards(t *testing.T) {
	tt := newTestTree(t)

	assert.Error(t, tt.navigator.WriteNode(&types.NodePhysT{}))

	err := tt.navigator.WriteNode(&types.NodePhysT{BlockID: 1, NumKeys: types.MaxKeys + 1})
	assert.ErrorIs(t, err, types.ErrCapacityExceeded)
}

func TestChildIndex(t *testing.T) {
	node := &types.NodePhysT{NumKeys: 3}
	node.Keys[0], node.Keys[1], node.Keys[2] = 10, 20, 30

	testCases := []struct {
		key  uint64
		want int
	}{
		{5, 0},
		{10, 1},
		{15, 1},
		{20, 2},
		{30, 3},
		{99, 3},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, childIndex(node, tc.key), "key %d", tc.key)
	}
}
