package btrees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

func TestSearchEmptyTree(t *testing.T) {
	tt := newTestTree(t)

	_, found, err := tt.searcher.Search(tt.header.RootID, 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, tt.navigator.BlocksRead())
}

func TestSearch(t *testing.T) {
	tt := newTestTree(t)
	for k := uint64(10); k <= 1000; k += 10 {
		tt.insert(t, k, k+1)
	}

	testCases := []struct {
		name  string
		key   uint64
		found bool
		value uint64
	}{
		{"smallest key", 10, true, 11},
		{"largest key", 1000, true, 1001},
		{"middle key", 500, true, 501},
		{"below range", 5, false, 0},
		{"above range", 5000, false, 0},
		{"between keys", 455, false, 0},
		{"zero key", 0, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, found, err := tt.searcher.Search(tt.header.RootID, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestSearchIsReadOnly(t *testing.T) {
	tt := newTestTree(t)
	for k := uint64(1); k <= 100; k++ {
		tt.insert(t, k, k)
	}

	writes := tt.device.Writes()
	nextFree := tt.header.NextFreeID

	for i := 0; i < 3; i++ {
		value, found, err := tt.searcher.Search(tt.header.RootID, 77)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, uint64(77), value)
	}

	assert.Equal(t, writes, tt.device.Writes())
	assert.Equal(t, nextFree, tt.header.NextFreeID)
}

func TestSearchFindsSeparatorKeys(t *testing.T) {
	tt := newTestTree(t)
	for k := uint64(1); k <= 500; k++ {
		tt.insert(t, k, k*2)
	}

	root, err := tt.navigator.ReadNode(tt.header.RootID)
	require.NoError(t, err)
	require.False(t, root.IsLeaf())

	for i := 0; i < int(root.NumKeys); i++ {
		value, found, err := tt.searcher.Search(tt.header.RootID, root.Keys[i])
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, root.Keys[i]*2, value)
	}
}

func TestSearchCorruptTree(t *testing.T) {
	tt := newTestTree(t)
	for k := uint64(1); k <= 20; k++ {
		tt.insert(t, k, k)
	}

	// Point the root at a block that was never allocated
	root, err := tt.navigator.ReadNode(tt.header.RootID)
	require.NoError(t, err)
	root.Children[0] = 500
	tt.writeRawNode(t, root.BlockID, root)

	_, _, err = tt.searcher.Search(tt.header.RootID, 3)
	assert.ErrorIs(t, err, types.ErrCorruptFormat)

	// The right subtree is untouched
	value, found, err := tt.searcher.Search(tt.header.RootID, 15)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(15), value)
}
