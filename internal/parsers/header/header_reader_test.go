package header

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// createTestHeaderData builds a raw header block
func createTestHeaderData(magic string, root, nextFree uint64) []byte {
	data := make([]byte, types.BlockSize)
	copy(data[0:8], magic)
	binary.BigEndian.PutUint64(data[8:16], root)
	binary.BigEndian.PutUint64(data[16:24], nextFree)
	return data
}

func TestEncodeHeaderLayout(t *testing.T) {
	data := EncodeHeader(types.NewHeaderPhys())

	require.Len(t, data, types.BlockSize)
	assert.Equal(t, "4348PRJ3", string(data[0:8]))
	assert.Equal(t, uint64(0), binary.BigEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(1), binary.BigEndian.Uint64(data[16:24]))
	for i := types.HeaderEncodedSize; i < types.BlockSize; i++ {
		assert.Zero(t, data[i])
	}
}

func TestEncodeHeaderPreservesMagic(t *testing.T) {
	h := &types.HeaderPhysT{RootID: 4, NextFreeID: 9}
	copy(h.Magic[:], "XXXXXXXX")

	decoded, err := DecodeHeader(EncodeHeader(h))
	require.NoError(t, err)
	assert.Equal(t, types.IndexMagic, string(decoded.Magic[:]))
	assert.Equal(t, types.BlockID(4), decoded.RootID)
	assert.Equal(t, types.BlockID(9), decoded.NextFreeID)
}

func TestNewHeaderReader(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		wantErr  bool
		wantRoot types.BlockID
		wantNext types.BlockID
	}{
		{
			name:     "empty tree",
			data:     createTestHeaderData(types.IndexMagic, 0, 1),
			wantRoot: 0,
			wantNext: 1,
		},
		{
			name:     "populated tree",
			data:     createTestHeaderData(types.IndexMagic, 3, 5),
			wantRoot: 3,
			wantNext: 5,
		},
		{
			name:    "bad magic",
			data:    createTestHeaderData("NOTMAGIC", 0, 1),
			wantErr: true,
		},
		{
			name:    "all zero block",
			data:    make([]byte, types.BlockSize),
			wantErr: true,
		},
		{
			name:    "truncated",
			data:    []byte(types.IndexMagic),
			wantErr: true,
		},
		{
			name:    "next free is zero",
			data:    createTestHeaderData(types.IndexMagic, 0, 0),
			wantErr: true,
		},
		{
			name:    "root beyond allocator",
			data:    createTestHeaderData(types.IndexMagic, 8, 5),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader, err := NewHeaderReader(tc.data)
			if tc.wantErr {
				assert.ErrorIs(t, err, types.ErrCorruptFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.IndexMagic, reader.Magic())

			h := reader.Header()
			assert.Equal(t, tc.wantRoot, h.RootID)
			assert.Equal(t, tc.wantNext, h.NextFreeID)

			// Header returns an independent copy
			h.RootID = 99
			assert.Equal(t, tc.wantRoot, reader.Header().RootID)
		})
	}
}

func TestHeaderAllocate(t *testing.T) {
	h := types.NewHeaderPhys()
	assert.True(t, h.IsEmpty())

	first := h.Allocate()
	second := h.Allocate()

	assert.Equal(t, types.BlockID(1), first)
	assert.Equal(t, types.BlockID(2), second)
	assert.Equal(t, types.BlockID(3), h.NextFreeID)
	assert.True(t, h.IsAllocated(2))
	assert.False(t, h.IsAllocated(0))
	assert.False(t, h.IsAllocated(3))
}
