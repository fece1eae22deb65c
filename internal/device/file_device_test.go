package device

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

func TestFileBlockDeviceReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.idx")

	dev, err := CreateFileDevice(path)
	require.NoError(t, err)

	block := make([]byte, types.BlockSize)
	copy(block, []byte("hello block one"))
	require.NoError(t, dev.WriteBlock(1, block))
	require.NoError(t, dev.WriteBlock(0, make([]byte, types.BlockSize)))
	require.NoError(t, dev.FlushWrites())

	total, err := dev.TotalBlocks()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.NoError(t, dev.Close())

	// Reopen and confirm persistence
	reopened, err := OpenFileDevice(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ReadBlock(1)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(block, got))
	assert.Equal(t, path, reopened.Path())
	assert.Equal(t, uint32(types.BlockSize), reopened.BlockSize())
}

func TestFileBlockDeviceErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("open missing file", func(t *testing.T) {
		_, err := OpenFileDevice(filepath.Join(dir, "missing.idx"))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("open directory", func(t *testing.T) {
		_, err := OpenFileDevice(dir)
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := OpenFileDevice("")
		assert.Error(t, err)
		_, err = CreateFileDevice("")
		assert.Error(t, err)
	})

	t.Run("create existing file", func(t *testing.T) {
		path := filepath.Join(dir, "exists.idx")
		require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

		_, err := CreateFileDevice(path)
		assert.ErrorIs(t, err, types.ErrAlreadyExists)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(content))
	})

	t.Run("short block read", func(t *testing.T) {
		path := filepath.Join(dir, "short.idx")
		require.NoError(t, os.WriteFile(path, make([]byte, 100), 0644))

		dev, err := OpenFileDevice(path)
		require.NoError(t, err)
		defer dev.Close()

		_, err = dev.ReadBlock(0)
		assert.ErrorIs(t, err, types.ErrCorruptFormat)

		_, err = dev.ReadBlock(7)
		assert.ErrorIs(t, err, types.ErrCorruptFormat)
	})

	t.Run("wrong write size", func(t *testing.T) {
		dev, err := CreateFileDevice(filepath.Join(dir, "size.idx"))
		require.NoError(t, err)
		defer dev.Close()

		assert.Error(t, dev.WriteBlock(1, make([]byte, 10)))
	})

	t.Run("use after close", func(t *testing.T) {
		dev, err := CreateFileDevice(filepath.Join(dir, "closed.idx"))
		require.NoError(t, err)
		require.NoError(t, dev.Close())
		require.NoError(t, dev.Close())

		_, err = dev.ReadBlock(0)
		assert.Error(t, err)
		assert.Error(t, dev.WriteBlock(0, make([]byte, types.BlockSize)))
		assert.Error(t, dev.FlushWrites())
	})
}

func TestMemoryBlockDevice(t *testing.T) {
	dev := NewMemoryBlockDevice()

	_, err := dev.ReadBlock(3)
	assert.ErrorIs(t, err, types.ErrCorruptFormat)

	block := make([]byte, types.BlockSize)
	block[0] = 0xAB
	require.NoError(t, dev.WriteBlock(3, block))

	// The device keeps its own copy
	block[0] = 0
	got, err := dev.ReadBlock(3)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), got[0])

	total, err := dev.TotalBlocks()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), total)
	assert.Equal(t, 1, dev.Writes())
	assert.Equal(t, 1, dev.Reads())
	assert.Error(t, dev.WriteBlock(4, []byte{1}))
}
