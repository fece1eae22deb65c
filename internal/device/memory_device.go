package device

import (
	"fmt"
	"sync"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// MemoryBlockDevice keeps blocks in a map. It backs tests and dry runs.
type MemoryBlockDevice struct {
	blocks map[types.BlockID][]byte
	writes int
	reads  int
	mu     sync.RWMutex
}

// NewMemoryBlockDevice creates an empty in-memory device
func NewMemoryBlockDevice() *MemoryBlockDevice {
	return &MemoryBlockDevice{
		blocks: make(map[types.BlockID][]byte),
	}
}

// ReadBlock returns a copy of the block at address
func (m *MemoryBlockDevice) ReadBlock(address types.BlockID) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blocks[address]
	if !ok {
		return nil, fmt.Errorf("block %d not present: %w", address, types.ErrCorruptFormat)
	}
	m.reads++
	return append([]byte(nil), data...), nil
}

// WriteBlock stores a copy of data at address
func (m *MemoryBlockDevice) WriteBlock(address types.BlockID, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(data) != types.BlockSize {
		return fmt.Errorf("data size %d does not match block size %d", len(data), types.BlockSize)
	}
	m.blocks[address] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// BlockSize returns the size of a single block in bytes
func (m *MemoryBlockDevice) BlockSize() uint32 {
	return types.BlockSize
}

// TotalBlocks returns one past the highest block written
func (m *MemoryBlockDevice) TotalBlocks() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total uint64
	for id := range m.blocks {
		if uint64(id)+1 > total {
			total = uint64(id) + 1
		}
	}
	return total, nil
}

// FlushWrites is a no-op
func (m *MemoryBlockDevice) FlushWrites() error {
	return nil
}

// Close is a no-op
func (m *MemoryBlockDevice) Close() error {
	return nil
}

// Writes returns the number of block writes performed
func (m *MemoryBlockDevice) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Reads returns the number of block reads performed
func (m *MemoryBlockDevice) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}
