package device

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// FileBlockDevice provides block-addressed random access to an index file
type FileBlockDevice struct {
	file *os.File
	path string
	mu   sync.RWMutex
}

// OpenFileDevice opens an existing index file for reading and writing
func OpenFileDevice(path string) (*FileBlockDevice, error) {
	if path == "" {
		return nil, fmt.Errorf("index file path cannot be empty")
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("failed to open index file %s: %w: %v", path, types.ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to open index file %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory: %w", path, types.ErrNotFound)
	}

	return &FileBlockDevice{file: file, path: path}, nil
}

// CreateFileDevice creates a new, empty index file. It never truncates an
// existing file.
func CreateFileDevice(path string) (*FileBlockDevice, error) {
	if path == "" {
		return nil, fmt.Errorf("index file path cannot be empty")
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("index file %s: %w", path, types.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create index file %s: %w", path, err)
	}

	return &FileBlockDevice{file: file, path: path}, nil
}

// ReadBlock reads a single block from the file
func (d *FileBlockDevice) ReadBlock(address types.BlockID) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.file == nil {
		return nil, fmt.Errorf("device is closed")
	}

	data := make([]byte, types.BlockSize)
	n, err := d.file.ReadAt(data, address.Offset())
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read block %d: %w", address, err)
	}

	// A block past the end of the file or cut short is a truncated file
	if n < types.BlockSize {
		return nil, fmt.Errorf("incomplete block read at block %d: got %d bytes, expected %d: %w",
			address, n, types.BlockSize, types.ErrCorruptFormat)
	}

	return data, nil
}

// WriteBlock writes a single block to the file
func (d *FileBlockDevice) WriteBlock(address types.BlockID, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return fmt.Errorf("device is closed")
	}

	if len(data) != types.BlockSize {
		return fmt.Errorf("data size %d does not match block size %d", len(data), types.BlockSize)
	}

	if _, err := d.file.WriteAt(data, address.Offset()); err != nil {
		return fmt.Errorf("failed to write block %d: %w", address, err)
	}

	return nil
}

// BlockSize returns the size of a single block in bytes
func (d *FileBlockDevice) BlockSize() uint32 {
	return types.BlockSize
}

// TotalBlocks returns the number of whole blocks in the file
func (d *FileBlockDevice) TotalBlocks() (uint64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.file == nil {
		return 0, fmt.Errorf("device is closed")
	}

	info, err := d.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat index file: %w", err)
	}

	return uint64(info.Size()) / types.BlockSize, nil
}

// FlushWrites commits written blocks to stable storage
func (d *FileBlockDevice) FlushWrites() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return fmt.Errorf("device is closed")
	}

	return d.file.Sync()
}

// Path returns the path the device was opened from
func (d *FileBlockDevice) Path() string {
	return d.path
}

// Close closes the index file
func (d *FileBlockDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}

	err := d.file.Close()
	d.file = nil
	return err
}
