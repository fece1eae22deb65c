package services

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/device"
	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/managers/btrees"
	"github.com/deploymenttheory/go-blockidx/internal/parsers/header"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// indexHandle represents one open index file and the engine bound to it
type indexHandle struct {
	path      string
	magic     string
	device    interfaces.BlockDevice
	header    *types.HeaderPhysT
	committed types.HeaderPhysT
	navigator *btrees.BTreeNavigator
	searcher  interfaces.BTreeSearcher
	traverser interfaces.BTreeTraverser
	inserter  interfaces.BTreeInserter
}

// openIndex opens path and validates its header
func openIndex(path string) (*indexHandle, error) {
	dev, err := device.OpenFileDevice(path)
	if err != nil {
		return nil, err
	}

	handle, err := bindIndex(path, dev)
	if err != nil {
		dev.Close()
		return nil, err
	}
	return handle, nil
}

// bindIndex reads the header from dev and wires the engine to it
func bindIndex(path string, dev interfaces.BlockDevice) (*indexHandle, error) {
	data, err := dev.ReadBlock(types.HeaderBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to read index header: %w", err)
	}

	reader, err := header.NewHeaderReader(data)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid index file: %w", path, err)
	}

	h := reader.Header()
	nav := btrees.NewBTreeNavigator(dev, h)

	return &indexHandle{
		path:      path,
		magic:     reader.Magic(),
		device:    dev,
		header:    h,
		committed: *h,
		navigator: nav,
		searcher:  btrees.NewBTreeSearcher(nav),
		traverser: btrees.NewBTreeTraverser(nav),
		inserter:  btrees.NewBTreeInserter(nav),
	}, nil
}

// commitHeader rewrites block 0 when the root or allocator moved since the
// last commit. It is always the final write of a mutation.
func (h *indexHandle) commitHeader() error {
	if h.committed.RootID == h.header.RootID && h.committed.NextFreeID == h.header.NextFreeID {
		return nil
	}

	if err := h.device.WriteBlock(types.HeaderBlock, header.EncodeHeader(h.header)); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}
	h.committed = *h.header
	return nil
}

// sync flushes the file to stable storage
func (h *indexHandle) sync() error {
	if err := h.device.FlushWrites(); err != nil {
		return fmt.Errorf("failed to sync index file: %w", err)
	}
	return nil
}

func (h *indexHandle) info() IndexInfo {
	info := IndexInfo{
		Path:       h.path,
		Magic:      h.magic,
		RootID:     h.header.RootID,
		NextFreeID: h.header.NextFreeID,
		Empty:      h.header.IsEmpty(),
	}
	if blocks, err := h.device.TotalBlocks(); err == nil {
		info.FileBlocks = blocks
	}
	return info
}

func (h *indexHandle) Close() error {
	return h.device.Close()
}
