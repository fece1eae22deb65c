package interfaces

import (
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// NodeStore materializes and persists tree nodes by block identifier.
// It keeps no nodes in memory between calls.
type NodeStore interface {
	// ReadNode reads and decodes the node stored at id
	ReadNode(id types.BlockID) (*types.NodePhysT, error)

	// WriteNode encodes and writes the node at its own block identifier
	WriteNode(node *types.NodePhysT) error
}

// BTreeSearcher provides point lookup in the tree
type BTreeSearcher interface {
	// Search returns the value paired with key, and false if the key is absent
	Search(root types.BlockID, key uint64) (uint64, bool, error)
}

// BTreeTraverser provides methods for walking the tree
type BTreeTraverser interface {
	// InOrderTraversal visits every entry in ascending key order
	InOrderTraversal(root types.BlockID, visitor EntryVisitor) error

	// LevelOrderTraversal visits every node, breadth first
	LevelOrderTraversal(root types.BlockID, visitor NodeVisitor) error
}

// BTreeInserter adds entries to the tree
type BTreeInserter interface {
	// Insert adds the entry and updates header's root and allocator in memory.
	// The caller persists the header after Insert returns.
	Insert(header *types.HeaderPhysT, entry types.Entry) (*InsertResult, error)
}

// EntryVisitor is called for each entry during an in-order traversal.
// Returning false stops the traversal.
type EntryVisitor func(entry types.Entry) (bool, error)

// NodeVisitor defines a function to be called for each node during traversal
type NodeVisitor func(node *types.NodePhysT, depth int) (bool, error)

// InsertResult describes the structural effect of one insertion
type InsertResult struct {
	// The block the entry landed in
	LeafID types.BlockID

	// Number of splits performed, 0 if the leaf had room
	Splits int

	// Blocks allocated by this insertion
	Allocated []types.BlockID

	// True if the root pointer changed
	RootChanged bool
}

// BTreeAnalyzer provides methods for analyzing a B-tree
type BTreeAnalyzer interface {
	// AnalyzeStructure performs a comprehensive analysis of the B-tree structure
	AnalyzeStructure(header *types.HeaderPhysT) (*BTreeStructureAnalysis, error)

	// Verify checks every structural invariant and reports violations
	Verify(header *types.HeaderPhysT) (*VerificationResult, error)
}

// LevelInfo provides information about B-tree nodes at a specific level
type LevelInfo struct {
	// The depth of the level (0 for the root)
	Level int `json:"level" yaml:"level"`

	// The number of nodes at this level
	NodeCount int `json:"node_count" yaml:"node_count"`

	// The total number of keys at this level
	KeyCount int `json:"key_count" yaml:"key_count"`

	// The average number of keys per node at this level
	AverageKeyCount float64 `json:"average_key_count" yaml:"average_key_count"`

	// The minimum number of keys in a node at this level
	MinKeyCount int `json:"min_key_count" yaml:"min_key_count"`

	// The maximum number of keys in a node at this level
	MaxKeyCount int `json:"max_key_count" yaml:"max_key_count"`
}

// BTreeStructureAnalysis contains the result of a comprehensive B-tree analysis
type BTreeStructureAnalysis struct {
	// The height of the tree (0 when empty)
	Height int `json:"height" yaml:"height"`

	// The total number of reachable nodes
	NodeCount int `json:"node_count" yaml:"node_count"`

	// The number of reachable leaf nodes
	LeafCount int `json:"leaf_count" yaml:"leaf_count"`

	// The total number of entries stored in the tree
	EntryCount int `json:"entry_count" yaml:"entry_count"`

	// Allocated blocks not reachable from the root
	OrphanBlocks int `json:"orphan_blocks" yaml:"orphan_blocks"`

	// Average keys per node divided by MaxKeys
	FillFactor float64 `json:"fill_factor" yaml:"fill_factor"`

	// Information about each level
	Levels []LevelInfo `json:"levels" yaml:"levels"`
}

// VerificationResult contains the result of invariant checking
type VerificationResult struct {
	Valid      bool     `json:"valid" yaml:"valid"`
	NodesSeen  int      `json:"nodes_seen" yaml:"nodes_seen"`
	Violations []string `json:"violations" yaml:"violations"`
}
