package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// BTreeValidator provides validation for individual B-tree nodes
type BTreeValidator struct{}

// NewBTreeValidator creates a new B-tree validator
func NewBTreeValidator() *BTreeValidator {
	return &BTreeValidator{}
}

// ValidationResult contains the result of validation
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateNode checks the invariants that can be decided from one node alone.
// expectedID is the block the node was read from.
func (btv *BTreeValidator) ValidateNode(node *types.NodePhysT, expectedID types.BlockID) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	btv.checkIdentity(node, expectedID, result)
	btv.checkKeyCount(node, result)
	btv.checkKeyOrder(node, result)
	btv.checkChildren(node, result)

	if len(result.Errors) > 0 {
		result.Valid = false
	}

	return result
}

// checkIdentity validates that the node is self-identifying
func (btv *BTreeValidator) checkIdentity(node *types.NodePhysT, expectedID types.BlockID, result *ValidationResult) {
	if node.BlockID != expectedID {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"block id mismatch: stored=%d read from=%d", node.BlockID, expectedID))
	}
	if node.BlockID.IsNull() {
		result.Errors = append(result.Errors, "node stored at reserved block 0")
	}
}

// checkKeyCount validates the key count is within bounds
func (btv *BTreeValidator) checkKeyCount(node *types.NodePhysT, result *ValidationResult) {
	if node.NumKeys > types.MaxKeys {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"key count %d exceeds maximum %d", node.NumKeys, types.MaxKeys))
		return
	}
	if node.NumKeys == 0 {
		result.Errors = append(result.Errors, "node has zero keys")
	}
}

// checkKeyOrder validates that keys are non-decreasing. Equal neighbours are
// legal since duplicate keys are stored as separate entries.
func (btv *BTreeValidator) checkKeyOrder(node *types.NodePhysT, result *ValidationResult) {
	n := boundedKeyCount(node)
	for i := 1; i < n; i++ {
		if node.Keys[i] < node.Keys[i-1] {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"keys out of order at index %d: %d < %d", i, node.Keys[i], node.Keys[i-1]))
		} else if node.Keys[i] == node.Keys[i-1] {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"duplicate key %d at index %d", node.Keys[i], i))
		}
	}
}

// checkChildren validates that a non-leaf node has every child slot filled
// and no pointers beyond its key count
func (btv *BTreeValidator) checkChildren(node *types.NodePhysT, result *ValidationResult) {
	n := boundedKeyCount(node)
	if node.IsLeaf() {
		return
	}

	for i := 0; i <= n; i++ {
		if node.Children[i].IsNull() {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"internal node missing child pointer at index %d", i))
		}
		if node.Children[i] == node.BlockID {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"child pointer at index %d refers to the node itself", i))
		}
	}
	for i := n + 1; i < types.MaxChildren; i++ {
		if !node.Children[i].IsNull() {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"stale child pointer %d beyond key count at index %d", node.Children[i], i))
		}
	}
}

func boundedKeyCount(node *types.NodePhysT) int {
	if node.NumKeys > types.MaxKeys {
		return types.MaxKeys
	}
	return int(node.NumKeys)
}
