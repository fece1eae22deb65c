package btrees

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/parsers/btrees"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// btreeAnalyzer implements the BTreeAnalyzer interface
type btreeAnalyzer struct {
	navigator *BTreeNavigator
	traverser interfaces.BTreeTraverser
	validator *btrees.BTreeValidator
}

// NewBTreeAnalyzer creates a new BTreeAnalyzer implementation
func NewBTreeAnalyzer(navigator *BTreeNavigator, traverser interfaces.BTreeTraverser) interfaces.BTreeAnalyzer {
	return &btreeAnalyzer{
		navigator: navigator,
		traverser: traverser,
		validator: btrees.NewBTreeValidator(),
	}
}

// AnalyzeStructure collects per-level node and key counts
func (analyzer *btreeAnalyzer) AnalyzeStructure(header *types.HeaderPhysT) (*interfaces.BTreeStructureAnalysis, error) {
	analysis := &interfaces.BTreeStructureAnalysis{
		Levels: []interfaces.LevelInfo{},
	}

	levels := make(map[int]*interfaces.LevelInfo)

	visitor := func(node *types.NodePhysT, depth int) (bool, error) {
		keys := int(node.NumKeys)

		info, ok := levels[depth]
		if !ok {
			info = &interfaces.LevelInfo{
				Level:       depth,
				MinKeyCount: keys,
				MaxKeyCount: keys,
			}
			levels[depth] = info
		}

		info.NodeCount++
		info.KeyCount += keys
		if keys < info.MinKeyCount {
			info.MinKeyCount = keys
		}
		if keys > info.MaxKeyCount {
			info.MaxKeyCount = keys
		}

		analysis.NodeCount++
		analysis.EntryCount += keys
		if node.IsLeaf() {
			analysis.LeafCount++
		}
		return true, nil
	}

	if err := analyzer.traverser.LevelOrderTraversal(header.RootID, visitor); err != nil {
		return nil, fmt.Errorf("failed to traverse levels: %w", err)
	}

	for depth := 0; depth < len(levels); depth++ {
		info, ok := levels[depth]
		if !ok {
			break
		}
		info.AverageKeyCount = float64(info.KeyCount) / float64(info.NodeCount)
		analysis.Levels = append(analysis.Levels, *info)
	}

	analysis.Height = len(analysis.Levels)
	if analysis.NodeCount > 0 {
		analysis.FillFactor = float64(analysis.EntryCount) / float64(analysis.NodeCount*types.MaxKeys)
	}

	allocated := int(header.NextFreeID - types.FirstNodeBlock)
	if allocated > analysis.NodeCount {
		analysis.OrphanBlocks = allocated - analysis.NodeCount
	}

	return analysis, nil
}

// Verify walks the whole tree and records every invariant violation instead
// of stopping at the first one
func (analyzer *btreeAnalyzer) Verify(header *types.HeaderPhysT) (*interfaces.VerificationResult, error) {
	v := &verifier{
		analyzer:  analyzer,
		header:    header,
		seen:      make(map[types.BlockID]bool),
		leafDepth: -1,
		result: &interfaces.VerificationResult{
			Violations: []string{},
		},
	}

	if !header.RootID.IsNull() {
		v.walk(header.RootID, types.NullBlock, 0, nil, nil)
	}

	v.result.NodesSeen = len(v.seen)
	v.result.Valid = len(v.result.Violations) == 0
	return v.result, nil
}

type verifier struct {
	analyzer  *btreeAnalyzer
	header    *types.HeaderPhysT
	seen      map[types.BlockID]bool
	leafDepth int
	result    *interfaces.VerificationResult
}

func (v *verifier) fail(format string, args ...interface{}) {
	v.result.Violations = append(v.result.Violations, fmt.Sprintf(format, args...))
}

// walk checks the node at id against its parent and the inclusive key bounds
// inherited from its ancestors. Bounds are inclusive because duplicate keys
// may sit on either side of an equal separator.
func (v *verifier) walk(id, parent types.BlockID, depth int, lo, hi *uint64) {
	if depth >= maxTreeDepth {
		v.fail("tree deeper than %d levels at block %d", maxTreeDepth, id)
		return
	}
	if !v.header.IsAllocated(id) {
		v.fail("block %d: pointer outside allocated range [1, %d)", id, v.header.NextFreeID)
		return
	}
	if v.seen[id] {
		v.fail("block %d: reachable more than once", id)
		return
	}
	v.seen[id] = true

	node, err := v.analyzer.navigator.ReadRawNode(id)
	if err != nil {
		v.fail("block %d: %v", id, err)
		return
	}

	check := v.analyzer.validator.ValidateNode(node, id)
	for _, msg := range check.Errors {
		v.fail("block %d: %s", id, msg)
	}
	if node.NumKeys > types.MaxKeys {
		return
	}

	if node.ParentID != parent {
		v.fail("block %d: parent id %d, expected %d", id, node.ParentID, parent)
	}

	n := int(node.NumKeys)
	for i := 0; i < n; i++ {
		if lo != nil && node.Keys[i] < *lo {
			v.fail("block %d: key %d below subtree bound %d", id, node.Keys[i], *lo)
		}
		if hi != nil && node.Keys[i] > *hi {
			v.fail("block %d: key %d above subtree bound %d", id, node.Keys[i], *hi)
		}
	}

	if node.IsLeaf() {
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			v.fail("block %d: leaf at depth %d, other leaves at depth %d", id, depth, v.leafDepth)
		}
		return
	}

	for i := 0; i <= n; i++ {
		child := node.Children[i]
		if child.IsNull() {
			continue
		}

		childLo, childHi := lo, hi
		if i > 0 {
			k := node.Keys[i-1]
			childLo = &k
		}
		if i < n {
			k := node.Keys[i]
			childHi = &k
		}
		v.walk(child, id, depth+1, childLo, childHi)
	}
}
