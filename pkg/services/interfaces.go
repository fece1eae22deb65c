package services

import (
	"context"
	"io"
	"time"

	"github.com/deploymenttheory/go-blockidx/internal/interfaces"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// IndexInfo represents the header of an index file
type IndexInfo struct {
	Path       string        `json:"path" yaml:"path"`
	Magic      string        `json:"magic" yaml:"magic"`
	RootID     types.BlockID `json:"root_id" yaml:"root_id"`
	NextFreeID types.BlockID `json:"next_free_id" yaml:"next_free_id"`
	FileBlocks uint64        `json:"file_blocks" yaml:"file_blocks"`
	Empty      bool          `json:"empty" yaml:"empty"`
}

// InsertOutcome describes the effect of a single insertion
type InsertOutcome struct {
	Entry       types.Entry     `json:"entry" yaml:"entry"`
	LeafID      types.BlockID   `json:"leaf_id" yaml:"leaf_id"`
	Splits      int             `json:"splits" yaml:"splits"`
	Allocated   []types.BlockID `json:"allocated" yaml:"allocated"`
	RootChanged bool            `json:"root_changed" yaml:"root_changed"`
	RootID      types.BlockID   `json:"root_id" yaml:"root_id"`
	NextFreeID  types.BlockID   `json:"next_free_id" yaml:"next_free_id"`
}

// SearchResult holds the outcome of a point lookup
type SearchResult struct {
	Key        uint64 `json:"key" yaml:"key"`
	Value      uint64 `json:"value" yaml:"value"`
	Found      bool   `json:"found" yaml:"found"`
	BlocksRead int    `json:"blocks_read" yaml:"blocks_read"`
}

// LoadOptions controls bulk loading
type LoadOptions struct {
	// SourceName labels the source in the report
	SourceName string

	// MaxReportedErrors caps the skipped records kept in the report; all
	// skips are still counted
	MaxReportedErrors int

	// OnSkip, when set, is called for every malformed record as it is skipped
	OnSkip func(SkippedRecord)

	// OnRecord, when set, is called after each record is inserted or skipped
	OnRecord func(line int)
}

// SkippedRecord is a source line that could not be loaded
type SkippedRecord struct {
	Line   int    `json:"line" yaml:"line"`
	Raw    string `json:"raw" yaml:"raw"`
	Reason string `json:"reason" yaml:"reason"`
}

// LoadReport summarizes a bulk load
type LoadReport struct {
	LoadID          string          `json:"load_id" yaml:"load_id"`
	Source          string          `json:"source" yaml:"source"`
	Compressed      bool            `json:"compressed" yaml:"compressed"`
	Inserted        int             `json:"inserted" yaml:"inserted"`
	Skipped         int             `json:"skipped" yaml:"skipped"`
	SkippedRecords  []SkippedRecord `json:"skipped_records" yaml:"skipped_records"`
	Splits          int             `json:"splits" yaml:"splits"`
	BlocksAllocated int             `json:"blocks_allocated" yaml:"blocks_allocated"`
	RootID          types.BlockID   `json:"root_id" yaml:"root_id"`
	NextFreeID      types.BlockID   `json:"next_free_id" yaml:"next_free_id"`
	Elapsed         time.Duration   `json:"elapsed" yaml:"elapsed"`
}

// DumpOptions controls writing the index contents as key,value lines
type DumpOptions struct {
	Compress bool
}

// ExtractOptions controls exporting the index to a file
type ExtractOptions struct {
	Compress bool
	// Force replaces an existing output file instead of failing
	Force bool
}

// ExtractReport summarizes an export
type ExtractReport struct {
	Output     string `json:"output" yaml:"output"`
	Entries    int    `json:"entries" yaml:"entries"`
	Compressed bool   `json:"compressed" yaml:"compressed"`
	Replaced   bool   `json:"replaced" yaml:"replaced"`
}

// IndexStats combines header information with the tree analysis
type IndexStats struct {
	Info         IndexInfo                          `json:"info" yaml:"info"`
	Analysis     *interfaces.BTreeStructureAnalysis `json:"analysis" yaml:"analysis"`
	Verification *interfaces.VerificationResult     `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// IndexService provides every operation on an index file. Each call opens
// the file, performs one operation and closes it; no state is kept between
// calls.
type IndexService interface {
	// Create makes a new index file holding only a header
	Create(ctx context.Context, path string) (IndexInfo, error)

	// Info reads and validates the header
	Info(ctx context.Context, path string) (IndexInfo, error)

	// Insert adds one key/value pair
	Insert(ctx context.Context, path string, entry types.Entry) (InsertOutcome, error)

	// Search looks up a key
	Search(ctx context.Context, path string, key uint64) (SearchResult, error)

	// Traverse visits every entry in ascending key order
	Traverse(ctx context.Context, path string, fn func(types.Entry) error) error

	// Dump writes every entry as a key,value line to w and returns the count
	Dump(ctx context.Context, path string, w io.Writer, options DumpOptions) (int, error)

	// Extract writes every entry as a key,value line to a new file
	Extract(ctx context.Context, path string, output string, options ExtractOptions) (ExtractReport, error)

	// BulkLoad inserts every well-formed record of src in order
	BulkLoad(ctx context.Context, path string, src io.Reader, options LoadOptions) (LoadReport, error)

	// Stat analyzes the tree and optionally verifies its invariants
	Stat(ctx context.Context, path string, verify bool) (IndexStats, error)
}
