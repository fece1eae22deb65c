package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-blockidx/internal/device"
	"github.com/deploymenttheory/go-blockidx/internal/managers/btrees"
	"github.com/deploymenttheory/go-blockidx/internal/parsers/header"
	"github.com/deploymenttheory/go-blockidx/internal/parsers/records"
	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// ServiceOptions configures an IndexService
type ServiceOptions struct {
	// SyncWrites flushes the index file to stable storage after every
	// mutating operation
	SyncWrites bool
}

// indexService implements the IndexService interface
type indexService struct {
	options ServiceOptions
}

// NewIndexService creates a new index service instance
func NewIndexService(options ServiceOptions) IndexService {
	return &indexService{options: options}
}

// Create writes a fresh header to a new file. An existing file is never
// touched.
func (s *indexService) Create(ctx context.Context, path string) (IndexInfo, error) {
	if err := ctx.Err(); err != nil {
		return IndexInfo{}, err
	}

	dev, err := device.CreateFileDevice(path)
	if err != nil {
		return IndexInfo{}, err
	}

	h := types.NewHeaderPhys()
	if err := dev.WriteBlock(types.HeaderBlock, header.EncodeHeader(h)); err != nil {
		dev.Close()
		os.Remove(path)
		return IndexInfo{}, fmt.Errorf("failed to write index header: %w", err)
	}
	if s.options.SyncWrites {
		if err := dev.FlushWrites(); err != nil {
			dev.Close()
			os.Remove(path)
			return IndexInfo{}, fmt.Errorf("failed to sync new index: %w", err)
		}
	}

	if err := dev.Close(); err != nil {
		return IndexInfo{}, fmt.Errorf("failed to close new index: %w", err)
	}

	return IndexInfo{
		Path:       path,
		Magic:      types.IndexMagic,
		RootID:     h.RootID,
		NextFreeID: h.NextFreeID,
		FileBlocks: 1,
		Empty:      true,
	}, nil
}

// Info reads the header of an existing index
func (s *indexService) Info(ctx context.Context, path string) (IndexInfo, error) {
	if err := ctx.Err(); err != nil {
		return IndexInfo{}, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return IndexInfo{}, err
	}
	defer handle.Close()

	return handle.info(), nil
}

// Insert adds entry and persists the header last
func (s *indexService) Insert(ctx context.Context, path string, entry types.Entry) (InsertOutcome, error) {
	if err := ctx.Err(); err != nil {
		return InsertOutcome{}, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return InsertOutcome{}, err
	}
	defer handle.Close()

	result, err := handle.inserter.Insert(handle.header, entry)
	if err != nil {
		return InsertOutcome{}, fmt.Errorf("failed to insert key %d: %w", entry.Key, err)
	}

	if err := s.finish(handle); err != nil {
		return InsertOutcome{}, err
	}

	return InsertOutcome{
		Entry:       entry,
		LeafID:      result.LeafID,
		Splits:      result.Splits,
		Allocated:   result.Allocated,
		RootChanged: result.RootChanged,
		RootID:      handle.header.RootID,
		NextFreeID:  handle.header.NextFreeID,
	}, nil
}

// Search looks up key without modifying the file
func (s *indexService) Search(ctx context.Context, path string, key uint64) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return SearchResult{}, err
	}
	defer handle.Close()

	value, found, err := handle.searcher.Search(handle.header.RootID, key)
	if err != nil {
		return SearchResult{}, fmt.Errorf("failed to search key %d: %w", key, err)
	}

	return SearchResult{
		Key:        key,
		Value:      value,
		Found:      found,
		BlocksRead: handle.navigator.BlocksRead(),
	}, nil
}

// Traverse calls fn for every entry in ascending key order, stopping at the
// first error
func (s *indexService) Traverse(ctx context.Context, path string, fn func(types.Entry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	handle, err := openIndex(path)
	if err != nil {
		return err
	}
	defer handle.Close()

	return traverse(ctx, handle, fn)
}

// Dump writes the index contents to w
func (s *indexService) Dump(ctx context.Context, path string, w io.Writer, options DumpOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return 0, err
	}
	defer handle.Close()

	return dump(ctx, handle, w, options.Compress)
}

// Extract writes the index contents to output. Without Force an existing
// output file is an error and is left untouched.
func (s *indexService) Extract(ctx context.Context, path string, output string, options ExtractOptions) (ExtractReport, error) {
	if err := ctx.Err(); err != nil {
		return ExtractReport{}, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return ExtractReport{}, err
	}
	defer handle.Close()

	replaced := false
	if existing, err := os.Stat(output); err == nil {
		if !options.Force {
			return ExtractReport{}, fmt.Errorf("output file %s: %w", output, types.ErrAlreadyExists)
		}
		if indexStat, err := os.Stat(path); err == nil && os.SameFile(existing, indexStat) {
			return ExtractReport{}, fmt.Errorf("refusing to extract %s onto itself", path)
		}
		replaced = true
	}

	var count int
	if options.Force {
		count, err = extractReplacing(ctx, handle, output, options.Compress)
	} else {
		count, err = extractExclusive(ctx, handle, output, options.Compress)
	}
	if err != nil {
		return ExtractReport{}, err
	}

	return ExtractReport{
		Output:     output,
		Entries:    count,
		Compressed: options.Compress,
		Replaced:   replaced,
	}, nil
}

// BulkLoad inserts the records of src in source order. Malformed records are
// skipped and reported; any other failure stops the load after committing the
// header for the records already inserted.
func (s *indexService) BulkLoad(ctx context.Context, path string, src io.Reader, options LoadOptions) (LoadReport, error) {
	start := time.Now()
	report := LoadReport{
		LoadID:         uuid.NewString(),
		Source:         options.SourceName,
		SkippedRecords: []SkippedRecord{},
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return report, err
	}
	defer handle.Close()

	reader, err := records.NewReader(src)
	if err != nil {
		return report, err
	}
	report.Compressed = reader.Compressed()

	loadErr := s.load(ctx, handle, reader, options, &report)

	// Blocks already written stay reachable only if the header follows them
	if err := s.finish(handle); err != nil && loadErr == nil {
		loadErr = err
	}

	report.RootID = handle.header.RootID
	report.NextFreeID = handle.header.NextFreeID
	report.Elapsed = time.Since(start)
	return report, loadErr
}

func (s *indexService) load(ctx context.Context, handle *indexHandle, reader *records.Reader, options LoadOptions, report *LoadReport) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if rec.Err != nil {
			skipped := SkippedRecord{Line: rec.Line, Raw: rec.Raw, Reason: rec.Err.Error()}
			report.Skipped++
			if options.MaxReportedErrors == 0 || len(report.SkippedRecords) < options.MaxReportedErrors {
				report.SkippedRecords = append(report.SkippedRecords, skipped)
			}
			if options.OnSkip != nil {
				options.OnSkip(skipped)
			}
			if options.OnRecord != nil {
				options.OnRecord(rec.Line)
			}
			continue
		}

		result, err := handle.inserter.Insert(handle.header, rec.Entry)
		if err != nil {
			return fmt.Errorf("failed to insert record at line %d: %w", rec.Line, err)
		}
		report.Inserted++
		report.Splits += result.Splits
		report.BlocksAllocated += len(result.Allocated)

		if err := handle.commitHeader(); err != nil {
			return err
		}
		if options.OnRecord != nil {
			options.OnRecord(rec.Line)
		}
	}
}

// Stat analyzes the tree. With verify, an analysis failure caused by
// corruption is reported through the verification result instead.
func (s *indexService) Stat(ctx context.Context, path string, verify bool) (IndexStats, error) {
	if err := ctx.Err(); err != nil {
		return IndexStats{}, err
	}

	handle, err := openIndex(path)
	if err != nil {
		return IndexStats{}, err
	}
	defer handle.Close()

	analyzer := btrees.NewBTreeAnalyzer(handle.navigator, handle.traverser)
	stats := IndexStats{Info: handle.info()}

	if verify {
		verification, err := analyzer.Verify(handle.header)
		if err != nil {
			return IndexStats{}, fmt.Errorf("failed to verify index: %w", err)
		}
		stats.Verification = verification
	}

	analysis, err := analyzer.AnalyzeStructure(handle.header)
	if err != nil {
		if stats.Verification != nil && !stats.Verification.Valid {
			return stats, nil
		}
		return IndexStats{}, fmt.Errorf("failed to analyze index: %w", err)
	}
	stats.Analysis = analysis

	return stats, nil
}

// finish commits the header and, when configured, syncs the file
func (s *indexService) finish(handle *indexHandle) error {
	if err := handle.commitHeader(); err != nil {
		return err
	}
	if s.options.SyncWrites {
		return handle.sync()
	}
	return nil
}

func traverse(ctx context.Context, handle *indexHandle, fn func(types.Entry) error) error {
	return handle.traverser.InOrderTraversal(handle.header.RootID, func(entry types.Entry) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := fn(entry); err != nil {
			return false, err
		}
		return true, nil
	})
}

func dump(ctx context.Context, handle *indexHandle, w io.Writer, compress bool) (int, error) {
	writer := records.NewWriter(w, compress)

	if err := traverse(ctx, handle, writer.Write); err != nil {
		return writer.Count(), err
	}
	if err := writer.Close(); err != nil {
		return writer.Count(), err
	}
	return writer.Count(), nil
}

// extractExclusive creates output, failing if it appeared since the
// collision check, and removes it again if the dump fails
func extractExclusive(ctx context.Context, handle *indexHandle, output string, compress bool) (int, error) {
	file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("output file %s: %w", output, types.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	count, err := dump(ctx, handle, file, compress)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(output)
		return 0, err
	}
	return count, nil
}

// extractReplacing dumps into a temporary file beside output and renames it
// over output only once the dump is complete. A failed dump leaves any
// existing output untouched.
func extractReplacing(ctx context.Context, handle *indexHandle, output string, compress bool) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()

	count, err := dump(ctx, handle, tmp, compress)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, output)
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	return count, nil
}
