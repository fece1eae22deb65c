package records

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/snappy"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// Writer emits entries as "key,value" lines, optionally inside a snappy
// framed stream. Close must be called to flush buffered output; it does not
// close the destination.
type Writer struct {
	out     *bufio.Writer
	snappy  *snappy.Writer
	scratch []byte
	count   int
}

// NewWriter creates a Writer on dst
func NewWriter(dst io.Writer, compress bool) *Writer {
	w := &Writer{scratch: make([]byte, 0, 48)}
	if compress {
		w.snappy = snappy.NewBufferedWriter(dst)
		w.out = bufio.NewWriter(w.snappy)
	} else {
		w.out = bufio.NewWriter(dst)
	}
	return w
}

// Write appends one entry line
func (w *Writer) Write(entry types.Entry) error {
	line := FormatRecord(w.scratch[:0], entry)
	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("failed to write record %d: %w", w.count+1, err)
	}
	w.count++
	return nil
}

// Count returns the number of entries written so far
func (w *Writer) Count() int {
	return w.count
}

// Close flushes buffered lines and terminates the compressed stream
func (w *Writer) Close() error {
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if w.snappy != nil {
		if err := w.snappy.Close(); err != nil {
			return fmt.Errorf("failed to finish compressed stream: %w", err)
		}
	}
	return nil
}

// FormatRecord appends the "key,value\n" form of entry to dst
func FormatRecord(dst []byte, entry types.Entry) []byte {
	dst = strconv.AppendUint(dst, entry.Key, 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, entry.Value, 10)
	return append(dst, '\n')
}
