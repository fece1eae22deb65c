package records

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// snappyStreamMagic opens every snappy framed stream: a stream identifier
// chunk (type 0xff, length 6) followed by "sNaPpY"
var snappyStreamMagic = []byte("\xff\x06\x00\x00sNaPpY")

// maxLineLength bounds a single record line
const maxLineLength = 64 << 10

// Record is one line of a key,value source
type Record struct {
	Line  int
	Raw   string
	Entry types.Entry
	Err   error
}

// Reader yields records from a key,value text stream one line at a time.
// Malformed lines come back as records with Err set so the caller can skip
// them and keep going; only I/O failures end the stream early.
type Reader struct {
	scanner    *bufio.Scanner
	line       int
	compressed bool
}

// NewReader wraps src, transparently decoding it when it is a snappy framed
// stream
func NewReader(src io.Reader) (*Reader, error) {
	buffered := bufio.NewReader(src)

	compressed, err := isSnappyStream(buffered)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect record source: %w", err)
	}

	var input io.Reader = buffered
	if compressed {
		input = snappy.NewReader(buffered)
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	return &Reader{
		scanner:    scanner,
		compressed: compressed,
	}, nil
}

// Compressed reports whether the source was a snappy framed stream
func (r *Reader) Compressed() bool {
	return r.compressed
}

// Next returns the next non-blank record, or io.EOF when the source is
// exhausted
func (r *Reader) Next() (*Record, error) {
	for r.scanner.Scan() {
		r.line++
		raw := strings.TrimSpace(r.scanner.Text())
		if raw == "" {
			continue
		}

		entry, err := ParseRecord(raw)
		return &Record{
			Line:  r.line,
			Raw:   raw,
			Entry: entry,
			Err:   err,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record source after line %d: %w", r.line, err)
	}
	return nil, io.EOF
}

// ParseRecord parses "key,value" where both fields are unsigned 64-bit
// decimal integers. Whitespace around either field is ignored.
func ParseRecord(raw string) (types.Entry, error) {
	keyText, valueText, ok := strings.Cut(raw, ",")
	if !ok {
		return types.Entry{}, fmt.Errorf("expected key,value but found %q: %w", raw, types.ErrMalformedRecord)
	}
	if strings.Contains(valueText, ",") {
		return types.Entry{}, fmt.Errorf("too many fields in %q: %w", raw, types.ErrMalformedRecord)
	}

	key, err := strconv.ParseUint(strings.TrimSpace(keyText), 10, 64)
	if err != nil {
		return types.Entry{}, fmt.Errorf("invalid key %q: %w", keyText, types.ErrMalformedRecord)
	}

	value, err := strconv.ParseUint(strings.TrimSpace(valueText), 10, 64)
	if err != nil {
		return types.Entry{}, fmt.Errorf("invalid value %q: %w", valueText, types.ErrMalformedRecord)
	}

	return types.Entry{Key: key, Value: value}, nil
}

func isSnappyStream(r *bufio.Reader) (bool, error) {
	head, err := r.Peek(len(snappyStreamMagic))
	if err != nil && err != io.EOF {
		return false, err
	}
	return bytes.Equal(head, snappyStreamMagic), nil
}
