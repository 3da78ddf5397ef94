// Package peplist provides a streaming reader for peptide list files
package peplist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vanbaels/pepcharge/pkg/core"
)

// Reader provides streaming access to peptide list files. Entries are one
// per line with comma-separated fields: SEQUENCE, or NAME,SEQUENCE, or
// NAME,SEQUENCE,PH. The first non-comment line is a header and is skipped;
// blank lines and lines starting with # are ignored.
type Reader struct {
	scanner    *bufio.Scanner
	lineNum    int
	skipHeader bool
	current    *core.Peptide
	err        error
}

// NewReader creates a new peptide list reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner:    bufio.NewScanner(r),
		skipHeader: true,
	}
}

// Next advances to the next peptide. Returns false when no more entries or error.
func (r *Reader) Next() bool {
	r.current = nil

	p, err := r.readEntry()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = p
	return true
}

// Peptide returns the current entry
func (r *Reader) Peptide() *core.Peptide {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readEntry reads a single peptide entry from the list
func (r *Reader) readEntry() (*core.Peptide, error) {
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if r.skipHeader {
			r.skipHeader = false
			continue
		}

		return r.parseLine(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// parseLine parses one entry line into a peptide
func (r *Reader) parseLine(line string) (*core.Peptide, error) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	p := &core.Peptide{SourceFormat: "peplist", Line: r.lineNum}

	switch len(parts) {
	case 1:
		p.Sequence = parts[0]
	case 2:
		p.Name = parts[0]
		p.Sequence = parts[1]
	case 3:
		p.Name = parts[0]
		p.Sequence = parts[1]
		if parts[2] != "" {
			ph, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid pH value '%s': %w", r.lineNum, parts[2], err)
			}
			p.PH = &ph
		}
	default:
		return nil, fmt.Errorf("line %d: expected SEQUENCE or NAME,SEQUENCE[,PH], got %d fields", r.lineNum, len(parts))
	}

	return p, nil
}
