// Package fasta provides a streaming reader for FASTA sequence files
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vanbaels/pepcharge/pkg/core"
)

// Reader provides streaming access to FASTA records. A record is a '>'
// header line followed by one or more sequence lines, which are concatenated.
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	pending     string // header consumed while finishing the previous record
	pendingLine int
	current     *core.Peptide
	err         error
	done        bool
}

// NewReader creates a new FASTA reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	r.current = nil

	p, err := r.readRecord()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = p
	return true
}

// Peptide returns the current record
func (r *Reader) Peptide() *core.Peptide {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readRecord reads a single FASTA record
func (r *Reader) readRecord() (*core.Peptide, error) {
	if r.done {
		return nil, io.EOF
	}

	// The header is either carried over from the previous record or the
	// first header in the stream.
	header := r.pending
	headerLine := r.pendingLine
	r.pending = ""

	for header == "" {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, err
			}
			r.done = true
			return nil, io.EOF
		}
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ">") {
			return nil, fmt.Errorf("line %d: sequence data before first '>' header", r.lineNum)
		}
		header = line
		headerLine = r.lineNum
	}

	var seq strings.Builder
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			r.pending = line
			r.pendingLine = r.lineNum
			break
		}
		seq.WriteString(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return &core.Peptide{
		Name:         headerName(header),
		Sequence:     seq.String(),
		SourceFormat: "fasta",
		Line:         headerLine,
	}, nil
}

// headerName extracts the record identifier: the first whitespace-separated
// token after '>', with any trailing description dropped
func headerName(header string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(header, ">"))
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
