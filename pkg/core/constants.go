// Package core provides the residue ionization-constant tables
package core

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Polarity selects the Henderson-Hasselbalch branch for a site and the sign
// the site carries when fully ionized.
type Polarity int

const (
	// Basic sites are positive when protonated (N-terminus, Arg, His, Lys).
	Basic Polarity = iota
	// Acidic sites are negative when deprotonated (C-terminus, Asp, Glu, Cys, Tyr).
	Acidic
)

// Constants stores the ionization constants for one amino acid.
type Constants struct {
	PK1 float64 // C-terminal pKa, applied when this residue is C-terminal
	PK2 float64 // N-terminal pKa, applied when this residue is N-terminal
	PKr float64 // side-chain pKa, meaningful only when HasSideChain is true

	HasSideChain      bool
	SideChainPolarity Polarity
}

// bjellqvistTable maps amino acid one-letter codes to the Bjellqvist
// ionization constants.
var bjellqvistTable = map[rune]Constants{
	'A': {PK1: 3.55, PK2: 7.59},
	'R': {PK1: 3.55, PK2: 7.50, PKr: 12.00, HasSideChain: true, SideChainPolarity: Basic},
	'N': {PK1: 3.55, PK2: 7.50},
	'D': {PK1: 4.55, PK2: 7.50, PKr: 4.05, HasSideChain: true, SideChainPolarity: Acidic},
	'C': {PK1: 3.55, PK2: 7.50, PKr: 9.00, HasSideChain: true, SideChainPolarity: Acidic},
	'E': {PK1: 4.75, PK2: 7.70, PKr: 4.45, HasSideChain: true, SideChainPolarity: Acidic},
	'Q': {PK1: 3.55, PK2: 7.50},
	'G': {PK1: 3.55, PK2: 7.50},
	'H': {PK1: 3.55, PK2: 7.50, PKr: 5.98, HasSideChain: true, SideChainPolarity: Basic},
	'I': {PK1: 3.55, PK2: 7.50},
	'L': {PK1: 3.55, PK2: 7.50},
	'K': {PK1: 3.55, PK2: 7.50, PKr: 10.00, HasSideChain: true, SideChainPolarity: Basic},
	'M': {PK1: 3.55, PK2: 7.00},
	'F': {PK1: 3.55, PK2: 7.50},
	'P': {PK1: 3.55, PK2: 8.36},
	'S': {PK1: 3.55, PK2: 6.93},
	'T': {PK1: 3.55, PK2: 6.82},
	'W': {PK1: 3.55, PK2: 7.50},
	'Y': {PK1: 3.55, PK2: 7.50, PKr: 10.00, HasSideChain: true, SideChainPolarity: Acidic},
	'V': {PK1: 3.55, PK2: 7.44},
}

// ConstantsError reports a malformed residue constant dataset. It is fatal:
// no charge can be computed against a table that failed to load.
type ConstantsError struct {
	Line    int
	Message string
}

func (e *ConstantsError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("constant table error on line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("constant table error: %s", e.Message)
}

// Table is the residue constant table consulted by every charge calculation.
// A Table is built once at startup (optionally overridden from a CSV dataset)
// and must not be modified afterwards; once construction is finished it is
// safe for unlimited concurrent readers.
type Table struct {
	entries map[rune]Constants
	name    string
}

// DefaultTable returns a Table pre-loaded with the Bjellqvist constant set.
func DefaultTable() *Table {
	entries := make(map[rune]Constants, len(bjellqvistTable))
	for aa, c := range bjellqvistTable {
		entries[aa] = c
	}
	return &Table{entries: entries, name: "bjellqvist"}
}

// Name returns the name of the active constant set: "bjellqvist" for the
// built-in values, or the source given to LoadFromCSV.
func (t *Table) Name() string {
	return t.name
}

// Lookup returns the constants for an amino acid code.
func (t *Table) Lookup(aa rune) (Constants, bool) {
	c, ok := t.entries[aa]
	return c, ok
}

// Residues returns the residue codes in the table in alphabetical order.
func (t *Table) Residues() []rune {
	codes := make([]rune, 0, len(t.entries))
	for aa := range t.entries {
		codes = append(codes, aa)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// LoadFromCSV overrides constant values from a CSV dataset (format:
// residue,pk1,pk2,pkr with pkr left empty for residues without an ionizable
// side chain). The residue set and which residues carry a side-chain pKa are
// fixed by the model, so rows may change values only. On any malformed row
// the table is left untouched and a *ConstantsError is returned; callers are
// expected to treat that as fatal at startup.
func (t *Table) LoadFromCSV(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)

	// Header line (residue,pk1,pk2,pkr) is required
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return &ConstantsError{Message: err.Error()}
		}
		return &ConstantsError{Message: "dataset is empty"}
	}

	// Stage overrides so a failure partway through cannot leave a
	// half-updated table behind.
	entries := make(map[rune]Constants, len(t.entries))
	for aa, c := range t.entries {
		entries[aa] = c
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			return &ConstantsError{Line: lineNum, Message: "expected residue,pk1,pk2[,pkr]"}
		}

		code := strings.TrimSpace(parts[0])
		if len(code) != 1 {
			return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("invalid residue code %q", code)}
		}
		aa := rune(code[0])

		current, ok := entries[aa]
		if !ok {
			return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("unknown residue %q", code)}
		}

		pk1, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("invalid pk1 value %q", strings.TrimSpace(parts[1]))}
		}
		pk2, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("invalid pk2 value %q", strings.TrimSpace(parts[2]))}
		}

		var pkrField string
		if len(parts) >= 4 {
			pkrField = strings.TrimSpace(parts[3])
		}

		if current.HasSideChain {
			if pkrField == "" {
				return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("residue %q requires a side-chain pKa", code)}
			}
			pkr, err := strconv.ParseFloat(pkrField, 64)
			if err != nil {
				return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("invalid pkr value %q", pkrField)}
			}
			current.PKr = pkr
		} else if pkrField != "" {
			return &ConstantsError{Line: lineNum, Message: fmt.Sprintf("residue %q has no ionizable side chain", code)}
		}

		current.PK1 = pk1
		current.PK2 = pk2
		entries[aa] = current
	}

	if err := scanner.Err(); err != nil {
		return &ConstantsError{Message: err.Error()}
	}

	t.entries = entries
	t.name = source
	return nil
}
