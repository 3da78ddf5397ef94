// Package core provides net-charge calculation over ionizable peptide sites
package core

import (
	"fmt"
	"math"
)

// SiteKind identifies the position class of an ionizable site.
type SiteKind string

const (
	NTerminus SiteKind = "N-terminus"
	CTerminus SiteKind = "C-terminus"
	SideChain SiteKind = "side-chain"
)

// Site is one ionizable group on a peptide. Side-chain sites aggregate every
// occurrence of one residue type; Count is the number of occurrences.
type Site struct {
	Kind     SiteKind
	Residue  rune
	PKa      float64
	Polarity Polarity
	Count    int
}

// Contribution returns the expected charge this site adds at the given pH.
// Each occurrence contributes the population-weighted average of its charged
// and neutral fractions, so the value is continuous, not integer. The
// logistic form saturates toward 0 or toward the full ionic charge at extreme
// pH without overflowing.
func (s Site) Contribution(pH float64) float64 {
	if s.Polarity == Basic {
		return float64(s.Count) / (math.Pow(10, pH-s.PKa) + 1)
	}
	return -float64(s.Count) / (math.Pow(10, s.PKa-pH) + 1)
}

// InvalidSequenceError reports a sequence that cannot be scored: empty, or
// containing a character with no entry in the constant table. Callers must
// treat it as "no charge value available", never as zero; no partial charge
// is computed over the recognizable residues.
type InvalidSequenceError struct {
	Sequence string
	Position int // index of the offending character; -1 for an empty sequence
	Residue  rune
}

func (e *InvalidSequenceError) Error() string {
	if e.Position < 0 {
		return "invalid sequence: empty"
	}
	return fmt.Sprintf("invalid sequence: unsupported residue %q at position %d", e.Residue, e.Position)
}

// ValidateSequence checks that a sequence is non-empty and uses only the 20
// canonical upper-case residue codes. Every character is inspected.
func (t *Table) ValidateSequence(seq string) error {
	if seq == "" {
		return &InvalidSequenceError{Sequence: seq, Position: -1}
	}
	for i, aa := range seq {
		if _, ok := t.entries[aa]; !ok {
			return &InvalidSequenceError{Sequence: seq, Position: i, Residue: aa}
		}
	}
	return nil
}

// sideChainOrder fixes the emission order of side-chain sites: basic residues
// first, then acidic, so decompositions and sums are deterministic.
var sideChainOrder = []rune{'R', 'H', 'K', 'D', 'E', 'C', 'Y'}

// Sites decomposes a sequence into its ionizable groups: one N-terminal site
// from the first residue's PK2, one C-terminal site from the last residue's
// PK1, and one aggregated site per ionizable side-chain type present. The
// termini are properties of position, not residue identity: a single-residue
// peptide keeps both terminal sites, plus its side-chain site if it has one.
func (t *Table) Sites(seq string) ([]Site, error) {
	if err := t.ValidateSequence(seq); err != nil {
		return nil, err
	}

	runes := []rune(seq)
	first := runes[0]
	last := runes[len(runes)-1]

	sites := []Site{
		{Kind: NTerminus, Residue: first, PKa: t.entries[first].PK2, Polarity: Basic, Count: 1},
		{Kind: CTerminus, Residue: last, PKa: t.entries[last].PK1, Polarity: Acidic, Count: 1},
	}

	counts := make(map[rune]int)
	for _, aa := range runes {
		if t.entries[aa].HasSideChain {
			counts[aa]++
		}
	}

	for _, aa := range sideChainOrder {
		n := counts[aa]
		if n == 0 {
			continue
		}
		c := t.entries[aa]
		sites = append(sites, Site{Kind: SideChain, Residue: aa, PKa: c.PKr, Polarity: c.SideChainPolarity, Count: n})
	}

	return sites, nil
}

// NetCharge computes the expected net charge of a peptide at the given pH:
// the sum of the Henderson-Hasselbalch contributions of every ionizable
// site. The result is a continuous value, the statistically expected charge
// of the population. pH is unrestricted; extreme values saturate each term
// toward its asymptotic charge. No rounding is applied internally.
func (t *Table) NetCharge(seq string, pH float64) (float64, error) {
	sites, err := t.Sites(seq)
	if err != nil {
		return 0, err
	}

	z := 0.0
	for _, s := range sites {
		z += s.Contribution(pH)
	}
	return z, nil
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
