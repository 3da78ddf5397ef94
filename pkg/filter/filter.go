// Package filter provides peptide list filtering
package filter

import (
	"fmt"

	"github.com/vanbaels/pepcharge/pkg/core"
)

// Config holds filtering configuration
type Config struct {
	MinLength   int  // Drop peptides shorter than this (0 = no minimum)
	MaxLength   int  // Drop peptides longer than this (0 = no maximum)
	Unique      bool // Keep only the first occurrence of each sequence
	DropInvalid bool // Drop sequences the constant table cannot score
}

// Dropped records one peptide removed by Apply and the reason
type Dropped struct {
	Peptide core.Peptide
	Reason  string
}

// Apply runs all configured filters over a peptide list. Input order is
// preserved; when Unique is set the first occurrence of a sequence wins.
// Without DropInvalid, unscorable sequences pass through untouched and fail
// later at calculation time.
func (c *Config) Apply(table *core.Table, peptides []core.Peptide) ([]core.Peptide, []Dropped) {
	kept := make([]core.Peptide, 0, len(peptides))
	var dropped []Dropped
	seen := make(map[string]bool)

	for _, p := range peptides {
		if reason := c.exclude(table, p); reason != "" {
			dropped = append(dropped, Dropped{Peptide: p, Reason: reason})
			continue
		}

		if c.Unique {
			if seen[p.Sequence] {
				dropped = append(dropped, Dropped{Peptide: p, Reason: "duplicate sequence"})
				continue
			}
			seen[p.Sequence] = true
		}

		kept = append(kept, p)
	}

	return kept, dropped
}

// exclude returns a non-empty reason if the peptide fails a configured filter
func (c *Config) exclude(table *core.Table, p core.Peptide) string {
	n := len(p.Sequence)

	if c.MinLength > 0 && n < c.MinLength {
		return fmt.Sprintf("length %d below minimum %d", n, c.MinLength)
	}
	if c.MaxLength > 0 && n > c.MaxLength {
		return fmt.Sprintf("length %d above maximum %d", n, c.MaxLength)
	}
	if c.DropInvalid {
		if err := table.ValidateSequence(p.Sequence); err != nil {
			return err.Error()
		}
	}

	return ""
}
