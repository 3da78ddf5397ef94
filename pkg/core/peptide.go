// Package core provides the peptide records and result rows shared by readers, filters, and writers
package core

// Peptide is one input record flowing through the report pipeline.
type Peptide struct {
	Name     string
	Sequence string
	PH       *float64 // per-entry pH override; nil means "use the run default"

	// Internal tracking
	SourceFile   string
	SourceFormat string // peplist, fasta
	Line         int
}

// DisplayName returns the label used in logs and reports: the entry name if
// one was given, otherwise the sequence itself.
func (p Peptide) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Sequence
}

// Result is one computed row of a charge report.
type Result struct {
	Peptide
	PH               float64
	NetCharge        float64
	IsoelectricPoint float64
	States           StateSplit
	Profile          []ProfilePoint // nil unless a titration sweep was requested
}
