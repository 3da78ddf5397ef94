package filter

import (
	"strings"
	"testing"

	"github.com/vanbaels/pepcharge/pkg/core"
)

func peptides(seqs ...string) []core.Peptide {
	ps := make([]core.Peptide, len(seqs))
	for i, s := range seqs {
		ps[i] = core.Peptide{Sequence: s}
	}
	return ps
}

func sequences(ps []core.Peptide) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Sequence
	}
	return out
}

func TestApplyLengthWindow(t *testing.T) {
	table := core.DefaultTable()
	cfg := &Config{MinLength: 3, MaxLength: 5}

	kept, dropped := cfg.Apply(table, peptides("GK", "GAK", "GAVLK", "GAVLMK", "K"))

	want := []string{"GAK", "GAVLK"}
	got := sequences(kept)
	if len(got) != len(want) {
		t.Fatalf("kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kept %v, want %v", got, want)
		}
	}

	if len(dropped) != 3 {
		t.Fatalf("dropped %d peptides, want 3", len(dropped))
	}
	if !strings.Contains(dropped[0].Reason, "below minimum") {
		t.Errorf("reason = %q, want length-minimum reason", dropped[0].Reason)
	}
	if !strings.Contains(dropped[1].Reason, "above maximum") {
		t.Errorf("reason = %q, want length-maximum reason", dropped[1].Reason)
	}
}

func TestApplyUnique(t *testing.T) {
	table := core.DefaultTable()
	cfg := &Config{Unique: true}

	in := []core.Peptide{
		{Name: "first", Sequence: "PEPTIDE"},
		{Name: "other", Sequence: "GAVLK"},
		{Name: "second", Sequence: "PEPTIDE"},
	}
	kept, dropped := cfg.Apply(table, in)

	if len(kept) != 2 {
		t.Fatalf("kept %d peptides, want 2", len(kept))
	}
	if kept[0].Name != "first" || kept[1].Name != "other" {
		t.Errorf("kept %v, want first occurrence in input order", kept)
	}
	if len(dropped) != 1 || dropped[0].Reason != "duplicate sequence" {
		t.Errorf("dropped = %v, want one duplicate", dropped)
	}
}

func TestApplyDropInvalid(t *testing.T) {
	table := core.DefaultTable()

	in := peptides("PEPTIDE", "PEPT1DE", "")

	cfg := &Config{DropInvalid: true}
	kept, dropped := cfg.Apply(table, in)
	if len(kept) != 1 || kept[0].Sequence != "PEPTIDE" {
		t.Fatalf("kept %v, want only the valid peptide", sequences(kept))
	}
	if len(dropped) != 2 {
		t.Fatalf("dropped %d peptides, want 2", len(dropped))
	}
	for _, d := range dropped {
		if !strings.Contains(d.Reason, "invalid sequence") {
			t.Errorf("reason = %q, want invalid-sequence reason", d.Reason)
		}
	}

	// Without DropInvalid the bad sequences pass straight through.
	cfg = &Config{}
	kept, dropped = cfg.Apply(table, in)
	if len(kept) != 3 || len(dropped) != 0 {
		t.Errorf("zero config kept %d / dropped %d, want 3 / 0", len(kept), len(dropped))
	}
}

func TestApplyZeroConfigKeepsOrder(t *testing.T) {
	table := core.DefaultTable()
	cfg := &Config{}

	in := peptides("ECCHGDLLECADDR", "K", "DGLDAASYYAPVR", "K")
	kept, dropped := cfg.Apply(table, in)

	if len(dropped) != 0 {
		t.Fatalf("dropped = %v, want none", dropped)
	}
	got := sequences(kept)
	for i, s := range sequences(in) {
		if got[i] != s {
			t.Fatalf("kept = %v, want input order %v", got, sequences(in))
		}
	}
}
