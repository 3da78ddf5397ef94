package peplist

import (
	"strings"
	"testing"

	"github.com/vanbaels/pepcharge/pkg/core"
)

func readAll(t *testing.T, input string) []core.Peptide {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var out []core.Peptide
	for r.Next() {
		out = append(out, *r.Peptide())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return out
}

func TestReadEntries(t *testing.T) {
	input := `name,sequence,ph
PEPTIDE
iRT-A,DGLDAASYYAPVR
iRT-B,ECCHGDLLECADDR,2.7
`
	got := readAll(t, input)
	if len(got) != 3 {
		t.Fatalf("read %d entries, want 3", len(got))
	}

	if got[0].Sequence != "PEPTIDE" || got[0].Name != "" || got[0].PH != nil {
		t.Errorf("entry 0 = %+v, want bare sequence", got[0])
	}
	if got[1].Name != "iRT-A" || got[1].Sequence != "DGLDAASYYAPVR" || got[1].PH != nil {
		t.Errorf("entry 1 = %+v, want named sequence without pH", got[1])
	}
	if got[2].Name != "iRT-B" || got[2].Sequence != "ECCHGDLLECADDR" {
		t.Errorf("entry 2 = %+v, want named sequence", got[2])
	}
	if got[2].PH == nil || *got[2].PH != 2.7 {
		t.Errorf("entry 2 pH = %v, want 2.7", got[2].PH)
	}

	if got[0].SourceFormat != "peplist" {
		t.Errorf("SourceFormat = %q, want \"peplist\"", got[0].SourceFormat)
	}
	if got[0].Line != 2 || got[2].Line != 4 {
		t.Errorf("line numbers = %d, %d, want 2, 4", got[0].Line, got[2].Line)
	}
}

func TestSkipsCommentsAndBlanks(t *testing.T) {
	input := `# exported peptide list
name,sequence,ph

# spike-in standards
A,PEPTIDE,7.0

B,GAVLK
`
	got := readAll(t, input)
	if len(got) != 2 {
		t.Fatalf("read %d entries, want 2", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("entries = %+v, want A then B", got)
	}
}

func TestEmptyPHField(t *testing.T) {
	input := `name,sequence,ph
A,PEPTIDE,
`
	got := readAll(t, input)
	if len(got) != 1 {
		t.Fatalf("read %d entries, want 1", len(got))
	}
	if got[0].PH != nil {
		t.Errorf("pH = %v, want nil for empty field", got[0].PH)
	}
}

func TestInvalidPH(t *testing.T) {
	input := `name,sequence,ph
A,PEPTIDE,acid
`
	r := NewReader(strings.NewReader(input))
	if r.Next() {
		t.Fatal("Next() = true, want failure on malformed pH")
	}
	err := r.Err()
	if err == nil {
		t.Fatal("Err() = nil, want pH parse error")
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), "invalid pH") {
		t.Errorf("Err() = %q, want line number and pH message", err)
	}
}

func TestTooManyFields(t *testing.T) {
	input := `name,sequence,ph
A,PEPTIDE,7.0,extra
`
	r := NewReader(strings.NewReader(input))
	if r.Next() {
		t.Fatal("Next() = true, want failure on extra fields")
	}
	if err := r.Err(); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Err() = %v, want field-count error with line number", err)
	}
}

func TestEmptyInput(t *testing.T) {
	got := readAll(t, "")
	if len(got) != 0 {
		t.Errorf("read %d entries from empty input, want 0", len(got))
	}

	// A header with nothing after it is also an empty list.
	got = readAll(t, "name,sequence,ph\n")
	if len(got) != 0 {
		t.Errorf("read %d entries from header-only input, want 0", len(got))
	}
}
