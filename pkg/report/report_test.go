package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vanbaels/pepcharge/pkg/core"
)

func TestBuild(t *testing.T) {
	table := core.DefaultTable()
	lowPH := 2.7

	peptides := []core.Peptide{
		{Name: "acidified", Sequence: "DGLDAASYYAPVR", PH: &lowPH},
		{Name: "neutral", Sequence: "K"},
	}

	results, err := Build(table, peptides, Options{PH: 7.0})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Build() returned %d results, want 2", len(results))
	}

	// Entry pH beats the run default.
	if results[0].PH != 2.7 {
		t.Errorf("result 0 pH = %.2f, want entry override 2.7", results[0].PH)
	}
	if math.Abs(results[0].NetCharge-1.79) > 0.005 {
		t.Errorf("result 0 net charge = %.4f, want ~1.79", results[0].NetCharge)
	}
	if results[0].States.High != 2 {
		t.Errorf("result 0 high state = %d, want 2", results[0].States.High)
	}

	if results[1].PH != 7.0 {
		t.Errorf("result 1 pH = %.2f, want run default 7.0", results[1].PH)
	}
	if math.Abs(results[1].IsoelectricPoint-8.75) > 0.01 {
		t.Errorf("result 1 pI = %.4f, want ~8.75", results[1].IsoelectricPoint)
	}

	if results[0].Profile != nil {
		t.Errorf("profile attached without WithProfile")
	}
}

func TestBuildWithProfile(t *testing.T) {
	table := core.DefaultTable()

	results, err := Build(table, []core.Peptide{{Sequence: "PEPTIDE"}}, Options{
		PH:          7.0,
		WithProfile: true,
		ProfileMin:  0,
		ProfileMax:  14,
		ProfileStep: 0.5,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(results[0].Profile) != 29 {
		t.Errorf("profile has %d points, want 29", len(results[0].Profile))
	}
}

func TestBuildInvalidSequence(t *testing.T) {
	table := core.DefaultTable()

	_, err := Build(table, []core.Peptide{
		{Name: "good", Sequence: "PEPTIDE"},
		{Name: "bad", Sequence: "PEPT1DE"},
	}, Options{PH: 7.0})

	if err == nil {
		t.Fatal("Build() succeeded, want error for invalid sequence")
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("error = %q, want offending entry named", err)
	}
}

func TestWriteCSV(t *testing.T) {
	table := core.DefaultTable()
	lowPH := 2.7

	results, err := Build(table, []core.Peptide{
		{Name: "std-1", Sequence: "DGLDAASYYAPVR", PH: &lowPH},
	}, Options{PH: 7.0})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("CSV has %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "name" || rows[0][4] != "net_charge" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "std-1" || rows[1][1] != "DGLDAASYYAPVR" {
		t.Errorf("row = %v", rows[1])
	}
	if rows[1][4] != "1.7907" {
		t.Errorf("net_charge cell = %q, want \"1.7907\"", rows[1][4])
	}
	if rows[1][2] != "13" {
		t.Errorf("length cell = %q, want \"13\"", rows[1][2])
	}
}

func TestWriteProfileCSV(t *testing.T) {
	table := core.DefaultTable()

	points, err := table.Profile("K", 6, 8, 1)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteProfileCSV(&buf, points); err != nil {
		t.Fatalf("WriteProfileCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("CSV has %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "ph" || rows[0][1] != "net_charge" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][0] != "7.00" || rows[2][1] != "0.7591" {
		t.Errorf("pH 7 row = %v, want [7.00 0.7591]", rows[2])
	}
}

func TestWriteHTML(t *testing.T) {
	table := core.DefaultTable()
	lowPH := 2.7

	results, err := Build(table, []core.Peptide{
		{Name: "<b>std</b>", Sequence: "DGLDAASYYAPVR", PH: &lowPH},
	}, Options{PH: 7.0})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	meta := Meta{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ConstantSet: "bjellqvist",
		Source:      "standards.csv",
		Dropped:     2,
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, results, meta); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"DGLDAASYYAPVR",
		"+1.79",
		"79% +2 / 21% +1",
		"standards.csv",
		"bjellqvist",
		"2 entries dropped",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}

	if strings.Contains(html, "<b>std</b>") {
		t.Error("HTML output does not escape entry names")
	}
	if !strings.Contains(html, "&lt;b&gt;std&lt;/b&gt;") {
		t.Error("HTML output missing escaped entry name")
	}
}
