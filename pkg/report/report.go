// Package report assembles charge calculation results into exportable reports
package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/vanbaels/pepcharge/pkg/core"
)

// Options controls how results are computed
type Options struct {
	PH          float64 // pH for entries that do not carry their own
	WithProfile bool    // attach a titration profile to each result
	ProfileMin  float64
	ProfileMax  float64
	ProfileStep float64
}

// Meta describes a generated report
type Meta struct {
	GeneratedAt time.Time
	ConstantSet string
	Source      string
	Dropped     int
}

// Build computes a Result for every peptide. Entries carrying their own pH
// are evaluated there; all others at the default from opts. The input is
// expected to be pre-filtered, so any invalid sequence fails the whole build
// with the offending entry named.
func Build(table *core.Table, peptides []core.Peptide, opts Options) ([]core.Result, error) {
	results := make([]core.Result, 0, len(peptides))
	for _, p := range peptides {
		res, err := buildOne(table, p, opts)
		if err != nil {
			return nil, fmt.Errorf("peptide %s: %w", p.DisplayName(), err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// buildOne computes net charge, isoelectric point, charge-state split and
// the optional titration profile for one peptide
func buildOne(table *core.Table, p core.Peptide, opts Options) (*core.Result, error) {
	ph := opts.PH
	if p.PH != nil {
		ph = *p.PH
	}

	z, err := table.NetCharge(p.Sequence, ph)
	if err != nil {
		return nil, err
	}

	pI, err := table.IsoelectricPoint(p.Sequence)
	if err != nil {
		return nil, err
	}

	res := &core.Result{
		Peptide:          p,
		PH:               ph,
		NetCharge:        z,
		IsoelectricPoint: pI,
		States:           core.ChargeStateSplit(z),
	}

	if opts.WithProfile {
		profile, err := table.Profile(p.Sequence, opts.ProfileMin, opts.ProfileMax, opts.ProfileStep)
		if err != nil {
			return nil, err
		}
		res.Profile = profile
	}

	return res, nil
}

// WriteCSV writes results in CSV form, one row per peptide
func WriteCSV(w io.Writer, results []core.Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"name", "sequence", "length", "ph", "net_charge",
		"isoelectric_point", "state_low", "state_high",
		"state_low_fraction", "state_high_fraction",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, res := range results {
		row := []string{
			res.DisplayName(),
			res.Sequence,
			strconv.Itoa(len(res.Sequence)),
			strconv.FormatFloat(res.PH, 'f', 2, 64),
			strconv.FormatFloat(res.NetCharge, 'f', 4, 64),
			strconv.FormatFloat(res.IsoelectricPoint, 'f', 2, 64),
			strconv.Itoa(res.States.Low),
			strconv.Itoa(res.States.High),
			strconv.FormatFloat(res.States.LowFrac, 'f', 4, 64),
			strconv.FormatFloat(res.States.HighFrac, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteProfileCSV writes a single titration profile in CSV form
func WriteProfileCSV(w io.Writer, points []core.ProfilePoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ph", "net_charge"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.PH, 'f', 2, 64),
			strconv.FormatFloat(p.Charge, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

const htmlReport = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Peptide charge report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th { background: #f0f0f0; }
td.seq { text-align: left; font-family: monospace; }
p.meta { color: #666; }
</style>
</head>
<body>
<h1>Peptide charge report</h1>
<p class="meta">Generated {{.Meta.GeneratedAt.Format "2006-01-02 15:04"}} from {{.Meta.Source}} using the {{.Meta.ConstantSet}} constant set.{{if .Meta.Dropped}} {{.Meta.Dropped}} entries dropped by filters.{{end}}</p>
<table>
<tr><th>Name</th><th>Sequence</th><th>pH</th><th>Net charge</th><th>pI</th><th>Charge states</th></tr>
{{range .Results}}<tr>
<td class="seq">{{.DisplayName}}</td>
<td class="seq">{{.Sequence}}</td>
<td>{{printf "%.2f" .PH}}</td>
<td>{{printf "%+.2f" .NetCharge}}</td>
<td>{{printf "%.2f" .IsoelectricPoint}}</td>
<td>{{.States}}</td>
</tr>
{{end}}</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReport))

// WriteHTML writes results as a standalone HTML page
func WriteHTML(w io.Writer, results []core.Result, meta Meta) error {
	data := struct {
		Meta    Meta
		Results []core.Result
	}{meta, results}

	return htmlTemplate.Execute(w, data)
}
