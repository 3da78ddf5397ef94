package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vanbaels/pepcharge/pkg/core"
	"github.com/vanbaels/pepcharge/pkg/filter"
	"github.com/vanbaels/pepcharge/pkg/plot"
	"github.com/vanbaels/pepcharge/pkg/reader/fasta"
	"github.com/vanbaels/pepcharge/pkg/reader/peplist"
	"github.com/vanbaels/pepcharge/pkg/report"
	"github.com/vanbaels/pepcharge/pkg/writer/sqlite"
)

// maxPlotSeries caps how many titration curves go on one report chart
const maxPlotSeries = 8

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a charge report for a peptide list",
	Long: `Read peptides from a list or FASTA file, compute net charge,
isoelectric point, and charge-state split for each, and export the
results as CSV, HTML, SQLite, or a PNG chart.

Examples:
  # CSV report on stdout at the default pH
  pepcharge report --in peptides.csv

  # Mobile-phase report with every output sink
  pepcharge report --in peptides.csv --ph 2.7 --out charges.csv --db charges.db --html charges.html --plot charges.png

  # Tryptic digest from FASTA, deduplicated, skipping unscorable entries
  pepcharge report --in digest.fasta --unique --skip-invalid --out digest.csv`,
	RunE: runReport,
}

// peptideReader is the streaming interface both input formats provide
type peptideReader interface {
	Next() bool
	Peptide() *core.Peptide
	Err() error
}

func runReport(cmd *cobra.Command, args []string) error {
	// Validate input file exists
	if _, err := os.Stat(reportInput); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", reportInput)
	}

	// Auto-detect format if not specified
	format := reportFormat
	if format == "" {
		ext := strings.ToLower(filepath.Ext(reportInput))
		switch ext {
		case ".csv", ".txt", ".peplist":
			format = "peplist"
		case ".fasta", ".fa", ".faa":
			format = "fasta"
		default:
			return fmt.Errorf("cannot auto-detect format from extension '%s', please specify --from", ext)
		}
	}

	format = strings.ToLower(format)
	if format != "peplist" && format != "fasta" {
		return fmt.Errorf("invalid input format '%s', must be peplist or fasta", format)
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	ph := cfg.PH
	if cmd.Flags().Changed("ph") {
		ph = reportPH
	}

	// With no sink chosen the CSV goes to stdout, so keep progress and
	// summary chatter off it.
	stdoutCSV := reportOut == "" && reportDB == "" && reportHTML == "" && reportPlot == ""

	if !stdoutCSV {
		fmt.Printf("Building charge report from %s...\n", reportInput)
		fmt.Printf("Format: %s\n", format)
		fmt.Printf("Constant set: %s\n", table.Name())
		fmt.Printf("Default pH: %.2f\n", ph)
	}

	peptides, err := readPeptides(reportInput, format, stdoutCSV)
	if err != nil {
		return err
	}

	// Set up filter config
	fc := &filter.Config{
		MinLength:   cfg.Filter.MinLength,
		MaxLength:   cfg.Filter.MaxLength,
		Unique:      cfg.Filter.Unique,
		DropInvalid: skipInvalid,
	}
	if cmd.Flags().Changed("min-length") {
		fc.MinLength = minLength
	}
	if cmd.Flags().Changed("max-length") {
		fc.MaxLength = maxLength
	}
	if cmd.Flags().Changed("unique") {
		fc.Unique = uniqueOnly
	}

	kept, dropped := fc.Apply(table, peptides)
	for _, d := range dropped {
		fmt.Fprintf(os.Stderr, "Warning: skipping %s: %s\n", d.Peptide.DisplayName(), d.Reason)
	}

	opts := report.Options{
		PH:          ph,
		WithProfile: reportDB != "" || reportPlot != "",
		ProfileMin:  cfg.Profile.Min,
		ProfileMax:  cfg.Profile.Max,
		ProfileStep: cfg.Profile.Step,
	}

	results, err := report.Build(table, kept, opts)
	if err != nil {
		return err
	}

	meta := report.Meta{
		GeneratedAt: time.Now(),
		ConstantSet: table.Name(),
		Source:      filepath.Base(reportInput),
		Dropped:     len(dropped),
	}

	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := report.WriteCSV(f, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else if stdoutCSV {
		if err := report.WriteCSV(os.Stdout, results); err != nil {
			return err
		}
	}

	if reportDB != "" {
		if err := writeDatabase(reportDB, table.Name(), results); err != nil {
			return err
		}
	}

	if reportHTML != "" {
		f, err := os.Create(reportHTML)
		if err != nil {
			return fmt.Errorf("failed to create HTML file: %w", err)
		}
		if err := report.WriteHTML(f, results, meta); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if reportPlot != "" {
		if err := writeReportPlot(reportPlot, results, cfg.Plot.Width, cfg.Plot.Height); err != nil {
			return err
		}
	}

	if !stdoutCSV {
		fmt.Printf("\nReport complete!\n")
		fmt.Printf("Processed: %d peptides\n", len(results))
		if len(dropped) > 0 {
			fmt.Printf("Skipped: %d entries (filters)\n", len(dropped))
		}
		for _, out := range []string{reportOut, reportDB, reportHTML, reportPlot} {
			if out != "" {
				fmt.Printf("Output: %s\n", out)
			}
		}
	}

	return nil
}

// readPeptides reads every entry of the input file into memory
func readPeptides(path, format string, quiet bool) ([]core.Peptide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var r peptideReader
	switch format {
	case "peplist":
		r = peplist.NewReader(f)
	case "fasta":
		r = fasta.NewReader(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	var peptides []core.Peptide
	for r.Next() {
		p := *r.Peptide()
		p.SourceFile = path
		peptides = append(peptides, p)

		if !quiet && len(peptides)%1000 == 0 {
			fmt.Printf("Read %d entries...\n", len(peptides))
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}

	return peptides, nil
}

// writeDatabase exports results to a SQLite database
func writeDatabase(path, constantSet string, results []core.Result) error {
	writer, err := sqlite.NewWriter(path, constantSet)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}

	for i := range results {
		if err := writer.WriteResult(&results[i]); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write peptide %s: %w", results[i].DisplayName(), err)
		}
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}

	return nil
}

// writeReportPlot renders the titration curves of the leading results
func writeReportPlot(path string, results []core.Result, width, height int) error {
	var series []plot.Series
	for i := range results {
		if len(series) >= maxPlotSeries {
			fmt.Fprintf(os.Stderr, "Warning: plotting only the first %d of %d peptides\n", maxPlotSeries, len(results))
			break
		}
		series = append(series, plot.Series{Label: results[i].DisplayName(), Points: results[i].Profile})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	if err := plot.Titration(f, "Titration curves", series, width, height); err != nil {
		f.Close()
		return fmt.Errorf("failed to render plot: %w", err)
	}
	return f.Close()
}
