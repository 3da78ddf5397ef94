// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vanbaels/pepcharge/pkg/config"
	"github.com/vanbaels/pepcharge/pkg/core"
)

var (
	// Persistent flags
	settingsFile string
	pkaFile      string
	verbose      bool

	// Flags for charge command
	chargePH  float64
	showSites bool

	// Flags for profile command
	profileFrom float64
	profileTo   float64
	profileStep float64
	profileOut  string
	profilePlot string

	// Flags for report command
	reportInput  string
	reportFormat string
	reportPH     float64
	reportOut    string
	reportDB     string
	reportHTML   string
	reportPlot   string
	minLength    int
	maxLength    int
	uniqueOnly   bool
	skipInvalid  bool
)

var rootCmd = &cobra.Command{
	Use:   "pepcharge",
	Short: "Pepcharge - Peptide net charge calculator",
	Long: `Pepcharge computes the expected net charge of peptides from the
Henderson-Hasselbalch equation over per-residue ionization constants.

The charge is the statistical average over all protonation states, so
values are fractional: +1.79 at pH 2.7 means 79% of the population
carries +2 and 21% carries +1. Supports:
- Single-sequence checks with per-site breakdowns
- Titration profiles across a pH range
- Batch reports from peptide lists or FASTA files
- CSV, HTML, SQLite, and PNG chart output
- Custom ionization constant sets`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(chargeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(constantsCmd)

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Settings YAML file (default: pepcharge.yaml in working directory)")
	rootCmd.PersistentFlags().StringVar(&pkaFile, "pka", "", "Ionization constant CSV overriding the built-in set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	viper.BindPFlag("pka_file", rootCmd.PersistentFlags().Lookup("pka"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Charge command flags
	chargeCmd.Flags().Float64Var(&chargePH, "ph", config.DefaultPH, "pH to evaluate at")
	chargeCmd.Flags().BoolVar(&showSites, "sites", false, "Show the per-site charge breakdown")

	// Profile command flags
	profileCmd.Flags().Float64Var(&profileFrom, "from", config.DefaultProfileMin, "Start of the pH range")
	profileCmd.Flags().Float64Var(&profileTo, "to", config.DefaultProfileMax, "End of the pH range")
	profileCmd.Flags().Float64Var(&profileStep, "step", config.DefaultProfileStep, "pH increment")
	profileCmd.Flags().StringVarP(&profileOut, "out", "o", "", "Write the profile as CSV to this file")
	profileCmd.Flags().StringVar(&profilePlot, "plot", "", "Render the titration curve as PNG to this file")

	// Report command flags
	reportCmd.Flags().StringVarP(&reportInput, "in", "i", "", "Input file path (required)")
	reportCmd.Flags().StringVarP(&reportFormat, "from", "f", "", "Input format: peplist, fasta (auto-detect if not specified)")
	reportCmd.Flags().Float64Var(&reportPH, "ph", config.DefaultPH, "Default pH for entries without their own")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output CSV file (default: stdout)")
	reportCmd.Flags().StringVar(&reportDB, "db", "", "Also write results to this SQLite database")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "Also write an HTML report to this file")
	reportCmd.Flags().StringVar(&reportPlot, "plot", "", "Also render titration curves as PNG to this file")
	reportCmd.Flags().IntVar(&minLength, "min-length", 0, "Drop peptides shorter than this (0 = no minimum)")
	reportCmd.Flags().IntVar(&maxLength, "max-length", 0, "Drop peptides longer than this (0 = no maximum)")
	reportCmd.Flags().BoolVar(&uniqueOnly, "unique", false, "Keep only the first occurrence of each sequence")
	reportCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Skip unscorable sequences instead of failing")

	reportCmd.MarkFlagRequired("in")
}

// loadSettings reads the layered run settings, honoring --settings
func loadSettings() (*config.Config, error) {
	return config.Load(settingsFile)
}

// loadTable builds the constant table for this run. A requested override
// that fails to load is fatal; there is no fallback to the built-in set.
func loadTable(cfg *config.Config) (*core.Table, error) {
	table := core.DefaultTable()

	// --pka arrives here through the viper binding
	path := cfg.PKaFile
	if path == "" {
		return table, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open constant file: %w", err)
	}
	defer f.Close()

	if err := table.LoadFromCSV(f, filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("failed to load constants from %s: %w", path, err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded constant set '%s' from %s\n", table.Name(), path)
	}
	return table, nil
}
