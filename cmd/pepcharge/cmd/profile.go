package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vanbaels/pepcharge/pkg/plot"
	"github.com/vanbaels/pepcharge/pkg/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile [sequence]",
	Short: "Sweep net charge across a pH range",
	Long: `Evaluate the net charge of one sequence at evenly spaced pH values
and print, export, or plot the resulting titration profile.

Examples:
  # Print the profile over the full pH scale
  pepcharge profile DGLDAASYYAPVR

  # Fine-grained sweep exported as CSV and PNG
  pepcharge profile --from 2 --to 12 --step 0.1 --out curve.csv --plot curve.png DGLDAASYYAPVR`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	min, max, step := cfg.Profile.Min, cfg.Profile.Max, cfg.Profile.Step
	if cmd.Flags().Changed("from") {
		min = profileFrom
	}
	if cmd.Flags().Changed("to") {
		max = profileTo
	}
	if cmd.Flags().Changed("step") {
		step = profileStep
	}

	seq := args[0]
	points, err := table.Profile(seq, min, max, step)
	if err != nil {
		return err
	}
	pI, err := table.IsoelectricPoint(seq)
	if err != nil {
		return err
	}

	if profileOut != "" {
		f, err := os.Create(profileOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := report.WriteProfileCSV(f, points); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Profile written to %s\n", profileOut)
	}

	if profilePlot != "" {
		f, err := os.Create(profilePlot)
		if err != nil {
			return fmt.Errorf("failed to create plot file: %w", err)
		}
		series := []plot.Series{{Label: seq, Points: points}}
		if err := plot.Titration(f, seq, series, cfg.Plot.Width, cfg.Plot.Height); err != nil {
			f.Close()
			return fmt.Errorf("failed to render plot: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Plot written to %s\n", profilePlot)
	}

	// Print the table unless the profile went to a file.
	if profileOut == "" && profilePlot == "" {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PH\tNET CHARGE")
		for _, p := range points {
			fmt.Fprintf(w, "%.2f\t%+.4f\n", p.PH, p.Charge)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Printf("Isoelectric point: %.2f\n", pI)
	return nil
}
