package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vanbaels/pepcharge/pkg/core"
)

var chargeCmd = &cobra.Command{
	Use:   "charge [sequence...]",
	Short: "Compute net charge for one or more sequences",
	Long: `Compute the expected net charge, isoelectric point, and charge-state
split for peptide sequences given as arguments.

Examples:
  # Net charge at the default pH
  pepcharge charge PEPTIDE

  # Mobile-phase conditions with the per-site breakdown
  pepcharge charge --ph 2.7 --sites DGLDAASYYAPVR ECCHGDLLECADDR`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCharge,
}

func runCharge(cmd *cobra.Command, args []string) error {
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
		ph = chargePH
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQUENCE\tPH\tNET CHARGE\tPI\tCHARGE STATES")
	for _, seq := range args {
		z, err := table.NetCharge(seq, ph)
		if err != nil {
			return err
		}
		pI, err := table.IsoelectricPoint(seq)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.2f\t%+.4f\t%.2f\t%s\n", seq, ph, z, pI, core.ChargeStateSplit(z))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showSites {
		for _, seq := range args {
			if err := printSites(table, seq, ph); err != nil {
				return err
			}
		}
	}

	return nil
}

// printSites prints the per-site decomposition of one sequence
func printSites(table *core.Table, seq string, ph float64) error {
	sites, err := table.Sites(seq)
	if err != nil {
		return err
	}

	fmt.Printf("\nIonizable sites of %s at pH %.2f:\n", seq, ph)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tRESIDUE\tCOUNT\tPKA\tCONTRIBUTION")
	for _, s := range sites {
		fmt.Fprintf(w, "%s\t%c\t%d\t%.2f\t%+.4f\n", s.Kind, s.Residue, s.Count, s.PKa, s.Contribution(ph))
	}
	return w.Flush()
}
