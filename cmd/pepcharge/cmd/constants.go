package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vanbaels/pepcharge/pkg/core"
)

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the active ionization constant table",
	Long: `Print the per-residue ionization constants the calculator is using,
after applying any --pka override. Useful for checking what a custom
constant set actually loaded as.`,
	RunE: runConstants,
}

func runConstants(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Constant set: %s\n\n", table.Name())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESIDUE\tPK1\tPK2\tPKR\tSIDE CHAIN")
	for _, aa := range table.Residues() {
		c, _ := table.Lookup(aa)

		pkr, side := "-", "-"
		if c.HasSideChain {
			pkr = fmt.Sprintf("%.2f", c.PKr)
			if c.SideChainPolarity == core.Basic {
				side = "basic"
			} else {
				side = "acidic"
			}
		}

		fmt.Fprintf(w, "%c\t%.2f\t%.2f\t%s\t%s\n", aa, c.PK1, c.PK2, pkr, side)
	}
	return w.Flush()
}
