package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alchip/ptsum/cmd/ptsum/commands"
	"github.com/alchip/ptsum/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ptsum",
	Short: "PrimeTime timing report summarizer",
	Long: `ptsum folds PrimeTime report_timing output into compact violation
summaries: slack and skew histograms, per path-group and per clock-pair
tables, block-to-block crossings, and per-startpoint worst paths.

Available commands:
  rpt     - Summarize violations in a full -nosplit timing report
  quick   - Coarse per-path-group totals from any timing report
  tcl2cfg - Convert Tcl [list] variable definitions to cfg format
  version - Show version information

Examples:
  ptsum rpt timing.rpt -o timing.sum
  ptsum rpt timing.rpt.gz --block-map-file blocks.map
  ptsum quick timing.rpt
  ptsum tcl2cfg liblist.tcl -o liblist.cfg`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		return logger.Initialize(verbosity, false)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides the ptsum.toml search)")

	rootCmd.AddCommand(commands.RptCmd)
	rootCmd.AddCommand(commands.QuickCmd)
	rootCmd.AddCommand(commands.TclCfgCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
