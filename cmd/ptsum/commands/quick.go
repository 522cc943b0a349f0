package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/alchip/ptsum/logger"
	"github.com/alchip/ptsum/quick"
	"github.com/alchip/ptsum/rpt"
)

// QuickCmd represents the quick command
var QuickCmd = &cobra.Command{
	Use:   "quick <report>",
	Short: "Coarse per-path-group totals from a timing report",
	Long: `Fold a timing report into per-path-group path counts and slack
statistics without building per-path records.

Startpoint and Path Type lines only count when anchored at the start of
a line, so on the usual indented reports the path count falls back to
the number of slack lines. The report may be plain text or
gzip-compressed (.gz).

Examples:
  ptsum quick timing.rpt
  ptsum quick timing.rpt.gz -o timing.quick`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		return runQuick(args[0], output, verbosity)
	},
}

func init() {
	QuickCmd.Flags().StringP("output", "o", "", "Write the summary to a file instead of stdout")
}

func runQuick(reportPath, output string, verbosity int) error {
	fsys := afero.NewOsFs()

	rc, err := rpt.Open(fsys, reportPath)
	if err != nil {
		return err
	}
	defer rc.Close()

	stats, err := quick.Parse(rc)
	if err != nil {
		return err
	}
	if logger.ShouldOutput(verbosity, logger.OutputProgress) {
		statusInfo.Printfln("Parsed %d paths from %s",
			stats[quick.AllGroup].ResolvedPathCount(), reportPath)
	}
	return writeOutput(fsys, output, quick.Render(stats))
}
