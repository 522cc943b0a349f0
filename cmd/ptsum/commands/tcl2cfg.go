package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/alchip/ptsum/errors"
	"github.com/alchip/ptsum/tclcfg"
)

// TclCfgCmd represents the tcl2cfg command
var TclCfgCmd = &cobra.Command{
	Use:   "tcl2cfg <input.tcl>",
	Short: "Convert Tcl [list] variable definitions to cfg format",
	Long: `Convert set <array>(<KEY>) [list ...] blocks from a Tcl file into flat
cfg format: one variable per block, the first path on the name line and
the rest indented under it. Comment lines are dropped before matching.

The header section and author default from the [tclcfg] config section.

Examples:
  ptsum tcl2cfg liblist.tcl
  ptsum tcl2cfg liblist.tcl -o liblist.cfg --section liblist
  ptsum tcl2cfg liblist.tcl --author pd-team@alchip.com --created 2025-01-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTclCfg(cmd, args[0])
	},
}

func init() {
	TclCfgCmd.Flags().StringP("output", "o", "", "Write the cfg to a file instead of stdout")
	TclCfgCmd.Flags().String("section", "", "Section header name (default from config)")
	TclCfgCmd.Flags().String("author", "", "Author comment (default from config)")
	TclCfgCmd.Flags().String("created", "", "Created date, YYYY-MM-DD (default today)")
	TclCfgCmd.Flags().Int("name-width", tclcfg.DefaultNameWidth, "Width of the variable name column")
	TclCfgCmd.Flags().Int("indent-width", tclcfg.DefaultIndentWidth, "Indent for continuation lines")
}

func runTclCfg(cmd *cobra.Command, inputPath string) error {
	fsys := afero.NewOsFs()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := tclcfg.Options{
		Section: cfg.TclCfg.Section,
		Author:  cfg.TclCfg.Author,
	}
	if cmd.Flags().Changed("section") {
		opts.Section, _ = cmd.Flags().GetString("section")
	}
	if cmd.Flags().Changed("author") {
		opts.Author, _ = cmd.Flags().GetString("author")
	}
	opts.Created, _ = cmd.Flags().GetString("created")
	opts.NameWidth, _ = cmd.Flags().GetInt("name-width")
	opts.IndentWidth, _ = cmd.Flags().GetInt("indent-width")

	content, err := afero.ReadFile(fsys, inputPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read tcl file %s", inputPath)
	}

	output, _ := cmd.Flags().GetString("output")
	return writeOutput(fsys, output, tclcfg.Convert(string(content), opts))
}
