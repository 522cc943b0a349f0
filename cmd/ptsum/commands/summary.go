package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/alchip/ptsum/blockmap"
	"github.com/alchip/ptsum/config"
	"github.com/alchip/ptsum/display"
	"github.com/alchip/ptsum/logger"
	"github.com/alchip/ptsum/rpt"
	"github.com/alchip/ptsum/summary"
)

// RptCmd represents the rpt command
var RptCmd = &cobra.Command{
	Use:   "rpt <report>",
	Short: "Summarize violations in a PrimeTime timing report",
	Long: `Scan a report_timing -nosplit report and fold the violating paths into
slack and skew histograms, per path-group, per clock-pair and per
block-pair tables, a stage-count histogram, and a per-startpoint detail
listing of worst paths.

The report may be plain text or gzip-compressed (.gz). Block names come
from instance prefixes: the longest configured prefix wins, and
unmatched instances fall back to their first hierarchy token.

Examples:
  ptsum rpt timing.rpt                                  # Summary to stdout
  ptsum rpt timing.rpt.gz -o timing.sum                 # Gzipped input, file output
  ptsum rpt timing.rpt --block-map 'm_misc/m_buf/=m_buf'
  ptsum rpt timing.rpt --block-map-file blocks.map
  ptsum rpt timing.rpt --json                           # Summary as JSON
  ptsum rpt timing.rpt -o timing.sum --watch            # Re-summarize on change`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		mapEntries, _ := cmd.Flags().GetStringArray("block-map")
		mapFiles, _ := cmd.Flags().GetStringArray("block-map-file")
		watch, _ := cmd.Flags().GetBool("watch")
		verbosity, _ := cmd.Flags().GetCount("verbose")

		return runRpt(cmd, args[0], output, mapEntries, mapFiles, watch, verbosity)
	},
}

func init() {
	RptCmd.Flags().StringP("output", "o", "", "Write the summary to a file instead of stdout")
	RptCmd.Flags().StringArray("block-map", nil, "Block mapping entry prefix=name (repeatable)")
	RptCmd.Flags().StringArray("block-map-file", nil, "Block mapping file, one 'prefix = name' per line (repeatable)")
	RptCmd.Flags().Bool("json", false, "Output the summary as JSON instead of text")
	RptCmd.Flags().Bool("watch", false, "Keep running and re-summarize whenever the report changes")
}

func runRpt(cmd *cobra.Command, reportPath, output string, mapEntries, mapFiles []string, watch bool, verbosity int) error {
	fsys := afero.NewOsFs()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		logger.Debugw("Configuration loaded", "config", cfg.String())
	}

	pats, err := rpt.NewPatterns(cfg.PatternSpec())
	if err != nil {
		return err
	}

	resolver, err := buildResolver(fsys, cfg, mapEntries, mapFiles, verbosity)
	if err != nil {
		return err
	}

	asJSON := display.ShouldOutputJSON(cmd)

	regen := func(path string) error {
		text, paths, err := summarize(fsys, path, pats, resolver, verbosity, asJSON)
		if err != nil {
			return err
		}
		if err := writeOutput(fsys, output, text); err != nil {
			return err
		}
		if output != "" && logger.ShouldOutput(verbosity, logger.OutputProgress) {
			statusInfo.Printfln("Summarized %d paths into %s", paths, output)
		}
		return nil
	}

	if err := regen(reportPath); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchReport(reportPath, regen)
}

// buildResolver merges block-map rules in order: config rules, config
// files, then CLI entries and CLI files. The resolver's stable
// longest-prefix sort keeps that order as the tie-break for
// equal-length prefixes.
func buildResolver(fsys afero.Fs, cfg *config.Config, entries, files []string, verbosity int) (*blockmap.Resolver, error) {
	var rules []blockmap.Rule

	add := func(entryList, fileList []string) error {
		for _, e := range entryList {
			rule, err := blockmap.ParseEntry(e)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		for _, f := range fileList {
			loaded, err := blockmap.LoadFile(fsys, f)
			if err != nil {
				return err
			}
			rules = append(rules, loaded...)
		}
		return nil
	}

	if err := add(cfg.BlockMap.Rules, cfg.BlockMap.Files); err != nil {
		return nil, err
	}
	if err := add(entries, files); err != nil {
		return nil, err
	}

	resolver := blockmap.NewResolver(rules)
	if logger.ShouldOutput(verbosity, logger.OutputRules) {
		for _, r := range resolver.Rules() {
			logger.Debugw("Block map rule", "prefix", r.Prefix, "name", r.Name)
		}
	}
	return resolver, nil
}

// summarize scans one report and renders it as summary text or JSON.
// The int result is the number of path blocks scanned.
func summarize(fsys afero.Fs, path string, pats *rpt.Patterns, resolver *blockmap.Resolver, verbosity int, asJSON bool) (string, int, error) {
	start := time.Now()

	rc, err := rpt.Open(fsys, path)
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()

	scanner := rpt.NewScannerWithPatterns(rc, pats)
	var recs []rpt.PathRecord
	for scanner.Scan() {
		rec := scanner.Record()
		if logger.ShouldLogTrace(verbosity) {
			logger.Debugw("Captured path block",
				"start", rec.StartInst,
				"end", rec.EndInst,
				"slack", rec.Slack,
			)
		}
		if logger.ShouldLogAll(verbosity) {
			logger.Debugw("Path record", "record", rec)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return "", 0, err
	}

	s := summary.Aggregate(recs, resolver)
	if logger.ShouldOutput(verbosity, logger.OutputProgress) {
		statusInfo.Printfln("Parsed %d paths (%d violated) from %s", s.TotalPaths, s.Violations, path)
	}
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		logger.Debugw("Report summarized",
			"file", path,
			"paths", s.TotalPaths,
			"elapsed", time.Since(start).Round(time.Millisecond).String(),
		)
	}

	if asJSON {
		data, err := display.MarshalJSON(s)
		if err != nil {
			return "", 0, err
		}
		return string(data) + "\n", len(recs), nil
	}
	return summary.Render(s), len(recs), nil
}

// watchReport blocks until interrupted, re-running regen on every
// change to the report file.
func watchReport(reportPath string, regen rpt.RegenCallback) error {
	watcher, err := rpt.NewReportWatcher(reportPath)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnChange(func(path string) error {
		if err := regen(path); err != nil {
			statusError.Printfln("Regeneration failed: %v", err)
			return err
		}
		return nil
	})
	watcher.Start()
	statusInfo.Printfln("Watching %s for changes (Ctrl-C to stop)", reportPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
