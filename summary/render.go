package summary

import (
	"fmt"
	"strings"
)

// Table separators. Column widths are fixed: downstream scrapers key
// on byte positions, so every width in this file is load-bearing.
const (
	sepHist = " ------------------------------  --------------------"
	sepPG   = " ------------------------------  --------------------  --------------------  --------------------"
	sepClk  = " --------------------  --------------------  --------------------  --------------------  --------------------"
	sepBlk  = " ------------------------------  ------------------------------  --------------------  --------------------  --------------------"
)

// Render produces the fixed-width text summary: violation and skew
// histograms, the three aggregate tables, the stage histogram and the
// per-startpoint detail listing. The result ends with one newline.
func Render(s *Summary) string {
	out := make([]string, 0, 128)

	out = append(out, "")
	out = append(out, " violation range                      # of violations")
	out = append(out, sepHist)
	for _, bc := range s.SlackHist {
		out = append(out, fmt.Sprintf("%-30s  %21d", bc.Label, bc.Count))
	}
	out = append(out, sepHist)
	out = append(out, fmt.Sprintf(" total%47d", s.Violations))
	out = append(out, sepHist)
	out = append(out, fmt.Sprintf(" WNS:%48.3f", s.WNS))
	out = append(out, fmt.Sprintf(" TNS:%48.3f", s.TNS))
	out = append(out, "")

	out = append(out, " original skew range                  # of violations")
	out = append(out, sepHist)
	for _, bc := range s.SkewHist {
		out = append(out, fmt.Sprintf("%-30s  %21d", bc.Label, bc.Count))
	}
	out = append(out, sepHist)
	out = append(out, fmt.Sprintf(" total%47d", s.Violations))
	out = append(out, "")

	out = append(out, " path group                           # of violations           worst slack           total slack")
	out = append(out, sepPG)
	for _, pg := range s.PathGroups {
		out = append(out, fmt.Sprintf(" %-30s  %20d  %20.3f  %20.3f", pg.Group, pg.Count, pg.WNS, pg.TNS))
	}
	out = append(out, sepPG)
	out = append(out, fmt.Sprintf(" *%-30s  %20d  %20.3f  %20.3f", "", s.Violations, s.WNS, s.TNS))
	out = append(out, "")

	out = append(out, " startpoint clock      endpoint clock             # of violations           worst slack           total slack")
	out = append(out, sepClk)
	for _, cp := range s.ClockPairs {
		out = append(out, fmt.Sprintf(" %-20s%-20s%20d%20.3f%20.3f", cp.StartClk, cp.EndClk, cp.Count, cp.WNS, cp.TNS))
	}
	out = append(out, sepClk)
	out = append(out, fmt.Sprintf(" %-21s%-20s%20d%20.3f%20.3f", "*", "*", s.Violations, s.WNS, s.TNS))
	out = append(out, "")

	out = append(out, " startpoint block                endpoint block                       # of violations           worst slack           total slack")
	out = append(out, sepBlk)
	for _, bp := range s.BlockPairs {
		out = append(out, fmt.Sprintf(" %-30s%-30s%20d%20.3f%20.3f", bp.StartBlock, bp.EndBlock, bp.Count, bp.WNS, bp.TNS))
	}
	out = append(out, sepBlk)
	out = append(out, fmt.Sprintf(" %-31s%-31s%20d%20.3f%20.3f", "*", "*", s.Violations, s.WNS, s.TNS))
	out = append(out, "")

	out = append(out, " stage count                          # of violations")
	out = append(out, sepHist)
	for _, sc := range s.StageHist {
		out = append(out, fmt.Sprintf("%31d%22d", sc.Stages, sc.Count))
	}
	out = append(out, sepHist)
	out = append(out, fmt.Sprintf(" total%47d", s.Violations))
	out = append(out, "")

	out = append(out, "<# of violations>\t<startpoint> <slack> (<stage_count>) (<clock>:<clock_network_delay>)")
	out = append(out, "\t\t\t<endpoint>   <slack> (<stage_count>) (<clock>:<clock_network_delay>) (<skew>)")
	out = append(out, "")

	for _, g := range s.Startpoints {
		out = append(out, fmt.Sprintf("%d\t%s %.3f (%d) (%s:%.3f)",
			g.Count, g.StartPin, g.WorstSlack, g.MaxStages, g.StartClk, g.StartClkDelay))
		for _, e := range g.Endpoints {
			out = append(out, fmt.Sprintf("\t%s %.3f (%d) (%s:%.3f) (%.3f)",
				e.EndPin, e.Slack, e.Stages, e.EndClk, e.EndClkDelay, e.Skew))
		}
	}

	return strings.Join(out, "\n") + "\n"
}
