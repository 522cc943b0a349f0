// Package quick produces coarse per-path-group totals from a PrimeTime
// timing report. It is the lightweight sibling of the full summarizer:
// no per-path records, just path counts and slack statistics folded per
// Path Group plus an ALL pseudo-group covering the whole report.
package quick

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alchip/ptsum/errors"
	"github.com/alchip/ptsum/internal/util"
)

const (
	// AllGroup keys the pseudo-group that accumulates every line
	// regardless of the current Path Group.
	AllGroup = "ALL"
	// UnspecifiedGroup is the group in effect before any Path Group
	// line, or after one with an empty name.
	UnspecifiedGroup = "UNSPECIFIED"
)

// Header lines are matched at column zero. PrimeTime indents these
// inside path blocks, so on a standard report the startpoint counter
// stays at zero and ResolvedPathCount falls back to the slack count.
var (
	reStartpoint = regexp.MustCompile(`^Startpoint:`)
	rePathGroup  = regexp.MustCompile(`^Path Group:\s*(.+)`)
	rePathType   = regexp.MustCompile(`^Path Type:\s*(.+)`)
	reSlack      = regexp.MustCompile(`\bslack\b[^-+\d]*([-+]?\d+(?:\.\d+)?)`)
)

const (
	initialLineBuf = 64 * 1024
	maxLineBuf     = 10 * 1024 * 1024
)

// GroupStats accumulates the per-group totals.
type GroupStats struct {
	PathCount int            `json:"path_count"`
	Slacks    []float64      `json:"slacks,omitempty"`
	PathTypes map[string]int `json:"path_types,omitempty"`
}

// RecordPath counts one startpoint line.
func (g *GroupStats) RecordPath() {
	g.PathCount++
}

// RecordSlack appends one parsed slack value.
func (g *GroupStats) RecordSlack(v float64) {
	g.Slacks = append(g.Slacks, v)
}

// RecordPathType counts one Path Type line.
func (g *GroupStats) RecordPathType(t string) {
	if g.PathTypes == nil {
		g.PathTypes = make(map[string]int)
	}
	g.PathTypes[t]++
}

// WNS returns the minimum slack seen. ok is false when no slack line
// was recorded.
func (g *GroupStats) WNS() (float64, bool) {
	if len(g.Slacks) == 0 {
		return 0, false
	}
	w := g.Slacks[0]
	for _, v := range g.Slacks[1:] {
		if v < w {
			w = v
		}
	}
	return w, true
}

// Best returns the maximum slack seen. ok is false when no slack line
// was recorded.
func (g *GroupStats) Best() (float64, bool) {
	if len(g.Slacks) == 0 {
		return 0, false
	}
	b := g.Slacks[0]
	for _, v := range g.Slacks[1:] {
		if v > b {
			b = v
		}
	}
	return b, true
}

// Violations counts negative slacks.
func (g *GroupStats) Violations() int {
	n := 0
	for _, v := range g.Slacks {
		if v < 0 {
			n++
		}
	}
	return n
}

// TNS sums the negative slacks. Zero when none were recorded.
func (g *GroupStats) TNS() float64 {
	t := 0.0
	for _, v := range g.Slacks {
		if v < 0 {
			t += v
		}
	}
	return t
}

// ResolvedPathCount prefers the startpoint count and falls back to the
// slack count when no startpoint matched.
func (g *GroupStats) ResolvedPathCount() int {
	if g.PathCount > 0 {
		return g.PathCount
	}
	return len(g.Slacks)
}

// Stats maps group names to their totals, including the ALL pseudo-group.
type Stats map[string]*GroupStats

func (s Stats) group(name string) *GroupStats {
	g, ok := s[name]
	if !ok {
		g = &GroupStats{}
		s[name] = g
	}
	return g
}

// Parse folds a timing report into per-group totals. Lines that match
// no pattern are ignored.
func Parse(r io.Reader) (Stats, error) {
	stats := Stats{AllGroup: &GroupStats{}}
	group := UnspecifiedGroup

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, initialLineBuf), maxLineBuf)
	for lines.Scan() {
		line := lines.Text()

		if m := rePathGroup.FindStringSubmatch(line); m != nil {
			group = strings.TrimSpace(m[1])
			if group == "" {
				group = UnspecifiedGroup
			}
			stats.group(group)
			continue
		}
		if m := rePathType.FindStringSubmatch(line); m != nil {
			t := strings.TrimSpace(m[1])
			stats[AllGroup].RecordPathType(t)
			stats.group(group).RecordPathType(t)
			continue
		}
		if reStartpoint.MatchString(line) {
			stats[AllGroup].RecordPath()
			stats.group(group).RecordPath()
			continue
		}
		if m := reSlack.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				stats[AllGroup].RecordSlack(v)
				stats.group(group).RecordSlack(v)
			}
		}
	}
	if err := lines.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read report")
	}
	return stats, nil
}

func formatFloat(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// Render formats the totals table. Output ends with a single newline.
func Render(stats Stats) string {
	overall := stats[AllGroup]
	if overall == nil {
		overall = &GroupStats{}
	}

	out := []string{
		"Summary",
		"=======",
		fmt.Sprintf("Total paths: %d", overall.ResolvedPathCount()),
		fmt.Sprintf("Worst slack (WNS): %s", formatFloat(overall.WNS())),
		fmt.Sprintf("Total negative slack (TNS): %.3f", overall.TNS()),
		fmt.Sprintf("Violations: %d", overall.Violations()),
		fmt.Sprintf("Best slack: %s", formatFloat(overall.Best())),
	}

	if len(overall.PathTypes) > 0 {
		out = append(out, "Path types:")
		types := make([]string, 0, len(overall.PathTypes))
		for t := range overall.PathTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			out = append(out, fmt.Sprintf("  - %s: %d", t, overall.PathTypes[t]))
		}
	}

	out = append(out,
		"",
		"Per Path Group",
		"--------------",
		fmt.Sprintf("%-24s %8s %10s %12s %11s %11s",
			"Group", "Paths", "WNS", "TNS", "Violations", "Best"),
		strings.Repeat("-", 80),
	)

	names := make([]string, 0, len(stats))
	for name := range stats {
		if name != AllGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		g := stats[name]
		out = append(out, fmt.Sprintf("%-24s %8d %10s %12s %11d %11s",
			util.Truncate(name, 24),
			g.ResolvedPathCount(),
			formatFloat(g.WNS()),
			fmt.Sprintf("%.3f", g.TNS()),
			g.Violations(),
			formatFloat(g.Best()),
		))
	}

	return strings.Join(out, "\n") + "\n"
}
