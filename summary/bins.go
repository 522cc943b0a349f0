package summary

import (
	"fmt"
	"math"
)

// slackBin is one row of the violation range histogram. Regular bins
// count values in (lower, upper]; the final catch-all bin counts
// everything at or below its upper edge.
type slackBin struct {
	upper    float64
	lower    float64
	catchAll bool
	label    string
}

// skewBin is one row of the skew histogram, counting values in
// [lo, hi). The first and last bins are open-ended.
type skewBin struct {
	lo, hi float64
	openLo bool // no lower bound: v < hi
	openHi bool // no upper bound: v >= lo
	label  string
}

// Bin edges are dense near zero where most violations land, then
// widen out to -5ns.
var slackEdges = []float64{
	math.Copysign(0, -1), // printed as -0.000
	-0.002, -0.004, -0.006, -0.008, -0.010,
	-0.015, -0.020, -0.030, -0.040, -0.050,
	-0.060, -0.070, -0.080, -0.090, -0.100,
	-0.110, -0.120, -0.130, -0.140, -0.150,
	-0.160, -0.170, -0.180, -0.190, -0.200,
	-0.300, -0.400, -0.500, -1.000, -2.000,
	-5.000,
}

var slackHistBins = makeSlackBins()

func makeSlackBins() []slackBin {
	bins := make([]slackBin, 0, len(slackEdges))
	for i := 0; i < len(slackEdges)-1; i++ {
		a, b := slackEdges[i], slackEdges[i+1]
		// The negative-zero first edge prints as -0.000.
		label := fmt.Sprintf(" %.3fns < %.3fns", a, b)
		bins = append(bins, slackBin{upper: a, lower: b, label: label})
	}
	bins = append(bins, slackBin{upper: -5.000, catchAll: true, label: " -5.000ns <"})
	return bins
}

var skewHistBins = []skewBin{
	{hi: -5.0, openLo: true, label: "        < -5.0ns"},
	{lo: -5.0, hi: -2.0, label: " -5.0ns < -2.0ns"},
	{lo: -2.0, hi: -1.0, label: " -2.0ns < -1.0ns"},
	{lo: -1.0, hi: -0.5, label: " -1.0ns < -0.5ns"},
	{lo: -0.5, hi: -0.2, label: " -0.5ns < -0.2ns"},
	{lo: -0.2, hi: -0.1, label: " -0.2ns < -0.1ns"},
	{lo: -0.1, hi: 0.0, label: " -0.1ns <  0.0ns"},
	{lo: 0.0, hi: 0.1, label: "  0.0ns < +0.1ns"},
	{lo: 0.1, hi: 0.2, label: " +0.1ns < +0.2ns"},
	{lo: 0.2, hi: 0.5, label: " +0.2ns < +0.5ns"},
	{lo: 0.5, hi: 1.0, label: " +0.5ns < +1.0ns"},
	{lo: 1.0, hi: 2.0, label: " +1.0ns < +2.0ns"},
	{lo: 2.0, hi: 5.0, label: " +2.0ns < +5.0ns"},
	{lo: 5.0, openHi: true, label: " +5.0ns <"},
}

const unbinnedLabel = "(unbinned)"

// slackLabel bins a violating slack. The bins partition v < 0, so
// every violation lands somewhere.
func slackLabel(v float64) string {
	for _, b := range slackHistBins {
		if b.catchAll {
			if v <= b.upper {
				return b.label
			}
			continue
		}
		if v <= b.upper && v > b.lower {
			return b.label
		}
	}
	return unbinnedLabel
}

// skewLabel bins a clock skew value.
func skewLabel(v float64) string {
	for _, b := range skewHistBins {
		switch {
		case b.openLo:
			if v < b.hi {
				return b.label
			}
		case b.openHi:
			if v >= b.lo {
				return b.label
			}
		default:
			if v >= b.lo && v < b.hi {
				return b.label
			}
		}
	}
	return unbinnedLabel
}
