// Package summary folds path records into the violation summary: the
// slack and skew histograms, per-group tables and the per-startpoint
// detail listing, plus the fixed-width text rendering.
package summary

import (
	"sort"

	"github.com/alchip/ptsum/blockmap"
	"github.com/alchip/ptsum/internal/util"
	"github.com/alchip/ptsum/rpt"
)

// BinCount is one histogram row. Rows appear in bin order, including
// empty ones, so the slice mirrors the rendered table.
type BinCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PathGroupStats aggregates violations of one PT path group.
type PathGroupStats struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	WNS   float64 `json:"wns"`
	TNS   float64 `json:"tns"`
}

// ClockPairStats aggregates violations per launch/capture clock pair.
type ClockPairStats struct {
	StartClk string  `json:"start_clk"`
	EndClk   string  `json:"end_clk"`
	Count    int     `json:"count"`
	WNS      float64 `json:"wns"`
	TNS      float64 `json:"tns"`
}

// BlockPairStats aggregates violations per start/end block pair.
type BlockPairStats struct {
	StartBlock string  `json:"start_block"`
	EndBlock   string  `json:"end_block"`
	Count      int     `json:"count"`
	WNS        float64 `json:"wns"`
	TNS        float64 `json:"tns"`
}

// StageCount is one row of the stage count histogram. Records whose
// blocks carried no stage markers are not counted here.
type StageCount struct {
	Stages int `json:"stages"`
	Count  int `json:"count"`
}

// Endpoint is one violating path in the detail listing, render-ready:
// values the report did not provide appear as zero.
type Endpoint struct {
	EndPin      string  `json:"end_pin"`
	Slack       float64 `json:"slack"`
	Stages      int     `json:"stages"`
	EndClk      string  `json:"end_clk"`
	EndClkDelay float64 `json:"end_clk_delay"`
	Skew        float64 `json:"skew"`
}

// StartGroup collects the violations launched from one startpoint
// pin. Groups are ordered most violations first, then worst slack.
type StartGroup struct {
	StartPin      string     `json:"start_pin"`
	StartClk      string     `json:"start_clk"`
	StartClkDelay float64    `json:"start_clk_delay"`
	Count         int        `json:"count"`
	WorstSlack    float64    `json:"worst_slack"`
	MaxStages     int        `json:"max_stages"`
	Endpoints     []Endpoint `json:"endpoints"`
}

// Summary is the aggregate over one report.
type Summary struct {
	TotalPaths  int              `json:"total_paths"`
	Violations  int              `json:"violations"`
	WNS         float64          `json:"wns"`
	TNS         float64          `json:"tns"`
	SlackHist   []BinCount       `json:"slack_histogram"`
	SkewHist    []BinCount       `json:"skew_histogram"`
	PathGroups  []PathGroupStats `json:"path_groups"`
	ClockPairs  []ClockPairStats `json:"clock_pairs"`
	BlockPairs  []BlockPairStats `json:"block_pairs"`
	StageHist   []StageCount     `json:"stage_histogram"`
	Startpoints []StartGroup     `json:"startpoints"`
}

// Aggregate folds records into a Summary. Only violating records
// contribute; resolver names the blocks of the block table and may be
// nil for first-token naming.
func Aggregate(recs []rpt.PathRecord, resolver *blockmap.Resolver) *Summary {
	if resolver == nil {
		resolver = blockmap.NewResolver(nil)
	}

	var neg []rpt.PathRecord
	for _, p := range recs {
		if p.Violated() {
			neg = append(neg, p)
		}
	}

	s := &Summary{
		TotalPaths: len(recs),
		Violations: len(neg),
	}

	// WNS/TNS accumulate in report order.
	for i, p := range neg {
		if i == 0 || p.Slack < s.WNS {
			s.WNS = p.Slack
		}
		s.TNS += p.Slack
	}

	s.SlackHist = slackHistogram(neg)
	s.SkewHist = skewHistogram(neg)
	s.PathGroups = pathGroupTable(neg)
	s.ClockPairs = clockPairTable(neg)
	s.BlockPairs = blockPairTable(neg, resolver)
	s.StageHist = stageHistogram(neg)
	s.Startpoints = startGroups(neg)

	return s
}

func slackHistogram(neg []rpt.PathRecord) []BinCount {
	counts := make(map[string]int)
	for _, p := range neg {
		counts[slackLabel(p.Slack)]++
	}
	hist := make([]BinCount, 0, len(slackHistBins))
	for _, b := range slackHistBins {
		hist = append(hist, BinCount{Label: b.label, Count: counts[b.label]})
	}
	return hist
}

func skewHistogram(neg []rpt.PathRecord) []BinCount {
	counts := make(map[string]int)
	for _, p := range neg {
		if sk, ok := p.Skew(); ok {
			counts[skewLabel(sk)]++
		}
	}
	hist := make([]BinCount, 0, len(skewHistBins))
	for _, b := range skewHistBins {
		hist = append(hist, BinCount{Label: b.label, Count: counts[b.label]})
	}
	return hist
}

func pathGroupTable(neg []rpt.PathRecord) []PathGroupStats {
	byGroup := make(map[string]*PathGroupStats)
	for _, p := range neg {
		st, ok := byGroup[p.PathGroup]
		if !ok {
			st = &PathGroupStats{Group: p.PathGroup, WNS: p.Slack}
			byGroup[p.PathGroup] = st
		}
		st.Count++
		st.TNS += p.Slack
		if p.Slack < st.WNS {
			st.WNS = p.Slack
		}
	}
	table := make([]PathGroupStats, 0, len(byGroup))
	for _, st := range byGroup {
		table = append(table, *st)
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].Group < table[j].Group
	})
	return table
}

func clockPairTable(neg []rpt.PathRecord) []ClockPairStats {
	type key struct{ start, end string }
	byPair := make(map[key]*ClockPairStats)
	for _, p := range neg {
		k := key{p.StartClk, p.EndClk}
		st, ok := byPair[k]
		if !ok {
			st = &ClockPairStats{StartClk: k.start, EndClk: k.end, WNS: p.Slack}
			byPair[k] = st
		}
		st.Count++
		st.TNS += p.Slack
		if p.Slack < st.WNS {
			st.WNS = p.Slack
		}
	}
	table := make([]ClockPairStats, 0, len(byPair))
	for _, st := range byPair {
		table = append(table, *st)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].StartClk != table[j].StartClk {
			return table[i].StartClk < table[j].StartClk
		}
		return table[i].EndClk < table[j].EndClk
	})
	return table
}

func blockPairTable(neg []rpt.PathRecord, resolver *blockmap.Resolver) []BlockPairStats {
	type key struct{ start, end string }
	byPair := make(map[key]*BlockPairStats)
	for _, p := range neg {
		k := key{resolver.Resolve(p.StartInst), resolver.Resolve(p.EndInst)}
		st, ok := byPair[k]
		if !ok {
			st = &BlockPairStats{StartBlock: k.start, EndBlock: k.end, WNS: p.Slack}
			byPair[k] = st
		}
		st.Count++
		st.TNS += p.Slack
		if p.Slack < st.WNS {
			st.WNS = p.Slack
		}
	}
	table := make([]BlockPairStats, 0, len(byPair))
	for _, st := range byPair {
		table = append(table, *st)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].StartBlock != table[j].StartBlock {
			return table[i].StartBlock < table[j].StartBlock
		}
		return table[i].EndBlock < table[j].EndBlock
	})
	return table
}

func stageHistogram(neg []rpt.PathRecord) []StageCount {
	counts := make(map[int]int)
	for _, p := range neg {
		if p.StageCount != nil {
			counts[*p.StageCount]++
		}
	}
	stages := make([]int, 0, len(counts))
	for st := range counts {
		stages = append(stages, st)
	}
	sort.Ints(stages)
	hist := make([]StageCount, 0, len(stages))
	for _, st := range stages {
		hist = append(hist, StageCount{Stages: st, Count: counts[st]})
	}
	return hist
}

func startGroups(neg []rpt.PathRecord) []StartGroup {
	type accum struct {
		pin  string
		recs []rpt.PathRecord
	}
	byStart := make(map[string]*accum)
	var order []*accum
	for _, p := range neg {
		pin := p.StartPin
		if pin == "" {
			pin = p.StartInst + "/CP"
		}
		acc, ok := byStart[pin]
		if !ok {
			acc = &accum{pin: pin}
			byStart[pin] = acc
			order = append(order, acc)
		}
		acc.recs = append(acc.recs, p)
	}

	groups := make([]StartGroup, 0, len(order))
	for _, acc := range order {
		g := StartGroup{
			StartPin:   acc.pin,
			StartClk:   acc.recs[0].StartClk,
			Count:      len(acc.recs),
			WorstSlack: acc.recs[0].Slack,
		}
		scdSet := false
		for _, p := range acc.recs {
			if p.Slack < g.WorstSlack {
				g.WorstSlack = p.Slack
			}
			if stc := util.Deref(p.StageCount, 0); stc > g.MaxStages {
				g.MaxStages = stc
			}
			if !scdSet && p.StartClkDelay != nil {
				g.StartClkDelay = *p.StartClkDelay
				scdSet = true
			}
			g.Endpoints = append(g.Endpoints, endpointOf(p))
		}
		// Worst endpoints first, ties keeping report order.
		sort.SliceStable(g.Endpoints, func(i, j int) bool {
			return g.Endpoints[i].Slack < g.Endpoints[j].Slack
		})
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].WorstSlack < groups[j].WorstSlack
	})
	return groups
}

func endpointOf(p rpt.PathRecord) Endpoint {
	pin := p.EndPin
	if pin == "" {
		pin = p.EndInst + "/D"
	}
	e := Endpoint{
		EndPin:      pin,
		Slack:       p.Slack,
		Stages:      util.Deref(p.StageCount, 0),
		EndClk:      p.EndClk,
		EndClkDelay: posZero(util.Deref(p.EndClkDelay, 0)),
	}
	if sk, ok := p.Skew(); ok {
		e.Skew = posZero(sk)
	}
	return e
}

// posZero collapses negative zero so it renders as "0.000".
func posZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
