package rpt

// PathRecord holds everything extracted from one path block of a
// report_timing report. A record is only emitted once its block has a
// parseable slack line; fields the block never mentioned stay at their
// zero value (or nil for the optional pointers).
type PathRecord struct {
	StartInst string `json:"start_inst"`
	EndInst   string `json:"end_inst"`
	StartClk  string `json:"start_clk"`
	EndClk    string `json:"end_clk"`
	PathGroup string `json:"path_group"`

	// Clock network delays from the launch and capture halves of the
	// point table, in ns. Nil when the report omits them.
	StartClkDelay *float64 `json:"start_clk_delay,omitempty"`
	EndClkDelay   *float64 `json:"end_clk_delay,omitempty"`

	Slack float64 `json:"slack"`

	// StageCount is the number of marked combinational output pins
	// along the data path. Nil when no stage markers were seen.
	StageCount *int `json:"stage_count,omitempty"`

	StartPin string `json:"start_pin"`
	EndPin   string `json:"end_pin,omitempty"`
}

// Skew returns capture minus launch clock network delay. The second
// return is false when either delay is missing from the report.
func (r *PathRecord) Skew() (float64, bool) {
	if r.StartClkDelay == nil || r.EndClkDelay == nil {
		return 0, false
	}
	return *r.EndClkDelay - *r.StartClkDelay, true
}

// Violated reports whether the path misses timing. Slack values the
// report printed as "-0.000" are nudged to a tiny negative number at
// parse time so they land on the violating side.
func (r *PathRecord) Violated() bool {
	return r.Slack < 0
}
