package rpt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ptsumtest "github.com/alchip/ptsum/internal/testing"
	"github.com/alchip/ptsum/internal/util"
)

func TestScanAllSampleReport(t *testing.T) {
	recs, err := ScanAll(strings.NewReader(ptsumtest.SampleReport))
	require.NoError(t, err)

	want := []PathRecord{
		{
			StartInst:     "cpu0/lsu/data_q_reg_3_",
			EndInst:       "cpu0/lsu/wb_buf_reg_7_",
			StartClk:      "CLK_CPU",
			EndClk:        "CLK_CPU",
			PathGroup:     "CLK_CPU",
			StartClkDelay: util.Ptr(0.520),
			EndClkDelay:   util.Ptr(0.500),
			Slack:         -0.010,
			StageCount:    util.Ptr(2),
			StartPin:      "cpu0/lsu/data_q_reg_3_/CP",
			EndPin:        "cpu0/lsu/wb_buf_reg_7_/D",
		},
		{
			StartInst:     "ddr_phy/byte0/dq_reg_2_",
			EndInst:       "cpu0/mmu/tlb_tag_reg_5_",
			StartClk:      "CLK_DDR",
			EndClk:        "CLK_CPU",
			PathGroup:     "CLK_CPU",
			StartClkDelay: util.Ptr(1.100),
			EndClkDelay:   util.Ptr(0.480),
			Slack:         -0.152,
			StageCount:    util.Ptr(1),
			StartPin:      "ddr_phy/byte0/dq_reg_2_/CP",
			EndPin:        "cpu0/mmu/tlb_tag_reg_5_/D3",
		},
		{
			StartInst:     "cpu0/ifu/pc_reg_0_",
			EndInst:       "cpu0/ifu/fetch_buf_reg_1_",
			StartClk:      "CLK_CPU",
			EndClk:        "CLK_CPU",
			PathGroup:     "CLK_CPU",
			StartClkDelay: util.Ptr(0.515),
			EndClkDelay:   util.Ptr(0.505),
			Slack:         0.123,
			StageCount:    util.Ptr(2),
			StartPin:      "cpu0/ifu/pc_reg_0_/CP",
			EndPin:        "cpu0/ifu/fetch_buf_reg_1_/D",
		},
		{
			StartInst: "io_ring/gpio_out_reg_4_",
			EndInst:   "io_ring/pad_en_reg_2_",
			StartClk:  "CLK_IO",
			EndClk:    "CLK_IO",
			PathGroup: "*",
			Slack:     -1e-12,
			StartPin:  "io_ring/gpio_out_reg_4_/CP",
			EndPin:    "io_ring/pad_en_reg_2_/D",
		},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerStreaming(t *testing.T) {
	sc := NewScanner(strings.NewReader(ptsumtest.SampleReport))

	var starts []string
	for sc.Scan() {
		starts = append(starts, sc.Record().StartInst)
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, []string{
		"cpu0/lsu/data_q_reg_3_",
		"ddr_phy/byte0/dq_reg_2_",
		"cpu0/ifu/pc_reg_0_",
		"io_ring/gpio_out_reg_4_",
	}, starts)
	assert.Equal(t, 4, sc.Count())

	// Scan past the end stays false.
	assert.False(t, sc.Scan())
}

func TestSkew(t *testing.T) {
	recs, err := ScanAll(strings.NewReader(ptsumtest.SampleReport))
	require.NoError(t, err)
	require.Len(t, recs, 4)

	sk, ok := recs[0].Skew()
	require.True(t, ok)
	assert.InDelta(t, -0.020, sk, 1e-9)

	sk, ok = recs[1].Skew()
	require.True(t, ok)
	assert.InDelta(t, -0.620, sk, 1e-9)

	// Ideal clocks carry no propagated delays.
	_, ok = recs[3].Skew()
	assert.False(t, ok)
}

func TestSlackCapture(t *testing.T) {
	tests := []struct {
		name   string
		report string
		slacks []float64
	}{
		{
			name: "slack in header phase is captured",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (VIOLATED) -0.333\n",
			slacks: []float64{-0.333},
		},
		{
			name: "slack inside point table is not captured",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  Endpoint: b/reg (clocked by CK1)\n" +
				"  Point\n" +
				"  slack (VIOLATED) -0.5\n",
			slacks: nil,
		},
		{
			name: "slack line without a number drops the block",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (MET)\n",
			slacks: nil,
		},
		{
			name: "later slack line without a number clears an earlier value",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (VIOLATED) -0.5\n" +
				"  slack (no number here)\n",
			slacks: nil,
		},
		{
			name: "last float token on the line wins",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (VIOLATED) -10.5 r2\n",
			slacks: []float64{2.0},
		},
		{
			name: "negative zero is nudged below zero",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (VIOLATED)   -0.000\n",
			slacks: []float64{-1e-12},
		},
		{
			name: "positive zero stays zero",
			report: "  Startpoint: a/reg (clocked by CK1)\n" +
				"  slack (MET)   0.000\n",
			slacks: []float64{0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ScanAll(strings.NewReader(tt.report))
			require.NoError(t, err)
			var got []float64
			for _, r := range recs {
				got = append(got, r.Slack)
			}
			assert.Equal(t, tt.slacks, got)
		})
	}
}

func TestClockDelayCapture(t *testing.T) {
	// Only the first propagated delay inside the point table counts as
	// the launch delay; delays before the table are ignored; the
	// capture delay is the first propagated delay after arrival.
	report := "  Startpoint: a/reg (clocked by CK1)\n" +
		"  Endpoint: b/reg (clocked by CK1)\n" +
		"  clock network delay (propagated)  0.700  0.700\n" +
		"  Point\n" +
		"  clock network delay (propagated)  0.100  0.100\n" +
		"  clock network delay (propagated)  0.900  0.900\n" +
		"  data arrival time 1.0\n" +
		"  clock network delay (propagated)  0.300  1.300\n" +
		"  clock network delay (propagated)  0.800  1.800\n" +
		"  slack (VIOLATED) -0.5\n"

	recs, err := ScanAll(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NotNil(t, recs[0].StartClkDelay)
	assert.Equal(t, 0.100, *recs[0].StartClkDelay)
	require.NotNil(t, recs[0].EndClkDelay)
	assert.Equal(t, 0.300, *recs[0].EndClkDelay)
}

func TestStageCounting(t *testing.T) {
	tests := []struct {
		name   string
		rows   string
		stages *int
	}{
		{
			name: "marker on output pins only",
			rows: "  a/u1/A (AN2D1BWP)   & 0.1 0.1\n" +
				"  a/n1 (net)          & 0.0 0.1\n" +
				"  a/u1/Z (AN2D1BWP)   & 0.1 0.2\n" +
				"  a/u2/Z (AN2D1BWP)     0.1 0.3\n",
			stages: util.Ptr(1),
		},
		{
			name:   "row without cell type is not a pin row",
			rows:   "  a/u1/Z & 0.1 0.2\n",
			stages: nil,
		},
		{
			name: "flop outputs count",
			rows: "  a/q_reg/Q (DFQD1BWP)  & 0.1 0.1\n" +
				"  a/q_reg_b/QN (DFQD1BWP)  & 0.1 0.2\n" +
				"  a/add/CO (FA1D1BWP)  & 0.1 0.3\n",
			stages: util.Ptr(3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := "  Startpoint: a/reg (clocked by CK1)\n" +
				"  Endpoint: b/reg (clocked by CK1)\n" +
				"  Point\n" +
				tt.rows +
				"  data arrival time 0.3\n" +
				"  slack (VIOLATED) -0.5\n"
			recs, err := ScanAll(strings.NewReader(report))
			require.NoError(t, err)
			require.Len(t, recs, 1)
			if diff := cmp.Diff(tt.stages, recs[0].StageCount); diff != "" {
				t.Errorf("stage count mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStartpointLineVariants(t *testing.T) {
	// A Startpoint line without the clocked-by clause is not a block
	// header. A clock name keeps unusual characters.
	report := "  Startpoint: plain_startpoint_no_parens\n" +
		"  Startpoint: a/b/reg_1_ (rising edge-triggered flip-flop clocked by CK_A')\n" +
		"  Endpoint: c/reg (clocked by CK1)\n" +
		"  slack (VIOLATED) -0.5\n"

	recs, err := ScanAll(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a/b/reg_1_", recs[0].StartInst)
	assert.Equal(t, "CK_A'", recs[0].StartClk)
	assert.Equal(t, "a/b/reg_1_/CP", recs[0].StartPin)
}

func TestEndpointPinFallbacks(t *testing.T) {
	// Without an Endpoint line there is nothing to fall back to.
	report := "  Startpoint: a/reg (clocked by CK1)\n" +
		"  Point\n" +
		"  data arrival time 1.0\n" +
		"  slack (VIOLATED) -0.25\n"

	recs, err := ScanAll(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].EndInst)
	assert.Empty(t, recs[0].EndPin)

	// With an Endpoint line but no data pin row, a plain D input is
	// assumed.
	report = "  Startpoint: a/reg (clocked by CK1)\n" +
		"  Endpoint: b/sync_reg (clocked by CK1)\n" +
		"  Point\n" +
		"  b/sync_reg/SI (SDFQD1BWP)  0.1 0.1\n" +
		"  data arrival time 0.1\n" +
		"  slack (VIOLATED) -0.25\n"

	recs, err = ScanAll(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "b/sync_reg/D", recs[0].EndPin)
}

func TestPreambleIgnored(t *testing.T) {
	report := "Report : timing\n" +
		"Design : soc_top\n" +
		"slack (VIOLATED) -9.9\n" + // before any startpoint
		"  Startpoint: a/reg (clocked by CK1)\n" +
		"  slack (VIOLATED) -0.5\n"

	recs, err := ScanAll(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, -0.5, recs[0].Slack)
}

func TestViolated(t *testing.T) {
	assert.True(t, (&PathRecord{Slack: -0.001}).Violated())
	assert.True(t, (&PathRecord{Slack: -1e-12}).Violated())
	assert.False(t, (&PathRecord{Slack: 0}).Violated())
	assert.False(t, (&PathRecord{Slack: 0.5}).Violated())
}
