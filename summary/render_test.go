package summary

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The golden files pin the exact byte layout of the summary text.
// Regenerate them only when the format itself is meant to change.

func TestRenderSampleGolden(t *testing.T) {
	got := Render(Aggregate(sampleRecords(t), nil))

	want, err := os.ReadFile("testdata/sample.summary.golden")
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("summary text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyGolden(t *testing.T) {
	got := Render(Aggregate(nil, nil))

	want, err := os.ReadFile("testdata/empty.summary.golden")
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("summary text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderShape(t *testing.T) {
	out := Render(Aggregate(sampleRecords(t), nil))

	assert.True(t, strings.HasPrefix(out, "\n"), "output starts with a blank line")
	assert.True(t, strings.HasSuffix(out, "\n"), "output ends with a newline")
	assert.False(t, strings.HasSuffix(out, "\n\n"), "no trailing blank line after the detail listing")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// Every histogram and total row is 53 bytes wide.
	var totals int
	for _, l := range lines {
		if strings.HasPrefix(l, " total") {
			assert.Len(t, l, 53, "total row %q", l)
			totals++
		}
	}
	assert.Equal(t, 3, totals, "slack, skew and stage tables each carry a total row")

	// Spot-check one row of each fixed-width table.
	assert.Contains(t, lines, " -0.010ns < -0.015ns                                1")
	assert.Contains(t, lines, " -1.0ns < -0.5ns                                    1")
	assert.Contains(t, lines, " CLK_CPU                                            2                -0.152                -0.162")
	assert.Contains(t, lines, " CLK_DDR             CLK_CPU                                1              -0.152              -0.152")
	assert.Contains(t, lines, " ddr_phy                       cpu0                                             1              -0.152              -0.152")
	assert.Contains(t, lines, "                              2                     1")
}

func TestRenderIdempotent(t *testing.T) {
	s := Aggregate(sampleRecords(t), nil)
	assert.Equal(t, Render(s), Render(s))
}

func TestRenderNegativeZeroCollapsed(t *testing.T) {
	out := Render(Aggregate(sampleRecords(t), nil))

	// The ideal-clock path has no delays; its detail line must show
	// plain zeros, not "-0.000".
	assert.Contains(t, out, "\tio_ring/pad_en_reg_2_/D -0.000 (0) (CLK_IO:0.000) (0.000)\n")
	assert.NotContains(t, out, "(CLK_IO:-0.000)")
}
