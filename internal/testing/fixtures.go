// Package testing provides shared fixtures for ptsum tests.
// Import it under the name ptsumtest.
package testing

import (
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
)

// WriteReport writes content to path on fsys, creating parent
// directories as needed.
func WriteReport(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
}

// WriteGzReport writes content to path on fsys, gzip-compressed.
func WriteGzReport(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	f, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture %s: %v", path, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to compress fixture %s: %v", path, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish fixture %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close fixture %s: %v", path, err)
	}
}

// SampleReport is a small report_timing -nosplit excerpt covering the
// cases the scanner has to get right:
//
//	block 1: ordinary intra-clock violation, two marked stages
//	block 2: cross-clock violation, numbered data pin (D3)
//	block 3: met path (scanned, not a violation)
//	block 4: ideal clocks (no propagated delays), no Path Group
//	         line, no data pin row, slack printed as -0.000
//	block 5: truncated at end of file, no slack line
const SampleReport = `****************************************
Report : timing
        -path_type full_clock_expanded
        -delay_type max
        -nosplit
Design : soc_top
Version: T-2022.03-SP4
****************************************

  Startpoint: cpu0/lsu/data_q_reg_3_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Endpoint: cpu0/lsu/wb_buf_reg_7_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Path Group: CLK_CPU
  Path Type: max

  Point                                                   Incr       Path
  ---------------------------------------------------------------------------
  clock CLK_CPU (rise edge)                              0.000      0.000
  clock network delay (propagated)                       0.520      0.520
  cpu0/lsu/data_q_reg_3_/CP (DFQD4BWP)                   0.000      0.520 r
  cpu0/lsu/data_q_reg_3_/Q (DFQD4BWP)                  & 0.142      0.662 r
  cpu0/lsu/n_data_3 (net)                                0.000      0.662
  cpu0/lsu/u_wb_mux/A (MUX2D1BWP)                        0.031      0.693 r
  cpu0/lsu/u_wb_mux/Z (MUX2D1BWP)                      & 0.258      0.951 r
  cpu0/lsu/n_wb_data_7 (net)                             0.000      0.951
  cpu0/lsu/wb_buf_reg_7_/D (DFQD1BWP)                    0.112      1.063 f
  data arrival time                                                 1.063

  clock CLK_CPU (rise edge)                              0.600      0.600
  clock network delay (propagated)                       0.500      1.100
  clock reconvergence pessimism                          0.000      1.100
  cpu0/lsu/wb_buf_reg_7_/CP (DFQD1BWP)                              1.100 r
  library setup time                                    -0.047      1.053
  data required time                                                1.053
  ---------------------------------------------------------------------------
  data required time                                                1.053
  data arrival time                                                -1.063
  ---------------------------------------------------------------------------
  slack (VIOLATED)                                                 -0.010

  Startpoint: ddr_phy/byte0/dq_reg_2_ (rising edge-triggered flip-flop clocked by CLK_DDR)
  Endpoint: cpu0/mmu/tlb_tag_reg_5_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Path Group: CLK_CPU
  Path Type: max

  Point                                                   Incr       Path
  ---------------------------------------------------------------------------
  clock CLK_DDR (rise edge)                              0.000      0.000
  clock network delay (propagated)                       1.100      1.100
  ddr_phy/byte0/dq_reg_2_/CP (DFQD2BWP)                  0.000      1.100 r
  ddr_phy/byte0/dq_reg_2_/Q (DFQD2BWP)                   0.095      1.195 r
  ddr_phy/byte0/n_dq_sync_2 (net)                        0.000      1.195
  cpu0/mmu/u_sync_buf/A (BUFFD4BWP)                      0.040      1.235 r
  cpu0/mmu/u_sync_buf/Z (BUFFD4BWP)                    & 0.104      1.339 r
  cpu0/mmu/n_tlb_tag_5 (net)                             0.000      1.339
  cpu0/mmu/tlb_tag_reg_5_/D3 (DFQD1BWP)                  0.080      1.419 f
  data arrival time                                                 1.419

  clock CLK_CPU (rise edge)                              0.800      0.800
  clock network delay (propagated)                       0.480      1.280
  cpu0/mmu/tlb_tag_reg_5_/CP (DFQD1BWP)                             1.280 r
  library setup time                                    -0.013      1.267
  data required time                                                1.267
  ---------------------------------------------------------------------------
  data required time                                                1.267
  data arrival time                                                -1.419
  ---------------------------------------------------------------------------
  slack (VIOLATED)                                                 -0.152

  Startpoint: cpu0/ifu/pc_reg_0_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Endpoint: cpu0/ifu/fetch_buf_reg_1_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Path Group: CLK_CPU
  Path Type: max

  Point                                                   Incr       Path
  ---------------------------------------------------------------------------
  clock CLK_CPU (rise edge)                              0.000      0.000
  clock network delay (propagated)                       0.515      0.515
  cpu0/ifu/pc_reg_0_/CP (DFQD4BWP)                       0.000      0.515 r
  cpu0/ifu/pc_reg_0_/Q (DFQD4BWP)                      & 0.130      0.645 r
  cpu0/ifu/n_pc_0 (net)                                  0.000      0.645
  cpu0/ifu/u_fetch_buf/A (BUFFD2BWP)                     0.035      0.680 r
  cpu0/ifu/u_fetch_buf/Z (BUFFD2BWP)                   & 0.145      0.825 r
  cpu0/ifu/n_fetch_1 (net)                               0.000      0.825
  cpu0/ifu/fetch_buf_reg_1_/D (DFQD1BWP)                 0.115      0.940 f
  data arrival time                                                 0.940

  clock CLK_CPU (rise edge)                              0.600      0.600
  clock network delay (propagated)                       0.505      1.105
  cpu0/ifu/fetch_buf_reg_1_/CP (DFQD1BWP)                           1.105 r
  library setup time                                    -0.042      1.063
  data required time                                                1.063
  ---------------------------------------------------------------------------
  data required time                                                1.063
  data arrival time                                                -0.940
  ---------------------------------------------------------------------------
  slack (MET)                                                       0.123

  Startpoint: io_ring/gpio_out_reg_4_ (rising edge-triggered flip-flop clocked by CLK_IO)
  Endpoint: io_ring/pad_en_reg_2_ (rising edge-triggered flip-flop clocked by CLK_IO)
  Path Type: max

  Point                                                   Incr       Path
  ---------------------------------------------------------------------------
  clock CLK_IO (rise edge)                               0.000      0.000
  clock network delay (ideal)                            0.250      0.250
  io_ring/gpio_out_reg_4_/CP (DFQD1BWP)                  0.000      0.250 r
  io_ring/gpio_out_reg_4_/Q (DFQD1BWP)                   0.210      0.460 r
  io_ring/n_pad_en (net)                                 0.000      0.460
  io_ring/pad_en_reg_2_/SI (SDFQD1BWP)                   0.105      0.565 f
  data arrival time                                                 0.565

  clock CLK_IO (rise edge)                               0.400      0.400
  clock network delay (ideal)                            0.230      0.630
  io_ring/pad_en_reg_2_/CP (SDFQD1BWP)                              0.630 r
  library setup time                                    -0.065      0.565
  data required time                                                0.565
  ---------------------------------------------------------------------------
  data required time                                                0.565
  data arrival time                                                -0.565
  ---------------------------------------------------------------------------
  slack (VIOLATED)                                                 -0.000

  Startpoint: cpu0/div/quot_reg_9_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Endpoint: cpu0/div/rem_reg_9_ (rising edge-triggered flip-flop clocked by CLK_CPU)
  Path Group: CLK_CPU
  Path Type: max

  Point                                                   Incr       Path
  ---------------------------------------------------------------------------
  clock CLK_CPU (rise edge)                              0.000      0.000
  clock network delay (propagated)                       0.522      0.522
  cpu0/div/quot_reg_9_/CP (DFQD1BWP)                     0.000      0.522 r
  cpu0/div/quot_reg_9_/Q (DFQD1BWP)                    & 0.128      0.650 r
  data arrival time                                                 0.650
`
