// Package rpt scans PrimeTime report_timing text into path records.
//
// The scanner is tailored to `report_timing -nosplit` output, where
// each path block carries single-line Startpoint/Endpoint headers, a
// Path Group line, a Point table with per-pin rows, a data arrival
// line and a closing slack line. Blocks without a parseable slack are
// dropped.
package rpt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/alchip/ptsum/internal/util"
)

// negZeroSlack replaces slack values the report printed with a minus
// sign but that parse to exactly zero ("-0.000"). Keeping them on the
// negative side preserves the report's own violation count.
const negZeroSlack = -1e-12

// scanner line buffer sizing. Flat netlists produce very long
// instance paths; -nosplit keeps each point row on one line.
const (
	initialLineBuf = 64 * 1024
	maxLineBuf     = 10 * 1024 * 1024
)

// blockPhase tracks progress through one path block.
type blockPhase int

const (
	phaseHeader blockPhase = iota // between Startpoint and the Point table
	phasePointTable
	phaseAfterArrival // past "data arrival time"
)

// Scanner reads path records from a timing report, one block at a
// time. Usage follows bufio.Scanner:
//
//	sc := rpt.NewScanner(r)
//	for sc.Scan() {
//		rec := sc.Record()
//		...
//	}
//	if err := sc.Err(); err != nil {
//		...
//	}
type Scanner struct {
	lines *bufio.Scanner
	pats  *Patterns

	cur         *PathRecord
	phase       blockPhase
	stages      int
	lastDataPin string
	slackSeen   bool

	rec   PathRecord
	count int
	done  bool
	err   error
}

// NewScanner returns a Scanner over r using the default patterns.
func NewScanner(r io.Reader) *Scanner {
	return NewScannerWithPatterns(r, DefaultPatterns())
}

// NewScannerWithPatterns returns a Scanner matching with pats.
func NewScannerWithPatterns(r io.Reader, pats *Patterns) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, initialLineBuf), maxLineBuf)
	return &Scanner{
		lines: lines,
		pats:  pats,
	}
}

// Scan advances to the next completed path record. It returns false
// at end of input or on a read error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.lines.Scan() {
		if rec, ok := s.processLine(s.lines.Text()); ok {
			s.emit(rec)
			return true
		}
	}
	s.done = true
	if err := s.lines.Err(); err != nil {
		s.err = err
		return false
	}
	// Input exhausted: flush the block still in progress.
	if rec, ok := s.finishBlock(); ok {
		s.emit(rec)
		return true
	}
	return false
}

func (s *Scanner) emit(rec PathRecord) {
	s.rec = rec
	s.count++
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() PathRecord {
	return s.rec
}

// Err returns the first read error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Count returns the number of records emitted so far.
func (s *Scanner) Count() int {
	return s.count
}

// processLine feeds one report line through the block state machine.
// A record is returned when a new Startpoint closes a completed block.
func (s *Scanner) processLine(line string) (PathRecord, bool) {
	if m := s.pats.startpoint.FindStringSubmatch(line); m != nil {
		rec, ok := s.finishBlock()
		inst := strings.TrimSpace(m[1])
		s.cur = &PathRecord{
			StartInst: inst,
			StartClk:  m[3],
			PathGroup: "*",
			StartPin:  inst + "/" + s.pats.clockPin,
		}
		s.phase = phaseHeader
		s.stages = 0
		s.lastDataPin = ""
		s.slackSeen = false
		return rec, ok
	}
	if s.cur == nil {
		// Preamble before the first path block.
		return PathRecord{}, false
	}

	if m := s.pats.endpoint.FindStringSubmatch(line); m != nil {
		s.cur.EndInst = strings.TrimSpace(m[1])
		s.cur.EndClk = m[3]
		return PathRecord{}, false
	}
	if m := s.pats.pathGroup.FindStringSubmatch(line); m != nil {
		s.cur.PathGroup = m[1]
		return PathRecord{}, false
	}
	if s.pats.pointTable.MatchString(line) {
		s.phase = phasePointTable
		return PathRecord{}, false
	}

	if s.phase == phasePointTable {
		s.pointTableLine(line)
		return PathRecord{}, false
	}

	if s.phase == phaseAfterArrival && s.cur.EndClkDelay == nil && s.pats.clkNetDelay.MatchString(line) {
		// First clock network delay after arrival is the capture clock.
		s.cur.EndClkDelay = s.pats.firstFloat(line)
		return PathRecord{}, false
	}

	if s.pats.slackLine.MatchString(line) {
		s.slackSeen = false
		if v, ok := s.parseSlackValue(line); ok {
			s.cur.Slack = v
			s.slackSeen = true
		}
	}
	return PathRecord{}, false
}

// pointTableLine handles one row of the Point table.
func (s *Scanner) pointTableLine(line string) {
	if s.pats.dataArrival.MatchString(line) {
		s.phase = phaseAfterArrival
		if s.cur.EndPin == "" && s.cur.EndInst != "" {
			// No data pin row seen; assume a plain D input.
			s.cur.EndPin = s.cur.EndInst + "/D"
		}
		return
	}
	if s.cur.StartClkDelay == nil && s.pats.clkNetDelay.MatchString(line) {
		s.cur.StartClkDelay = s.pats.firstFloat(line)
		return
	}
	m := s.pats.pointPin.FindStringSubmatch(line)
	if m == nil {
		return
	}
	pin := m[1]
	if strings.Contains(line, "(net)") {
		return
	}
	if s.pats.IsOutputPin(pin) && strings.Contains(line, s.pats.stageMarker) {
		s.stages++
	}
	if s.pats.IsDataPin(pin) {
		s.lastDataPin = pin
	}
}

// finishBlock closes the in-progress block. Blocks that never reached
// a parseable slack line are dropped.
func (s *Scanner) finishBlock() (PathRecord, bool) {
	if s.cur == nil {
		return PathRecord{}, false
	}
	cur := s.cur
	s.cur = nil
	if !s.slackSeen {
		return PathRecord{}, false
	}
	rec := *cur
	if s.stages > 0 {
		rec.StageCount = util.Ptr(s.stages)
	}
	if s.lastDataPin != "" {
		rec.EndPin = s.lastDataPin
	}
	return rec, true
}

// parseSlackValue extracts the trailing slack column. "-0.000" style
// values are nudged below zero so they count as violations.
func (s *Scanner) parseSlackValue(line string) (float64, bool) {
	tok := s.pats.lastFloatToken(line)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if v == 0 && strings.HasPrefix(tok, "-") {
		return negZeroSlack, true
	}
	return v, true
}

// ScanAll drains r and returns every completed path record in report
// order.
func ScanAll(r io.Reader) ([]PathRecord, error) {
	return ScanAllWithPatterns(r, DefaultPatterns())
}

// ScanAllWithPatterns drains r using pats.
func ScanAllWithPatterns(r io.Reader, pats *Patterns) ([]PathRecord, error) {
	sc := NewScannerWithPatterns(r, pats)
	var recs []PathRecord
	for sc.Scan() {
		recs = append(recs, sc.Record())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
