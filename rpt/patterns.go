package rpt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alchip/ptsum/errors"
)

// Default pin classification for typical stdcell libraries. Each entry
// is a regexp fragment matched against the last path component of a
// point-table pin.
var (
	DefaultOutputPins = []string{"Z", "ZN", "Y", `Q\d*`, `QB\d*`, "QN", "CO", "COUT", "S", "SO", "SUM"}
	DefaultDataPins   = []string{`D\d*`, `DIN\d*`, `DATA\d*`}
)

const (
	// DefaultStageMarker is the annotation PT prints on point rows
	// selected by report_timing -nosplit attribute columns.
	DefaultStageMarker = "&"

	// DefaultClockPin names the launch flop clock pin used to build
	// the startpoint pin path.
	DefaultClockPin = "CP"
)

// PatternSpec carries the configurable parts of report matching.
// Empty fields fall back to the defaults above.
type PatternSpec struct {
	OutputPins  []string
	DataPins    []string
	StageMarker string
	ClockPin    string
}

// Patterns bundles the compiled expressions the scanner matches
// against each report line. The structural expressions are fixed by
// the report_timing text format; only the pin classification varies
// between cell libraries.
type Patterns struct {
	startpoint  *regexp.Regexp
	endpoint    *regexp.Regexp
	pathGroup   *regexp.Regexp
	pointTable  *regexp.Regexp
	dataArrival *regexp.Regexp
	clkNetDelay *regexp.Regexp
	slackLine   *regexp.Regexp
	pointPin    *regexp.Regexp
	floatToken  *regexp.Regexp
	outputPin   *regexp.Regexp
	dataPin     *regexp.Regexp
	stageMarker string
	clockPin    string
}

var (
	reStartpoint  = regexp.MustCompile(`^\s*Startpoint:\s*(.+?)\s*\((.*clocked by\s+(\S+).*)\)`)
	reEndpoint    = regexp.MustCompile(`^\s*Endpoint:\s*(.+?)\s*\((.*clocked by\s+(\S+).*)\)`)
	rePathGroup   = regexp.MustCompile(`^\s*Path Group:\s*(\S+)`)
	rePointTable  = regexp.MustCompile(`^\s*Point\b`)
	reDataArrival = regexp.MustCompile(`^\s*data arrival time\b`)
	reClkNetDelay = regexp.MustCompile(`^\s*clock network delay \(propagated\)`)
	reSlackLine   = regexp.MustCompile(`^\s*slack\b`)
	rePointPin    = regexp.MustCompile(`^\s*(\S+?/[^\s]+)\s*\(`)
	reFloatToken  = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
)

// DefaultPatterns returns the stock pattern set. It never fails.
func DefaultPatterns() *Patterns {
	p, err := NewPatterns(PatternSpec{})
	if err != nil {
		panic(err)
	}
	return p
}

// NewPatterns compiles a pattern set from spec. Pin fragments come
// straight from user configuration, so compilation errors surface as
// invalid-config errors rather than panics.
func NewPatterns(spec PatternSpec) (*Patterns, error) {
	outputPins := spec.OutputPins
	if len(outputPins) == 0 {
		outputPins = DefaultOutputPins
	}
	dataPins := spec.DataPins
	if len(dataPins) == 0 {
		dataPins = DefaultDataPins
	}
	marker := spec.StageMarker
	if marker == "" {
		marker = DefaultStageMarker
	}
	clockPin := spec.ClockPin
	if clockPin == "" {
		clockPin = DefaultClockPin
	}

	outputRe, err := compilePinSuffix(outputPins)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	dataRe, err := compilePinSuffix(dataPins)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}

	return &Patterns{
		startpoint:  reStartpoint,
		endpoint:    reEndpoint,
		pathGroup:   rePathGroup,
		pointTable:  rePointTable,
		dataArrival: reDataArrival,
		clkNetDelay: reClkNetDelay,
		slackLine:   reSlackLine,
		pointPin:    rePointPin,
		floatToken:  reFloatToken,
		outputPin:   outputRe,
		dataPin:     dataRe,
		stageMarker: marker,
		clockPin:    clockPin,
	}, nil
}

// compilePinSuffix builds a suffix matcher for the final hierarchy
// component, e.g. ["Z", `Q\d*`] matches "u0/mux/Z" and "regs/q_reg/Q3".
func compilePinSuffix(fragments []string) (*regexp.Regexp, error) {
	expr := "/(?:" + strings.Join(fragments, "|") + ")$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "bad pin pattern %q", expr)
	}
	return re, nil
}

// IsOutputPin reports whether pin ends in a combinational output leaf.
func (p *Patterns) IsOutputPin(pin string) bool {
	return p.outputPin.MatchString(pin)
}

// IsDataPin reports whether pin ends in a flop data input leaf.
func (p *Patterns) IsDataPin(pin string) bool {
	return p.dataPin.MatchString(pin)
}

// firstFloat extracts the leading numeric column of a point row.
// Returns nil when the line carries no number.
func (p *Patterns) firstFloat(line string) *float64 {
	tok := p.floatToken.FindString(line)
	if tok == "" {
		return nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &v
}

// lastFloatToken returns the trailing numeric token of a line, which
// on a slack line is the slack column.
func (p *Patterns) lastFloatToken(line string) string {
	toks := p.floatToken.FindAllString(line, -1)
	if len(toks) == 0 {
		return ""
	}
	return toks[len(toks)-1]
}
