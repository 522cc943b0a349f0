package rpt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchip/ptsum/errors"
)

func TestDefaultPinClasses(t *testing.T) {
	p := DefaultPatterns()

	outputs := []string{
		"u0/mux/Z", "u0/nand/ZN", "a/b/c/Y", "regs/q_reg/Q", "regs/q_reg/Q3",
		"regs/q_reg/QB", "regs/q_reg/QB1", "regs/q_reg/QN", "add/CO", "add/COUT",
		"add/S", "scan/SO", "add/SUM",
	}
	for _, pin := range outputs {
		assert.True(t, p.IsOutputPin(pin), "expected output pin: %s", pin)
	}

	notOutputs := []string{
		"u0/mux/A", "reg/CP", "reg/D", "u0/Zx", "u0/QA", "Z", "u0/SUMX",
	}
	for _, pin := range notOutputs {
		assert.False(t, p.IsOutputPin(pin), "not an output pin: %s", pin)
	}

	dataPins := []string{"reg/D", "reg/D0", "reg/D12", "reg/DIN", "reg/DIN3", "reg/DATA", "reg/DATA7"}
	for _, pin := range dataPins {
		assert.True(t, p.IsDataPin(pin), "expected data pin: %s", pin)
	}

	notDataPins := []string{"reg/Q", "reg/DX", "reg/SI", "reg/CP", "D"}
	for _, pin := range notDataPins {
		assert.False(t, p.IsDataPin(pin), "not a data pin: %s", pin)
	}
}

func TestCustomPatterns(t *testing.T) {
	p, err := NewPatterns(PatternSpec{
		OutputPins:  []string{"OUT"},
		DataPins:    []string{"IN"},
		StageMarker: "*",
		ClockPin:    "CK",
	})
	require.NoError(t, err)

	assert.True(t, p.IsOutputPin("u/buf/OUT"))
	assert.False(t, p.IsOutputPin("u/buf/Z"))
	assert.True(t, p.IsDataPin("u/reg/IN"))
	assert.False(t, p.IsDataPin("u/reg/D"))

	report := "  Startpoint: a/reg (clocked by CK1)\n" +
		"  Endpoint: b/reg (clocked by CK1)\n" +
		"  Point\n" +
		"  a/u1/OUT (CELL)  * 0.1 0.1\n" +
		"  a/u2/Z (CELL)    & 0.1 0.2\n" +
		"  b/reg/IN (CELL)    0.1 0.3\n" +
		"  data arrival time 0.3\n" +
		"  slack (VIOLATED) -0.5\n"

	recs, err := ScanAllWithPatterns(strings.NewReader(report), p)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NotNil(t, recs[0].StageCount)
	assert.Equal(t, 1, *recs[0].StageCount)
	assert.Equal(t, "b/reg/IN", recs[0].EndPin)
	assert.Equal(t, "a/reg/CK", recs[0].StartPin)
}

func TestEmptySpecUsesDefaults(t *testing.T) {
	p, err := NewPatterns(PatternSpec{})
	require.NoError(t, err)
	assert.True(t, p.IsOutputPin("u/q_reg/Q"))
	assert.True(t, p.IsDataPin("u/q_reg/D"))
}

func TestBadPinFragment(t *testing.T) {
	_, err := NewPatterns(PatternSpec{OutputPins: []string{"Q[unclosed"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = NewPatterns(PatternSpec{DataPins: []string{"(?P<bad"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
