package logger

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Gruvbox Dark color palette (warm, muted, easy on eyes)
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorFg     = "\x1b[38;5;223m" // Soft cream (#ebdbb2)
	colorAqua   = "\x1b[38;5;108m" // Muted cyan-green (#8ec07c)
	colorOrange = "\x1b[38;5;208m" // Warm orange (#fe8019)
	colorYellow = "\x1b[38;5;214m" // Soft yellow (#fabd2f)
	colorGreen  = "\x1b[38;5;142m" // Muted green (#b8bb26)
	colorBlue   = "\x1b[38;5;109m" // Soft blue (#83a598)
	colorPurple = "\x1b[38;5;175m" // Muted purple (#d3869b)
	colorRed    = "\x1b[38;5;167m" // Warm red (#fb4934)

	colorRedBg    = "\x1b[48;5;88m" // Dark red background
	colorYellowBg = "\x1b[48;5;58m" // Dark yellow background
)

// colorComponent picks a stable color per component name for visual grouping
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// colorMessage applies a semantic color based on what the message is about
func colorMessage(msg string) string {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "scan") || strings.Contains(lower, "parsed") ||
		strings.Contains(lower, "summar") || strings.Contains(lower, "violation") {
		return colorGreen
	}
	if strings.Contains(lower, "wrote") || strings.Contains(lower, "output") ||
		strings.Contains(lower, "watch") {
		return colorBlue
	}
	if strings.Contains(lower, "starting") || strings.Contains(lower, "config") ||
		strings.Contains(lower, "loaded") {
		return colorOrange
	}
	return colorFg
}

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  r.scanner  Parsed report  timing.rpt (1204 paths, 37 violations)"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	// Create a base JSON encoder for field serialization (internal use only)
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	// Time
	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel && ent.Level != zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	// Message
	final.AppendString("  ")
	final.AppendString(colorMessage(ent.Message))
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	// Fields: special-case the common ones, never drop the rest
	if len(fields) > 0 {
		if rendered := renderFields(fields); rendered != "" {
			final.AppendString("  ")
			final.AppendString(rendered)
		}
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: scanner -> scanner, rpt.scanner -> r.scanner
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type,
		zapcore.UintptrType, zapcore.DurationType:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		if field.Integer == 1 {
			return "true"
		}
		return "false"
	case zapcore.Float64Type:
		return fmt.Sprintf("%g", math.Float64frombits(uint64(field.Integer)))
	case zapcore.Float32Type:
		return fmt.Sprintf("%g", math.Float32frombits(uint32(field.Integer)))
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	if field.String != "" {
		return field.String
	}
	return fmt.Sprintf("%d", field.Integer)
}

// renderFields formats structured fields for the console line.
//
// Common ptsum fields get compact special formatting:
//
//	{"file": "timing.rpt", "paths": 1204, "violations": 37}
//	-> "timing.rpt (1204 paths, 37 violations)"
//
// Every other field renders as key=value. Fields are never silently dropped.
func renderFields(fields []zapcore.Field) string {
	var values []string
	var pathCount, violationCount string

	for _, field := range fields {
		switch field.Key {
		case FieldFile, FieldReport, "output":
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorBlue+val+colorReset)
			}
		case FieldPaths:
			pathCount = getFieldValue(field)
		case FieldViolations:
			violationCount = getFieldValue(field)
		case FieldDurationMS:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorPurple+val+colorReset+"ms")
			}
		default:
			val := getFieldValue(field)
			if field.Key != "" {
				values = append(values, colorFg+field.Key+"="+val+colorReset)
			}
		}
	}

	if pathCount != "" && violationCount != "" {
		values = append(values, colorFg+"("+colorPurple+pathCount+colorReset+colorFg+" paths, "+colorPurple+violationCount+colorReset+colorFg+" violations)"+colorReset)
	} else if pathCount != "" {
		values = append(values, colorFg+"("+colorPurple+pathCount+colorReset+colorFg+" paths)"+colorReset)
	} else if violationCount != "" {
		values = append(values, colorFg+"("+colorPurple+violationCount+colorReset+colorFg+" violations)"+colorReset)
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}
