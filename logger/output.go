package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Summary text only: results, errors with hints, final status
//	1 (-v)      - + Progress, input/output files, violation totals
//	2 (-vv)     - + Timing, config loaded, block-map rules applied
//	3 (-vvv)    - + Per-line scanner decisions (matched markers, phase changes)
//	4 (-vvvv)   - + Full path-record dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Summary text, command output
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress      // Progress indicators (e.g., "Parsed 1204 paths")
	OutputStartup       // Startup info, config summary
	OutputOperationInfo // High-level operation summaries

	// Level 2 (-vv) - Detailed
	OutputTiming // Operation timing (e.g., "scan took 42ms")
	OutputConfig // Config values loaded/applied
	OutputRules  // Block-map rules loaded and matched

	// Level 3 (-vvv) - Debug
	OutputScanTrace // Per-line scanner decisions

	// Level 4 (-vvvv) - Full dump
	OutputRecordDump // Full path-record contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:      VerbosityInfo,
	OutputStartup:       VerbosityInfo,
	OutputOperationInfo: VerbosityInfo,

	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,
	OutputRules:  VerbosityDebug,

	OutputScanTrace: VerbosityTrace,

	OutputRecordDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputUserStatus:    "status",
	OutputProgress:      "progress",
	OutputStartup:       "startup",
	OutputOperationInfo: "operation-info",
	OutputTiming:        "timing",
	OutputConfig:        "config",
	OutputRules:         "rules",
	OutputScanTrace:     "scan-trace",
	OutputRecordDump:    "record-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and status"
	case VerbosityDebug:
		return "above + timing, config, block-map rules"
	case VerbosityTrace:
		return "above + per-line scanner decisions"
	case VerbosityAll:
		return "full output including path-record dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
