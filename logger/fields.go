package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across ptsum.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount      = "count"
	FieldTotalCount = "total_count"

	// Files and paths
	FieldFile = "file"
	FieldLine = "line"

	// Timing-report specific
	FieldReport     = "report"
	FieldPathGroup  = "path_group"
	FieldPaths      = "paths"
	FieldViolations = "violations"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Scanner struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewScanner() *Scanner {
//	    return &Scanner{
//	        logger: logger.ComponentLogger("rpt.scanner"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	fileLogger := logger.ChildLogger(baseLogger, logger.FieldFile, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
