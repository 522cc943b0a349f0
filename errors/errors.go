// Package errors provides error handling for ptsum.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrMalformedRule) {
//	    // handle bad block-map entry
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across ptsum.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedRule indicates a block-map rule that could not be parsed,
	// either a "prefix=name" command-line entry or a map-file line
	ErrMalformedRule = New("malformed block-map rule")

	// ErrInvalidConfig indicates the loaded configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsMalformedRuleError checks if an error is or wraps ErrMalformedRule
func IsMalformedRuleError(err error) bool {
	return err != nil && Is(err, ErrMalformedRule)
}

// NewMalformedRuleError creates a malformed-rule error naming the offending text
func NewMalformedRuleError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedRule, Newf(format, args...).Error())
}
