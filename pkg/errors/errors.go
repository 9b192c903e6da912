// Package errors provides structured error types for the charts pipeline.
//
// Every failure the pipeline can produce carries a machine-readable [Code],
// the pipeline [Stage] it belongs to and, where known, the chart kind that
// was being processed. This enables:
//   - Consistent handling across the CLI and library callers
//   - Attribution of opaque renderer failures to a stage and chart kind
//   - User-friendly messages without losing the underlying cause
//
// # Error Codes
//
// Codes are grouped by the stage that raises them:
//   - validate: MISSING_CHART_NAME, MISSING_JSON_SOURCE,
//     CONFLICTING_JSON_SOURCES, FILE_READ_FAILURE, JSON_PARSE_FAILURE
//   - dispatch: UNKNOWN_CHART_KIND, SCHEMA_MISMATCH
//   - render: VECTOR_RENDER_FAILURE, RASTER_CONVERSION_FAILURE, PERSIST_FAILURE
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownChartKind, "unknown chart kind %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownChartKind) {
//	    // Handle dispatch error
//	}
//
//	// Wrap opaque collaborator errors
//	err := errors.Wrap(errors.ErrCodeRasterConversion, cause, "raster conversion failed").WithChart("bar")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Stage names the pipeline stage an error was raised in.
type Stage string

// Pipeline stages.
const (
	StageCapture  Stage = "capture"
	StageValidate Stage = "validate"
	StageDispatch Stage = "dispatch"
	StageRender   Stage = "render"
)

// Error codes for the pipeline stages.
const (
	// Input errors
	ErrCodeMissingChartName       Code = "MISSING_CHART_NAME"
	ErrCodeMissingJSONSource      Code = "MISSING_JSON_SOURCE"
	ErrCodeConflictingJSONSources Code = "CONFLICTING_JSON_SOURCES"
	ErrCodeFileRead               Code = "FILE_READ_FAILURE"
	ErrCodeJSONParse              Code = "JSON_PARSE_FAILURE"

	// Dispatch errors
	ErrCodeUnknownChartKind Code = "UNKNOWN_CHART_KIND"
	ErrCodeSchemaMismatch   Code = "SCHEMA_MISMATCH"

	// Rendering and export errors
	ErrCodeVectorRender     Code = "VECTOR_RENDER_FAILURE"
	ErrCodeRasterConversion Code = "RASTER_CONVERSION_FAILURE"
	ErrCodePersist          Code = "PERSIST_FAILURE"

	// Invalid runner options (flag values rejected before the pipeline starts)
	ErrCodeInvalidOption Code = "INVALID_OPTION"
)

var codeStages = map[Code]Stage{
	ErrCodeMissingChartName:       StageValidate,
	ErrCodeMissingJSONSource:      StageValidate,
	ErrCodeConflictingJSONSources: StageValidate,
	ErrCodeFileRead:               StageValidate,
	ErrCodeJSONParse:              StageValidate,
	ErrCodeUnknownChartKind:       StageDispatch,
	ErrCodeSchemaMismatch:         StageDispatch,
	ErrCodeVectorRender:           StageRender,
	ErrCodeRasterConversion:       StageRender,
	ErrCodePersist:                StageRender,
	ErrCodeInvalidOption:          StageCapture,
}

// Stage returns the pipeline stage that raises errors with this code.
// Unknown codes report an empty stage.
func (c Code) Stage() Stage {
	return codeStages[c]
}

// Error is a structured error with a code, stage and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Stage   Stage  // Pipeline stage that failed
	Chart   string // Chart kind being processed (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Chart != "" {
		prefix += "(" + e.Chart + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithChart records the chart kind on e and returns it.
func (e *Error) WithChart(kind string) *Error {
	e.Chart = kind
	return e
}

// New creates a new Error with the given code and formatted message.
// The stage is derived from the code.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   code.Stage(),
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   code.Stage(),
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetStage extracts the failing stage from an error, if available.
func GetStage(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix or cause.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Describe returns the message shown to operators.
//
// Causes of validate and dispatch errors describe the operator's own input
// and are appended. Render-stage causes come from opaque collaborators and
// are left out; they remain available through Error and Unwrap.
func Describe(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil || e.Stage == StageRender {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}
