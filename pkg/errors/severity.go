// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// EstimateError is a structured error with context.
type EstimateError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Field       string   `json:"field,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *EstimateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (field: %s)", e.Severity, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// New builds a recoverable error-severity EstimateError.
func New(code, message string) *EstimateError {
	return &EstimateError{Code: code, Message: message, Severity: SeverityError, Recoverable: true}
}

// Newf is New with a formatted message.
func Newf(code, format string, args ...any) *EstimateError {
	return New(code, fmt.Sprintf(format, args...))
}

// WithField attaches the offending input field.
func (e *EstimateError) WithField(field string) *EstimateError {
	e.Field = field
	return e
}

// Error codes
const (
	ErrCodeInvalidCoatCount = "INVALID_COAT_COUNT"
	ErrCodeInvalidRates     = "INVALID_PRODUCTION_RATES"
	ErrCodeUnknownVehicle   = "UNKNOWN_VEHICLE"
	ErrCodeUnknownParameter = "UNKNOWN_PARAMETER"
	ErrCodeUnknownPricing   = "UNKNOWN_PRICING_TYPE"
	ErrCodeScenarioNotFound = "SCENARIO_NOT_FOUND"
	ErrCodeRunInFlight      = "RUN_IN_FLIGHT"
	ErrCodeArchiveFailed    = "ARCHIVE_FAILED"
)
