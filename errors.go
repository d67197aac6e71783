package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a failure. Fatal codes abort the run before any output is
// committed; AssetUnavailable and ConfigMalformed are reported as warnings.
type Code string

const (
	ErrCodeInputNotFound     Code = "INPUT_NOT_FOUND"
	ErrCodeSheetMissing      Code = "SHEET_MISSING"
	ErrCodeSheetUnreadable   Code = "SHEET_UNREADABLE"
	ErrCodeColumnNotInferred Code = "COLUMN_NOT_INFERRED"
	ErrCodeAssetUnavailable  Code = "ASSET_UNAVAILABLE"
	ErrCodeConfigMalformed   Code = "CONFIG_MALFORMED"
	ErrCodeOutputWrite       Code = "OUTPUT_WRITE"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error around an existing cause.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Fatal reports whether err should abort the run.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !IsCode(err, ErrCodeAssetUnavailable) && !IsCode(err, ErrCodeConfigMalformed)
}

// Warnings accumulates non-fatal problems surfaced alongside a successful run.
type Warnings []error

// Add appends the non-nil errors.
func (w *Warnings) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			*w = append(*w, err)
		}
	}
}

// Has reports whether any warning carries code.
func (w Warnings) Has(code Code) bool {
	for _, err := range w {
		if IsCode(err, code) {
			return true
		}
	}
	return false
}

func (w Warnings) String() string {
	msgs := make([]string, len(w))
	for i, err := range w {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
