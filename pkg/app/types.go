package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-blockidx/internal/types"
)

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeIndexNotFound    = "INDEX_NOT_FOUND"
	ErrCodeCorruptFormat    = "CORRUPT_FORMAT"
	ErrCodeCapacityExceeded = "CAPACITY_EXCEEDED"
	ErrCodeMalformedRecord  = "MALFORMED_RECORD"
	ErrCodeCanceled         = "CANCELED"
	ErrCodeIOFailure        = "IO_FAILURE"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError classifies err by the engine error it carries. A CommonError is
// returned unchanged.
func WrapError(message string, err error) error {
	if err == nil {
		return nil
	}

	var ce *CommonError
	if errors.As(err, &ce) {
		return err
	}

	return NewError(ErrorCode(err), message, err)
}

// ErrorCode maps an error to its application error code
func ErrorCode(err error) string {
	var ce *CommonError
	switch {
	case errors.As(err, &ce):
		return ce.Code
	case errors.Is(err, types.ErrAlreadyExists):
		return ErrCodeAlreadyExists
	case errors.Is(err, types.ErrNotFound):
		return ErrCodeIndexNotFound
	case errors.Is(err, types.ErrCorruptFormat):
		return ErrCodeCorruptFormat
	case errors.Is(err, types.ErrCapacityExceeded):
		return ErrCodeCapacityExceeded
	case errors.Is(err, types.ErrMalformedRecord):
		return ErrCodeMalformedRecord
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeCanceled
	default:
		return ErrCodeIOFailure
	}
}

// ParseUint64 parses a decimal key or value argument
func ParseUint64(name, text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, NewError(ErrCodeInvalidInput, name+" is required", nil)
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, NewError(ErrCodeInvalidInput,
			fmt.Sprintf("%s must be an unsigned 64-bit integer, got %q", name, text), nil)
	}
	return v, nil
}

// ValidateIndexPath checks the index file argument
func ValidateIndexPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return NewError(ErrCodeInvalidInput, "index file path is required", nil)
	}
	return nil
}

// ValidateOutputFormat checks an output format name
func ValidateOutputFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	default:
		return NewError(ErrCodeInvalidInput,
			fmt.Sprintf("unsupported output format %q (valid: table, json, yaml)", format), nil)
	}
}
