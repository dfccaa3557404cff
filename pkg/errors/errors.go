// Copyright (c) 2026, Promstack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import "fmt"

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeUnsupportedArchitecture indicates a CPU architecture fact with no
	// known artifact architecture tag.
	ErrCodeUnsupportedArchitecture ErrorCode = "UNSUPPORTED_ARCHITECTURE"
	// ErrCodeInvalidVersionFormat indicates a version string that is not a
	// three-component semantic version.
	ErrCodeInvalidVersionFormat ErrorCode = "INVALID_VERSION_FORMAT"
	// ErrCodeMergeType indicates a configuration merge input that is not a mapping.
	ErrCodeMergeType ErrorCode = "MERGE_TYPE_ERROR"
	// ErrCodeDuplicateAlertFile indicates two alert file names that collide
	// after filesystem name normalization.
	ErrCodeDuplicateAlertFile ErrorCode = "DUPLICATE_ALERT_FILE"
	// ErrCodeMissingRequiredParameter indicates a required provisioning
	// parameter that was not supplied.
	ErrCodeMissingRequiredParameter ErrorCode = "MISSING_REQUIRED_PARAMETER"
	// ErrCodeStageFailure indicates a provisioning stage that failed during
	// orchestration.
	ErrCodeStageFailure ErrorCode = "STAGE_FAILURE"
	// ErrCodeNotImplemented indicates a requested operation with no
	// implementation (e.g. package-manager based install).
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	// ErrCodeInvalidSpec indicates a provisioning spec that failed validation
	// for a reason other than a missing required parameter.
	ErrCodeInvalidSpec ErrorCode = "INVALID_SPEC"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err, or the empty string when err is
// not a StructuredError. Nested errors are unwrapped until the first
// structured one is found.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			return se.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// HasCode reports whether err carries the given structured error code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
