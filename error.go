// Copyright 2025 The Rivaas Authors
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

package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrReadFailed is returned when stored settings cannot be parsed.
	ErrReadFailed = errors.New("settings could not be read")

	// ErrWriteFailed is returned when settings cannot be serialized.
	ErrWriteFailed = errors.New("settings could not be written")

	// ErrNotFound is returned when a key holds no value.
	ErrNotFound = errors.New("key not found")
)

// Error represents a settings error with detailed context.
// It provides information about where the error occurred (source, field),
// what operation was being performed, and the underlying error.
type Error struct {
	Source    string // Where the error occurred (e.g., "source[0]", "dumper[1]", "binding")
	Field     string // The settings key involved (optional)
	Operation string // The operation being performed (e.g., "load", "read", "sync", "bind")
	Err       error  // The underlying error
}

// Error returns a formatted error message with context information.
// If Field is provided, it includes the field in the error message.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("settings error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}
	return fmt.Sprintf("settings error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error, allowing for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the provided context.
func NewError(source, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// NewFieldError creates a new Error about a particular settings key.
func NewFieldError(source, field, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Field:     field,
		Operation: operation,
		Err:       err,
	}
}
