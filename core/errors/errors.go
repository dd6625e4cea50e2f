// Package errors provides the typed errors shared by the gedvault packages.
//
// Only I/O failures on the input or the vault are fatal for a conversion.
// Malformed GEDCOM lines and dangling references never surface as errors;
// they are counted by the parser and resolver instead.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a record or file was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrIO indicates a failed filesystem operation
	ErrIO = errors.New("i/o failure")
)

// NotFoundError reports a lookup for a record that the population does not hold.
type NotFoundError struct {
	Resource string // "individual", "family", "biography"
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents a configuration or argument validation error.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents a failed read or write of a named file.
type IOError struct {
	Operation string // "open", "read", "write", "create"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

// Unwrap exposes the underlying OS error so callers can still test for
// fs.ErrNotExist and friends.
func (e *IOError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIO}
	}
	return []error{ErrIO, e.Err}
}

// ParseError represents a value that could not be parsed, such as a GEDCOM
// date phrase or a gazetteer document.
type ParseError struct {
	Format  string // "GEDCOM date", "gazetteer XML", "manifest"
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
