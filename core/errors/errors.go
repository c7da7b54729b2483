// Package errors provides standardized error types and helpers for the Blueprint codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicate indicates a duplicate identifier or signature among siblings
	ErrDuplicate = errors.New("duplicate")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
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

// DuplicateError reports a duplicate guid or content signature within a
// sibling collection. Value holds the offending guid or signature.
type DuplicateError struct {
	Collection string // Collection being constructed (e.g., "project.targets")
	Kind       string // What is duplicated: "guid" or "signature"
	Value      string // The duplicated value
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s in %s: %s", e.Kind, e.Collection, e.Value)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "body", "manifest", "cache entry")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
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

// EncodeError represents a failure in the canonical encoder or an I/O
// failure while writing an assembled document.
type EncodeError struct {
	Stage string // Stage that failed (e.g., "canonical marshal", "write document")
	Path  string // File path, if applicable
	Err   error  // Underlying error
}

func (e *EncodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("encoding failed during %s at %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("encoding failed during %s: %v", e.Stage, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewDuplicate creates a DuplicateError
func NewDuplicate(collection, kind, value string) *DuplicateError {
	return &DuplicateError{
		Collection: collection,
		Kind:       kind,
		Value:      value,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewEncode creates an EncodeError
func NewEncode(stage, path string, err error) *EncodeError {
	return &EncodeError{
		Stage: stage,
		Path:  path,
		Err:   err,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
