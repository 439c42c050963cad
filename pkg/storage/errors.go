package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrDuplicateLocation = errors.New("duplicate location")
	ErrDuplicateRoute    = errors.New("duplicate route")
	ErrDanglingRoute     = errors.New("route references unknown location")
	ErrSelfLoop          = errors.New("route connects a location to itself")
	ErrInvalidDanger     = errors.New("danger weight out of range")
	ErrInvalidKind       = errors.New("unknown location kind")
	ErrInvalidRouteType  = errors.New("unknown route type")
	ErrInvalidName       = errors.New("invalid location name")
)

// StorageError provides structured error information for graph construction
// and lookup.
type StorageError struct {
	Op      string // Operation that failed (e.g., "AddRoute", "GetLocation")
	Entity  string // Entity type ("location" or "route")
	Name    string // Location name, or "from->to" for routes
	Field   string // Offending field, if any
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" {
		if e.Field != "" {
			return fmt.Sprintf("%s %s %q (field %s): %v", e.Op, e.Entity, e.Name, e.Field, e.Cause)
		}
		if e.Context != "" {
			return fmt.Sprintf("%s %s %q (%s): %v", e.Op, e.Entity, e.Name, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *StorageError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building StorageErrors.
type ErrorBuilder struct {
	err StorageError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StorageError{Op: op}}
}

// Location sets the entity to "location" with the given name.
func (b *ErrorBuilder) Location(name string) *ErrorBuilder {
	b.err.Entity = "location"
	b.err.Name = name
	return b
}

// Route sets the entity to "route" between the given locations.
func (b *ErrorBuilder) Route(from, to string) *ErrorBuilder {
	b.err.Entity = "route"
	b.err.Name = from + "->" + to
	return b
}

// Field sets the offending field name.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed StorageError.
func (b *ErrorBuilder) Build() *StorageError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// LocationNotFoundError creates a location not found error.
func LocationNotFoundError(name string) error {
	return NewError("get").Location(name).Cause(ErrLocationNotFound).Err()
}

// RouteNotFoundError creates a route not found error.
func RouteNotFoundError(from, to string) error {
	return NewError("get").Route(from, to).Cause(ErrRouteNotFound).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLocationNotFound) || errors.Is(err, ErrRouteNotFound)
}
