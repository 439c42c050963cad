package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPathFound means the end location is unreachable from the start
	ErrNoPathFound = errors.New("no path found")

	// ErrInvalidLocation means a location name is not in the graph
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidCount means a requested result count is not positive
	ErrInvalidCount = errors.New("invalid count")

	// ErrInvalidResolution means a community resolution is not positive
	ErrInvalidResolution = errors.New("invalid resolution")
)

// QueryError describes a failed query
type QueryError struct {
	Op       string // safest_path, strategic_locations, regional_groups, nearby
	Location string // offending location, if any
	From     string
	To       string
	Err      error
}

func (e *QueryError) Error() string {
	switch {
	case e.Location != "":
		return fmt.Sprintf("%s: %v: %q", e.Op, e.Err, e.Location)
	case e.From != "" || e.To != "":
		return fmt.Sprintf("%s: %v from %q to %q", e.Op, e.Err, e.From, e.To)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying sentinel
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsNoPath reports whether err means the locations are disconnected
func IsNoPath(err error) bool {
	return errors.Is(err, ErrNoPathFound)
}

// IsInvalidInput reports whether err was caused by a bad query argument
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrInvalidCount) ||
		errors.Is(err, ErrInvalidResolution)
}
