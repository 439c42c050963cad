package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorageError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StorageError
		expected string
	}{
		{
			name: "with name",
			err: &StorageError{
				Op:     "AddLocation",
				Entity: "location",
				Name:   "Bree",
				Cause:  fmt.Errorf("duplicate location"),
			},
			expected: `AddLocation location "Bree": duplicate location`,
		},
		{
			name: "with name and field",
			err: &StorageError{
				Op:     "AddRoute",
				Entity: "route",
				Name:   "Bree->Weathertop",
				Field:  "danger",
				Cause:  fmt.Errorf("out of range"),
			},
			expected: `AddRoute route "Bree->Weathertop" (field danger): out of range`,
		},
		{
			name: "with name and context",
			err: &StorageError{
				Op:      "AddRoute",
				Entity:  "route",
				Name:    "Bree->Nowhere",
				Context: "Nowhere",
				Cause:   fmt.Errorf("dangling"),
			},
			expected: `AddRoute route "Bree->Nowhere" (Nowhere): dangling`,
		},
		{
			name: "context only",
			err: &StorageError{
				Op:      "load",
				Entity:  "dataset",
				Context: "embedded",
				Cause:   fmt.Errorf("empty"),
			},
			expected: "load dataset (embedded): empty",
		},
		{
			name: "minimal",
			err: &StorageError{
				Op:     "build",
				Entity: "graph",
				Cause:  fmt.Errorf("no locations"),
			},
			expected: "build graph: no locations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStorageError_UnwrapAndIs(t *testing.T) {
	err := NewError("get").Location("Shire").Cause(ErrLocationNotFound).Err()

	if !errors.Is(err, ErrLocationNotFound) {
		t.Error("errors.Is should match the cause")
	}
	if errors.Is(err, ErrRouteNotFound) {
		t.Error("errors.Is should not match an unrelated sentinel")
	}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should extract *StorageError")
	}
	if se.Name != "Shire" || se.Entity != "location" {
		t.Errorf("unexpected error fields: %+v", se)
	}
	if se.Is(nil) {
		t.Error("Is(nil) should be false")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(LocationNotFoundError("Shire")) {
		t.Error("location not found should be a not-found error")
	}
	if !IsNotFound(RouteNotFoundError("Shire", "Bree")) {
		t.Error("route not found should be a not-found error")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("plain error should not be a not-found error")
	}
}
