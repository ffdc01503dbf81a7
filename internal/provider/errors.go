package provider

import (
	"errors"
	"fmt"
)

// Fetch error taxonomy. These propagate to the orchestration boundary, which
// maps each class to a specific user-facing response.
var (
	// ErrNotFound indicates an unknown or invalid ticker.
	ErrNotFound = errors.New("ticker not found")
	// ErrRateLimited indicates the fundamentals provider's daily request
	// quota (25) is exhausted. Callers must distinguish it from transient
	// network failures.
	ErrRateLimited = errors.New("provider request quota exhausted")
	// ErrNetwork indicates a transient transport failure.
	ErrNetwork = errors.New("network error")
)

// networkErr wraps a transport-level failure as ErrNetwork.
func networkErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}
