package pagenav

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// Navigation errors, re-exported for callers that only import pagenav.
var (
	// ErrHistoryEmpty is returned by back navigation with nothing to return to.
	ErrHistoryEmpty = router.ErrHistoryEmpty

	// ErrNotRegistered is the cause of a route that nobody could resolve.
	ErrNotRegistered = router.ErrNotRegistered
)

// InfrastructureError represents a failure in the machinery around the
// router (config file, history store, input device) rather than in a
// navigation itself. These are typically fatal at startup.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "load_config", "open_input")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pagenav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pagenav: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
