// Package lifecycle owns every ServiceRequest state change. Handlers never
// write request rows directly; they go through Service so each transition is
// a locked, conditional update instead of a read-then-write.
package lifecycle

import "errors"

var (
	// ErrNotFound maps to a 404 at the handler boundary.
	ErrNotFound = errors.New("service request not found")

	// ErrForbidden is returned when the caller is not the actor bound to
	// the request (owning customer or assigned professional).
	ErrForbidden = errors.New("not authorized for this service request")

	// ErrCategoryMismatch is returned when a professional tries to claim a
	// request outside their declared service type.
	ErrCategoryMismatch = errors.New("service request does not match professional service type")

	// ErrInvalidTransition is returned when the request is not in the
	// status the transition starts from.
	ErrInvalidTransition = errors.New("service request is not in a valid status for this action")

	// ErrConflict is returned when a concurrent actor won the race for the
	// same transition.
	ErrConflict = errors.New("service request was modified concurrently")
)
