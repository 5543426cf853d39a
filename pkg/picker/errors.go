package picker

import "errors"

// All picker errors are local, recoverable conditions: they are surfaced to
// the user and never terminate the session.
var (
	// ErrNotFound means the selection resolved to no theme (a header line,
	// or an unassigned quick slot).
	ErrNotFound = errors.New("no theme at selection")

	// ErrUnavailable means the theme exists but fails the availability
	// check; selection is refused.
	ErrUnavailable = errors.New("theme is not available")

	// ErrClosed means an operation was invoked on a closed session.
	ErrClosed = errors.New("picker session is closed")
)
