package journal

import "errors"

// Sentinel errors of the manager. Remote failures are wrapped so that
// errors.Is(err, ErrRemote) matches while the cause stays inspectable.
var (
	// ErrValidation: empty (whitespace-trimmed) title or content.
	// No remote call is issued.
	ErrValidation = errors.New("title and content are required")

	// ErrNotAuthenticated: an operation that needs an owner was attempted
	// with no signed-in user. No remote call is issued.
	ErrNotAuthenticated = errors.New("not signed in")

	// ErrRemote: a collaborator call failed. Local state keeps its
	// last-known-good value; the attempt is terminal (no retry).
	ErrRemote = errors.New("remote call failed")

	// ErrNoResults: a search matched nothing; the cursor was not moved.
	ErrNoResults = errors.New("no matching entries")

	// ErrBusy: an analysis call is already outstanding.
	ErrBusy = errors.New("analysis already in progress")
)
