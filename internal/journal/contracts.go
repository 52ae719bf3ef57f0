package journal

import "context"

// Store is the CRUD façade over the remote persistence collaborator.
//
// Create never returns the new record's id; callers observe it by re-listing.
// The store holds no cache and performs no optimistic local update:
// correctness relies on re-fetch after every successful mutation.
type Store interface {
	// ListForDate returns all entries of ownerID filed under the given
	// "yyyy-mm-dd" day, exact match.
	ListForDate(ctx context.Context, day, ownerID string) ([]Entry, error)

	// Create persists a new entry. The entry's day and timestamp are
	// assigned remotely from "now", independent of the day being browsed.
	Create(ctx context.Context, title, content, ownerID string) error

	// Update persists new title/content for an existing entry and stamps
	// its updated-at instant. Fails if the id does not exist or does not
	// belong to the caller.
	Update(ctx context.Context, id, title, content string) error

	// Delete removes the entry under the same ownership condition.
	Delete(ctx context.Context, id string) error
}

// Summarizer is the one-shot remote summarization collaborator: entries in,
// free-form text out. One attempt per call, no streaming.
type Summarizer interface {
	Summarize(ctx context.Context, entries []Entry) (string, error)
}

// Session exposes the authenticated user to the manager. UserID returns ""
// when nobody is signed in. OnChange registers a callback fired on
// sign-in/sign-out transitions and returns an unsubscribe function.
type Session interface {
	UserID() string
	OnChange(fn func(userID string)) (unsubscribe func())
}
