// Package api contains the HTTP client for the Daybook backend. The client
// holds the access/refresh token pair and transparently retries a request
// once after refreshing an expired access token.
package api

import "context"

// Entry is the wire form of a journal entry as the server sends it.
// Timestamp is epoch millis at the start of the entry's day; UpdatedAt is an
// ISO-8601 string, empty until the entry is first edited.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	UserID    string `json:"user_id"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// EntryText is the title/content pair the analysis endpoints consume.
type EntryText struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (userID string, err error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	ListEntries(ctx context.Context, date string) ([]Entry, error)
	CreateEntry(ctx context.Context, title, content string) error
	UpdateEntry(ctx context.Context, id, title, content string) error
	DeleteEntry(ctx context.Context, id string) error

	Analyze(ctx context.Context, entries []EntryText) (string, error)
	Search(ctx context.Context, query string, entries []EntryText) (exact, semantic []EntryText, err error)
}
