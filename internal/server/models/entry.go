package models

import "time"

// Entry is a persisted journal record.
//
// EntryDate ("yyyy-mm-dd") and Timestamp (epoch millis at day start) are
// assigned from the server wall clock at creation and never change.
// UpdatedAt is nil until the entry is edited.
type Entry struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	EntryDate string
	Timestamp int64
	UpdatedAt *time.Time
}
