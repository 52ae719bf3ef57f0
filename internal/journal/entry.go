package journal

import (
	"strings"
	"time"
)

// Entry is a single journal record.
//
// ID, OwnerID, Date and CreatedAt are assigned by the store at creation and
// never change; only Title and Content are mutable, and editing them sets
// UpdatedAt. Date is a "yyyy-mm-dd" day string; CreatedAt is epoch
// milliseconds at the start of that day, used for ordering and search
// tie-breaks.
type Entry struct {
	ID        string
	Title     string
	Content   string
	OwnerID   string
	Date      string
	CreatedAt int64
	UpdatedAt *time.Time
}

// ValidateDraft checks the user-supplied fields of a new or edited entry.
// Returns ErrValidation when title or content trim to empty.
func ValidateDraft(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return ErrValidation
	}
	return nil
}

// matches reports whether the entry matches a case-insensitive substring
// query on title or content.
func (e Entry) matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q)
}
