package journal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/datex"
)

// AnalysisStatus is the state of the analysis view.
//
// Idle -> Analyzing -> Displaying on success,
// Idle -> Analyzing -> Idle on failure (error surfaced),
// Displaying -> Idle on CloseAnalysis.
type AnalysisStatus int

const (
	StatusIdle AnalysisStatus = iota
	StatusAnalyzing
	StatusDisplaying
)

func (s AnalysisStatus) String() string {
	switch s {
	case StatusAnalyzing:
		return "analyzing"
	case StatusDisplaying:
		return "displaying"
	default:
		return "idle"
	}
}

// AddResult reports where a newly created entry was filed. New entries always
// land on today's day regardless of the day being browsed; OnActiveDate is
// false when the user was viewing some other day, so the UI can show a
// "filed under today" notice.
type AddResult struct {
	FiledUnder   string
	OnActiveDate bool
}

// Manager owns journal-entry state, date navigation and analysis caching,
// and exposes the operations the UI consumes. All mutable state (entry list,
// cursor, cache, analysis view) is owned exclusively by the Manager.
type Manager struct {
	store      Store
	summarizer Summarizer
	session    Session

	cursor *Cursor
	cache  *AnalysisCache

	entries  []Entry
	analysis string
	status   AnalysisStatus

	now         func() time.Time
	unsubscribe func()
}

// ManagerOption customizes a Manager at construction time.
type ManagerOption func(*Manager)

// WithClock injects the wall clock (tests freeze it).
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager builds a Manager over the given collaborators. It subscribes to
// session transitions: on sign-out all transient state (entries, cursor,
// analysis cache and view) is reset. Call Close to unsubscribe.
func NewManager(store Store, summarizer Summarizer, session Session, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:      store,
		summarizer: summarizer,
		session:    session,
		cache:      NewAnalysisCache(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cursor = NewCursor(m.now)

	m.unsubscribe = session.OnChange(func(userID string) {
		if userID == "" {
			m.reset()
		}
	})

	return m
}

// Close detaches the manager from session notifications.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Manager) reset() {
	m.entries = nil
	m.cache.Reset()
	m.analysis = ""
	m.status = StatusIdle
	m.cursor = NewCursor(m.now)
}

// Entries returns the currently loaded entry list (last known good).
func (m *Manager) Entries() []Entry {
	return m.entries
}

// ActiveDate returns the day the cursor points at.
func (m *Manager) ActiveDate() string {
	return m.cursor.Current()
}

// Today returns the current wall-clock day.
func (m *Manager) Today() string {
	return datex.FormatDay(m.now())
}

// Analysis returns the current analysis text and view status.
func (m *Manager) Analysis() (string, AnalysisStatus) {
	return m.analysis, m.status
}

func (m *Manager) owner() (string, error) {
	id := m.session.UserID()
	if id == "" {
		return "", ErrNotAuthenticated
	}
	return id, nil
}

// LoadActiveDate fetches the entries for the active day. On failure the
// previously loaded list is retained and the error is returned; the list is
// never cleared by a failed reload.
func (m *Manager) LoadActiveDate(ctx context.Context) ([]Entry, error) {
	ownerID, err := m.owner()
	if err != nil {
		return nil, err
	}

	list, err := m.store.ListForDate(ctx, m.cursor.Current(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt < list[j].CreatedAt
	})
	m.entries = list
	return m.entries, nil
}

// AddEntry validates and creates a new entry. The entry is always filed under
// today; if the cursor is on today the list is reloaded so the entry becomes
// visible, otherwise the visible list is left unchanged and the result tells
// the caller where the entry went.
func (m *Manager) AddEntry(ctx context.Context, title, content string) (*AddResult, error) {
	if err := ValidateDraft(title, content); err != nil {
		return nil, err
	}
	ownerID, err := m.owner()
	if err != nil {
		return nil, err
	}

	if err := m.store.Create(ctx, title, content, ownerID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	today := m.Today()
	result := &AddResult{FiledUnder: today, OnActiveDate: m.cursor.Current() == today}
	if result.OnActiveDate {
		if _, err := m.LoadActiveDate(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}

// UpdateEntry validates and persists new title/content for an existing entry,
// then reloads the active day. The entry being edited is by definition in the
// currently loaded list, so the reload is unconditional.
func (m *Manager) UpdateEntry(ctx context.Context, entry Entry, newTitle, newContent string) error {
	if err := ValidateDraft(newTitle, newContent); err != nil {
		return err
	}
	if _, err := m.owner(); err != nil {
		return err
	}

	if err := m.store.Update(ctx, entry.ID, newTitle, newContent); err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}

	_, err := m.LoadActiveDate(ctx)
	return err
}

// DeleteEntry removes an entry and reloads the active day.
func (m *Manager) DeleteEntry(ctx context.Context, id string) error {
	if _, err := m.owner(); err != nil {
		return err
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}

	_, err := m.LoadActiveDate(ctx)
	return err
}

// Navigate steps the cursor one day and reloads. A forward step clamped at
// today is a no-op: the cursor did not change, so nothing is reloaded.
func (m *Manager) Navigate(ctx context.Context, dir Direction) error {
	if !m.cursor.Step(dir) {
		return nil
	}
	_, err := m.LoadActiveDate(ctx)
	return err
}

// JumpToDate moves the cursor to an arbitrary day and reloads.
func (m *Manager) JumpToDate(ctx context.Context, day string) error {
	if err := m.cursor.Set(day); err != nil {
		return err
	}
	_, err := m.LoadActiveDate(ctx)
	return err
}

// SearchAndJump filters corpus (or the currently loaded list when corpus is
// nil) by case-insensitive substring match on title or content. On a match it
// jumps the cursor to the day of the earliest match (CreatedAt ascending) and
// reloads; with no match it returns ErrNoResults and leaves the cursor alone.
func (m *Manager) SearchAndJump(ctx context.Context, query string, corpus []Entry) (*Entry, error) {
	if corpus == nil {
		corpus = m.entries
	}

	var best *Entry
	for i := range corpus {
		e := corpus[i]
		if !e.matches(query) {
			continue
		}
		if best == nil || e.CreatedAt < best.CreatedAt {
			best = &corpus[i]
		}
	}
	if best == nil {
		return nil, ErrNoResults
	}

	match := *best
	if err := m.cursor.Set(match.Date); err != nil {
		return nil, err
	}
	if _, err := m.LoadActiveDate(ctx); err != nil {
		return &match, err
	}
	return &match, nil
}

// Analyze returns the AI summary for the active day. A cache hit is returned
// verbatim with no remote call. On a miss the summarizer is invoked with the
// full active-day entry list and the result is cached under the day that was
// active when the call started, so a late result still lands on the right day
// even if the user has navigated away. On failure the cache stays unset for
// that day and a retry requires a new user action.
func (m *Manager) Analyze(ctx context.Context) (string, error) {
	if m.status == StatusAnalyzing {
		return "", ErrBusy
	}
	if _, err := m.owner(); err != nil {
		return "", err
	}

	day := m.cursor.Current()
	if text, ok := m.cache.Get(day); ok {
		m.analysis = text
		m.status = StatusDisplaying
		return text, nil
	}

	m.status = StatusAnalyzing
	text, err := m.summarizer.Summarize(ctx, m.entries)
	if err != nil {
		m.status = StatusIdle
		return "", fmt.Errorf("%w: %w", ErrRemote, err)
	}

	m.cache.Put(day, text)
	m.analysis = text
	m.status = StatusDisplaying
	return text, nil
}

// CloseAnalysis returns the analysis view to idle (the explicit "back"
// action). Cached summaries are kept.
func (m *Manager) CloseAnalysis() {
	m.status = StatusIdle
	m.analysis = ""
}
