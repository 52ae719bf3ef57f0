package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/internal/datex"
)

// fakeStore mimics the remote store: entries live in memory, Create assigns
// id/date/timestamp from the fake clock the way the server would.
type fakeStore struct {
	now     func() time.Time
	entries []Entry
	nextID  int

	listCalls   int
	createCalls int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (s *fakeStore) ListForDate(ctx context.Context, day, ownerID string) ([]Entry, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Entry
	for _, e := range s.entries {
		if e.Date == day && e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, title, content, ownerID string) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	now := s.now()
	s.nextID++
	s.entries = append(s.entries, Entry{
		ID:        fmt.Sprintf("id-%d", s.nextID),
		Title:     title,
		Content:   content,
		OwnerID:   ownerID,
		Date:      datex.FormatDay(now),
		CreatedAt: datex.DayStartMillis(now),
	})
	return nil
}

func (s *fakeStore) Update(ctx context.Context, id, title, content string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			now := s.now()
			s.entries[i].Title = title
			s.entries[i].Content = content
			s.entries[i].UpdatedAt = &now
			return nil
		}
	}
	return errors.New("not found")
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// seed inserts an entry for a specific past day.
func (s *fakeStore) seed(day, title, content, ownerID string) {
	t, err := datex.ParseDay(day)
	if err != nil {
		panic(err)
	}
	s.nextID++
	s.entries = append(s.entries, Entry{
		ID:        fmt.Sprintf("id-%d", s.nextID),
		Title:     title,
		Content:   content,
		OwnerID:   ownerID,
		Date:      day,
		CreatedAt: datex.DayStartMillis(t),
	})
}

type fakeSummarizer struct {
	text  string
	err   error
	calls int
	last  []Entry
}

func (f *fakeSummarizer) Summarize(ctx context.Context, entries []Entry) (string, error) {
	f.calls++
	f.last = entries
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeSession struct {
	id        string
	callbacks []func(string)
}

func (f *fakeSession) UserID() string { return f.id }

func (f *fakeSession) OnChange(fn func(string)) func() {
	f.callbacks = append(f.callbacks, fn)
	return func() {}
}

func (f *fakeSession) signOut() {
	f.id = ""
	for _, fn := range f.callbacks {
		fn("")
	}
}

func newTestManager(t *testing.T, today string) (*Manager, *fakeStore, *fakeSummarizer, *fakeSession) {
	t.Helper()
	now := fixedNow(today)
	store := &fakeStore{now: now}
	sum := &fakeSummarizer{text: "an uneventful day"}
	sess := &fakeSession{id: "user-1"}
	m := NewManager(store, sum, sess, WithClock(now))
	t.Cleanup(m.Close)
	return m, store, sum, sess
}

func TestLoadActiveDate_FiltersByDayAndOwner(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-09", "Walk", "around the block", "user-1")
	store.seed("2024-01-10", "Work", "shipped the thing", "user-1")
	store.seed("2024-01-10", "Other", "someone else's day", "user-2")

	list, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Work", list[0].Title)
}

func TestLoadActiveDate_FailureKeepsLastKnownGood(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Work", "notes", "user-1")

	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Entries(), 1)

	store.listErr = errors.New("connection refused")
	_, err = m.LoadActiveDate(context.Background())
	assert.ErrorIs(t, err, ErrRemote)
	assert.Len(t, m.Entries(), 1, "failed reload must not clear the list")
}

func TestLoadActiveDate_RequiresUser(t *testing.T) {
	m, store, _, sess := newTestManager(t, "2024-01-10")
	sess.id = ""

	_, err := m.LoadActiveDate(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, store.listCalls)
}

func TestAddEntry_ValidationNeverCallsStore(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")

	for _, draft := range [][2]string{{"", "content"}, {"title", ""}, {"  ", "  "}} {
		_, err := m.AddEntry(context.Background(), draft[0], draft[1])
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, store.createCalls)
}

func TestAddEntry_OnTodayReloads(t *testing.T) {
	m, _, _, _ := newTestManager(t, "2024-01-10")

	res, err := m.AddEntry(context.Background(), "Morning", "coffee and email")
	require.NoError(t, err)
	assert.True(t, res.OnActiveDate)
	assert.Equal(t, "2024-01-10", res.FiledUnder)

	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "Morning", m.Entries()[0].Title)
}

func TestAddEntry_WhileBrowsingPastFilesUnderToday(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-05", "Old", "old notes", "user-1")
	require.NoError(t, m.JumpToDate(context.Background(), "2024-01-05"))

	res, err := m.AddEntry(context.Background(), "New", "new notes")
	require.NoError(t, err)
	assert.False(t, res.OnActiveDate)
	assert.Equal(t, "2024-01-10", res.FiledUnder)

	// visible list unchanged: still the past day's single entry
	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "Old", m.Entries()[0].Title)

	// the new entry shows up under today, not under the browsed day
	require.NoError(t, m.JumpToDate(context.Background(), "2024-01-10"))
	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "New", m.Entries()[0].Title)
}

func TestUpdateEntry_PersistsAndReloads(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Draft", "first version", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	err = m.UpdateEntry(context.Background(), m.Entries()[0], "Final", "second version")
	require.NoError(t, err)

	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "Final", m.Entries()[0].Title)
	assert.NotNil(t, m.Entries()[0].UpdatedAt)
}

func TestUpdateEntry_Validation(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Draft", "text", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	err = m.UpdateEntry(context.Background(), m.Entries()[0], "", "text")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Draft", m.Entries()[0].Title)
}

func TestDeleteEntry_GoneAfterReload(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Keep", "a", "user-1")
	store.seed("2024-01-10", "Drop", "b", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	var dropID string
	for _, e := range m.Entries() {
		if e.Title == "Drop" {
			dropID = e.ID
		}
	}
	require.NotEmpty(t, dropID)

	require.NoError(t, m.DeleteEntry(context.Background(), dropID))

	list, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	for _, e := range list {
		assert.NotEqual(t, dropID, e.ID)
	}
	require.Len(t, list, 1)
}

func TestNavigate_PreviousReloads(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-09", "Walk", "around the block", "user-1")

	require.NoError(t, m.Navigate(context.Background(), DirectionPrevious))
	assert.Equal(t, "2024-01-09", m.ActiveDate())
	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "Walk", m.Entries()[0].Title)
}

func TestNavigate_NextAtTodayIsNoOp(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")

	require.NoError(t, m.Navigate(context.Background(), DirectionNext))
	assert.Equal(t, "2024-01-10", m.ActiveDate())
	assert.Zero(t, store.listCalls, "clamped step must not trigger a reload")
}

func TestJumpToDate_RejectsMalformedDay(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")

	err := m.JumpToDate(context.Background(), "01/10/2024")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "2024-01-10", m.ActiveDate())
	assert.Zero(t, store.listCalls)
}

func TestSearchAndJump_JumpsToEarliestMatch(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-15")
	store.seed("2024-01-09", "Walk in the park", "crisp air", "user-1")
	store.seed("2024-01-12", "Walked home", "long way round", "user-1")

	corpus := append([]Entry(nil), store.entries...)
	match, err := m.SearchAndJump(context.Background(), "walk", corpus)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09", match.Date)
	assert.Equal(t, "2024-01-09", m.ActiveDate())
	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "Walk in the park", m.Entries()[0].Title)
}

func TestSearchAndJump_NoResultsLeavesCursor(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-15")
	store.seed("2024-01-09", "Walk", "park", "user-1")

	corpus := append([]Entry(nil), store.entries...)
	_, err := m.SearchAndJump(context.Background(), "swimming", corpus)
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Equal(t, "2024-01-15", m.ActiveDate())
}

func TestSearchAndJump_DefaultsToLoadedList(t *testing.T) {
	m, store, _, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Groceries", "milk and bread", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	match, err := m.SearchAndJump(context.Background(), "milk", nil)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", match.Title)
}

func TestAnalyze_SecondCallIsCacheHit(t *testing.T) {
	m, store, sum, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Work", "shipped the thing", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	text, err := m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "an uneventful day", text)
	assert.Equal(t, 1, sum.calls)
	require.Len(t, sum.last, 1)

	_, status := m.Analysis()
	assert.Equal(t, StatusDisplaying, status)
	m.CloseAnalysis()

	// no intervening edit: exactly one remote call in total
	text, err = m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "an uneventful day", text)
	assert.Equal(t, 1, sum.calls)
}

func TestAnalyze_CacheIsKeyedByDay(t *testing.T) {
	m, store, sum, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-09", "Walk", "park", "user-1")
	store.seed("2024-01-10", "Work", "desk", "user-1")

	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	_, err = m.Analyze(context.Background())
	require.NoError(t, err)
	m.CloseAnalysis()

	// a different day misses the cache
	require.NoError(t, m.Navigate(context.Background(), DirectionPrevious))
	_, err = m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.calls)
	m.CloseAnalysis()

	// back to the first day: hit
	require.NoError(t, m.Navigate(context.Background(), DirectionNext))
	_, err = m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.calls)
}

func TestAnalyze_StaleAfterEditByDesign(t *testing.T) {
	m, store, sum, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Work", "first draft", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	first, err := m.Analyze(context.Background())
	require.NoError(t, err)
	m.CloseAnalysis()

	// editing the day's entries does not invalidate the cached summary
	require.NoError(t, m.UpdateEntry(context.Background(), m.Entries()[0], "Work", "rewritten"))
	sum.text = "a very different day"

	again, err := m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, sum.calls)
}

func TestAnalyze_FailureLeavesCacheUnsetForRetry(t *testing.T) {
	m, store, sum, _ := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Work", "notes", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)

	sum.err = errors.New("upstream 502")
	_, err = m.Analyze(context.Background())
	assert.ErrorIs(t, err, ErrRemote)

	_, status := m.Analysis()
	assert.Equal(t, StatusIdle, status)

	// a new user action can retry and succeed
	sum.err = nil
	text, err := m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "an uneventful day", text)
	assert.Equal(t, 2, sum.calls)
}

func TestAnalyze_RequiresUser(t *testing.T) {
	m, _, sum, sess := newTestManager(t, "2024-01-10")
	sess.id = ""

	_, err := m.Analyze(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, sum.calls)
}

func TestSignOut_ResetsTransientState(t *testing.T) {
	m, store, sum, sess := newTestManager(t, "2024-01-10")
	store.seed("2024-01-10", "Work", "notes", "user-1")
	_, err := m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	_, err = m.Analyze(context.Background())
	require.NoError(t, err)

	sess.signOut()

	assert.Empty(t, m.Entries())
	text, status := m.Analysis()
	assert.Empty(t, text)
	assert.Equal(t, StatusIdle, status)

	// cache was dropped: a fresh sign-in analyzes again
	sess.id = "user-1"
	_, err = m.LoadActiveDate(context.Background())
	require.NoError(t, err)
	_, err = m.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.calls)
}
