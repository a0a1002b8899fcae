package editor

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"catalog-editor/models"
)

var ErrSessionNotFound = errors.New("editor session not found")

// Session is one open editor screen. It collects the notifications and
// navigation the editor raises until the client reads them.
type Session struct {
	ID string

	mu            sync.Mutex
	editor        *Editor
	notifications []models.Notification
	redirect      string
	lastUsed      atomic.Int64 // unix nanos, read without mu
}

// Notify implements Notifier. Called with the session locked.
func (s *Session) Notify(kind, message string) {
	s.notifications = append(s.notifications, models.Notification{Kind: kind, Message: message})
}

// NavigateTo implements Navigator. Called with the session locked.
func (s *Session) NavigateTo(route string) {
	s.redirect = route
}

// Do runs fn with the session locked. Requests on the same session run one after another.
func (s *Session) Do(fn func(e *Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return fn(s.editor)
}

func (s *Session) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

func (s *Session) idleSince(cutoff time.Time) bool {
	return s.lastUsed.Load() < cutoff.UnixNano()
}

// SessionView is the JSON shape of a session
type SessionView struct {
	ID            string                `json:"id"`
	Flow          Flow                  `json:"flow"`
	CatalogID     string                `json:"catalogId,omitempty"`
	Draft         models.CatalogDraft   `json:"draft"`
	HasFreshImage bool                  `json:"hasFreshImage"`
	ImagePreview  string                `json:"imagePreview,omitempty"`
	PriceList     []models.VolumeGroup  `json:"priceList"`
	Errors        []string              `json:"errors"`
	Submitted     bool                  `json:"submitted"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
}

// View snapshots the session and drains pending notifications
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.editor
	view := SessionView{
		ID:            s.ID,
		Flow:          e.Flow,
		CatalogID:     e.CatalogID,
		Draft:         e.Draft,
		HasFreshImage: len(e.Draft.Image) > 0,
		ImagePreview:  e.ImagePreview,
		PriceList:     clonePriceList(e.PriceList),
		Errors:        append([]string{}, e.Errors...),
		Submitted:     e.Submitted,
		Notifications: s.notifications,
		Redirect:      s.redirect,
	}
	view.Draft.SelectedProductIDs = append([]int{}, e.Draft.SelectedProductIDs...)
	view.Draft.Image = nil
	s.notifications = nil
	return view
}

func clonePriceList(groups []models.VolumeGroup) []models.VolumeGroup {
	out := make([]models.VolumeGroup, len(groups))
	for i, g := range groups {
		out[i] = models.VolumeGroup{
			Volume:  g.Volume,
			Entries: append([]models.PriceEntry{}, g.Entries...),
		}
	}
	return out
}

// Store keeps open editor sessions in memory
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Open registers a new session for e
func (st *Store) Open(e *Editor) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		editor: e,
	}
	session.touch()

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get returns the session with the given id
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close forgets a session
func (st *Store) Close(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep closes sessions idle for longer than maxIdle and returns how many were removed.
// It never waits on a session lock, so a long submission does not stall the store.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.RLock()
	var idle []string
	for id, session := range st.sessions {
		if session.idleSince(cutoff) {
			idle = append(idle, id)
		}
	}
	st.mu.RUnlock()

	if len(idle) == 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for _, id := range idle {
		// Used again since the scan
		if session, ok := st.sessions[id]; ok && session.idleSince(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
