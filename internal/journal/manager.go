// Package journal is the client-side journal list and its editor modal.
package journal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/validate"
	"github.com/fastygo/focus/pkg/apiclient"
)

const addFailedMessage = "Failed to add journal"

// ErrUnknownJournal is returned by Open for an id that is not in the list.
var ErrUnknownJournal = errors.New("journal not found")

type API interface {
	ListJournals(ctx context.Context) ([]domain.Journal, error)
	CreateJournal(ctx context.Context, in apiclient.JournalInput) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, id string, in apiclient.JournalInput) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, id string) error
}

type Mode int

const (
	ModeClosed Mode = iota
	ModeView
	ModeEdit
)

// Draft holds the editor fields.
type Draft struct {
	Title   string
	Content string
	Tag     string
}

// State is a copy of everything a view renders.
type State struct {
	Query    string
	Visible  []domain.Journal
	Mode     Mode
	Selected *domain.Journal
	Draft    Draft
	Error    string
}

type Manager struct {
	api    API
	userID string
	logger *zap.Logger

	mu       sync.RWMutex
	journals []domain.Journal
	query    string
	mode     Mode
	selected *domain.Journal
	draft    Draft
	errMsg   string
}

func New(api API, userID string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{api: api, userID: userID, logger: logger}
}

// Fetch reloads the list and remembers query as the tag filter. On failure
// both the list and the previous filter are kept.
func (m *Manager) Fetch(ctx context.Context, query string) error {
	journals, err := m.api.ListJournals(ctx)
	if err != nil {
		m.logger.Error("error fetching journals", zap.Error(err))
		return err
	}

	m.mu.Lock()
	m.journals = journals
	m.query = query
	m.mu.Unlock()
	return nil
}

// Visible is the list filtered by the current tag query.
func (m *Manager) Visible() []domain.Journal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visibleLocked()
}

func (m *Manager) visibleLocked() []domain.Journal {
	out := make([]domain.Journal, 0, len(m.journals))
	for _, j := range m.journals {
		if j.MatchesTag(m.query) {
			out = append(out, j)
		}
	}
	return out
}

// OpenNew opens an empty editor.
func (m *Manager) OpenNew() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
	m.draft = Draft{}
	m.errMsg = ""
	m.mode = ModeEdit
}

// Open shows a journal read-only.
func (m *Manager) Open(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.journals {
		if m.journals[i].ID == id {
			selected := m.journals[i]
			m.selected = &selected
			m.mode = ModeView
			return nil
		}
	}
	return ErrUnknownJournal
}

// BeginEdit switches the open journal into the editor.
func (m *Manager) BeginEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return
	}
	m.draft = Draft{Title: m.selected.Title, Content: m.selected.Content, Tag: m.selected.Tag}
	m.mode = ModeEdit
}

func (m *Manager) SetDraft(d Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = d
}

// Close dismisses the modal and clears the editor.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	m.mode = ModeClosed
	m.selected = nil
	m.draft = Draft{}
	m.errMsg = ""
}

// Submit creates a journal when nothing is selected and saves the selection
// otherwise. On failure the modal stays open.
func (m *Manager) Submit(ctx context.Context) (*domain.Journal, error) {
	m.mu.RLock()
	draft := m.draft
	var selectedID string
	if m.selected != nil {
		selectedID = m.selected.ID
	}
	m.mu.RUnlock()

	if err := validate.JournalTitle(draft.Title); err != nil {
		m.setError(err.Error())
		return nil, err
	}

	in := apiclient.JournalInput{
		Title:   draft.Title,
		Content: draft.Content,
		Tag:     strings.TrimSpace(draft.Tag),
	}

	if selectedID == "" {
		in.UserID = m.userID
		created, err := m.api.CreateJournal(ctx, in)
		if err != nil {
			m.logger.Error("error adding journal", zap.Error(err))
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) {
				msg := apiErr.Message
				if msg == "" {
					msg = addFailedMessage
				}
				m.setError(msg)
			}
			return nil, err
		}
		m.mu.Lock()
		m.journals = append([]domain.Journal{*created}, m.journals...)
		m.closeLocked()
		m.mu.Unlock()
		return created, nil
	}

	updated, err := m.api.UpdateJournal(ctx, selectedID, in)
	if err != nil {
		m.logger.Error("error updating journal", zap.Error(err))
		return nil, err
	}
	m.mu.Lock()
	for i := range m.journals {
		if m.journals[i].ID == selectedID {
			m.journals[i] = *updated
		}
	}
	m.closeLocked()
	m.mu.Unlock()
	return updated, nil
}

// Delete removes a journal on the server and then locally.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.api.DeleteJournal(ctx, id); err != nil {
		m.logger.Error("error deleting journal", zap.Error(err))
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.journals[:0:0]
	for _, j := range m.journals {
		if j.ID != id {
			out = append(out, j)
		}
	}
	m.journals = out
	return nil
}

// Find returns a journal by id or unique id prefix.
func (m *Manager) Find(id string) (domain.Journal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var (
		match domain.Journal
		hits  int
	)
	for _, j := range m.journals {
		if j.ID == id {
			return j, true
		}
		if strings.HasPrefix(j.ID, id) {
			match = j
			hits++
		}
	}
	return match, hits == 1
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state := State{
		Query:   m.query,
		Visible: m.visibleLocked(),
		Mode:    m.mode,
		Draft:   m.draft,
		Error:   m.errMsg,
	}
	if m.selected != nil {
		selected := *m.selected
		state.Selected = &selected
	}
	return state
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = msg
}
