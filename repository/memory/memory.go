// Package memory provides process-local repositories used when the server
// runs without Postgres and Redis, and by handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/repository"
)

// Store holds every entity behind a single lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	tasks    map[string]domain.Task
	journals map[string]domain.Journal
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		tasks:    make(map[string]domain.Task),
		journals: make(map[string]domain.Journal),
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (s *Store) Users() repository.UserRepository       { return userRepository{s} }
func (s *Store) Tasks() repository.TaskRepository       { return taskRepository{s} }
func (s *Store) Journals() repository.JournalRepository { return journalRepository{s} }
func (s *Store) Sessions() repository.SessionRepository { return sessionRepository{s} }

type userRepository struct{ s *Store }

func (r userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return user, nil
}

type taskRepository struct{ s *Store }

func (r taskRepository) GetByID(_ context.Context, userID, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	task, ok := r.s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r taskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tasks := make([]domain.Task, 0)
	for _, task := range r.s.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Quadrant != "" && task.Quadrant != filter.Quadrant {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return page(tasks, filter.Limit, filter.Offset), nil
}

func (r taskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if existing, ok := r.s.tasks[task.ID]; ok {
		*task = existing
		return task, nil
	}
	task.CreatedAt = r.s.now()
	task.UpdatedAt = task.CreatedAt
	r.s.tasks[task.ID] = *task
	return task, nil
}

func (r taskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = r.s.now()
	r.s.tasks[task.ID] = *task
	return nil
}

func (r taskRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.tasks[id]
	if !ok || existing.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

type journalRepository struct{ s *Store }

func (r journalRepository) GetByID(_ context.Context, userID, id string) (*domain.Journal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	journal, ok := r.s.journals[id]
	if !ok || journal.UserID != userID {
		return nil, domain.ErrJournalNotFound
	}
	return &journal, nil
}

func (r journalRepository) List(_ context.Context, filter repository.JournalFilter) ([]domain.Journal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	journals := make([]domain.Journal, 0)
	for _, journal := range r.s.journals {
		if journal.UserID == filter.UserID {
			journals = append(journals, journal)
		}
	}
	sort.SliceStable(journals, func(i, j int) bool {
		return journals[i].CreatedAt.After(journals[j].CreatedAt)
	})
	return page(journals, filter.Limit, filter.Offset), nil
}

func (r journalRepository) Create(_ context.Context, journal *domain.Journal) (*domain.Journal, error) {
	if journal == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if journal.ID == "" {
		journal.ID = uuid.NewString()
	}
	if existing, ok := r.s.journals[journal.ID]; ok {
		*journal = existing
		return journal, nil
	}
	journal.CreatedAt = r.s.now()
	journal.UpdatedAt = journal.CreatedAt
	r.s.journals[journal.ID] = *journal
	return journal, nil
}

func (r journalRepository) Update(_ context.Context, journal *domain.Journal) error {
	if journal == nil {
		return domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.journals[journal.ID]
	if !ok || existing.UserID != journal.UserID {
		return domain.ErrJournalNotFound
	}
	journal.CreatedAt = existing.CreatedAt
	journal.UpdatedAt = r.s.now()
	r.s.journals[journal.ID] = *journal
	return nil
}

func (r journalRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.journals[id]
	if !ok || existing.UserID != userID {
		return domain.ErrJournalNotFound
	}
	delete(r.s.journals, id)
	return nil
}

type sessionRepository struct{ s *Store }

func (r sessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired(r.s.now()) {
		delete(r.s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r sessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.s.now()
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r sessionRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
