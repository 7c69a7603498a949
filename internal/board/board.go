// Package board holds the client-side Eisenhower matrix: four fixed buckets
// of tasks kept in sync with the REST API.
package board

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/validate"
	"github.com/fastygo/focus/pkg/apiclient"
)

// ErrNotOnBoard is returned when a task id is not in the expected bucket.
var ErrNotOnBoard = errors.New("task is not on the board")

// API is the subset of *apiclient.Client the board needs.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, in apiclient.NewTask) (*domain.Task, error)
	MoveTask(ctx context.Context, id string, target domain.Quadrant) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Column is one quadrant as rendered.
type Column struct {
	Quadrant domain.Quadrant
	Title    string
	Tasks    []domain.Task
}

type Board struct {
	api API

	mu      sync.RWMutex
	buckets map[domain.Quadrant][]domain.Task
}

func New(api API) *Board {
	return &Board{api: api, buckets: emptyBuckets()}
}

func emptyBuckets() map[domain.Quadrant][]domain.Task {
	buckets := make(map[domain.Quadrant][]domain.Task, len(domain.Quadrants))
	for _, q := range domain.Quadrants {
		buckets[q] = nil
	}
	return buckets
}

// Load replaces the board with the server's tasks, keeping fetch order per
// bucket. Records with an unknown quadrant are dropped.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	buckets := emptyBuckets()
	for _, task := range tasks {
		if !task.Quadrant.Valid() {
			continue
		}
		buckets[task.Quadrant] = append(buckets[task.Quadrant], task)
	}

	b.mu.Lock()
	b.buckets = buckets
	b.mu.Unlock()
	return nil
}

// Add creates a task and appends the server's record to its bucket. Blank
// text is rejected without a request.
func (b *Board) Add(ctx context.Context, text string, deadline *domain.Date, quadrant domain.Quadrant) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if err := validate.TaskText(text); err != nil {
		return nil, err
	}
	if !quadrant.Valid() {
		return nil, domain.ErrInvalidQuadrant
	}

	created, err := b.api.CreateTask(ctx, apiclient.NewTask{Text: text, Deadline: deadline, Quadrant: quadrant})
	if err != nil {
		return nil, err
	}
	if !created.Quadrant.Valid() {
		created.Quadrant = quadrant
	}

	b.mu.Lock()
	b.buckets[created.Quadrant] = append(b.buckets[created.Quadrant], *created)
	b.mu.Unlock()
	return created, nil
}

// Remove deletes the task and drops it from the quadrant's bucket.
func (b *Board) Remove(ctx context.Context, quadrant domain.Quadrant, id string) error {
	if err := b.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets[quadrant] = without(b.buckets[quadrant], id)
	return nil
}

// Move is the drag-and-drop of the board. Dropping on the source quadrant
// does nothing.
func (b *Board) Move(ctx context.Context, id string, source, target domain.Quadrant) error {
	if source == target {
		return nil
	}
	if !target.Valid() {
		return domain.ErrInvalidQuadrant
	}

	b.mu.RLock()
	_, found := indexOf(b.buckets[source], id)
	b.mu.RUnlock()
	if !found {
		return ErrNotOnBoard
	}

	if _, err := b.api.MoveTask(ctx, id, target); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i, found := indexOf(b.buckets[source], id)
	if !found {
		// reloaded while the request was in flight
		return nil
	}
	task := b.buckets[source][i]
	task.Quadrant = target
	b.buckets[source] = without(b.buckets[source], id)
	b.buckets[target] = append(b.buckets[target], task)
	return nil
}

// Find locates a task by id, or by a unique id prefix.
func (b *Board) Find(id string) (domain.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var (
		match domain.Task
		hits  int
	)
	for _, q := range domain.Quadrants {
		for _, task := range b.buckets[q] {
			if task.ID == id {
				return task, true
			}
			if strings.HasPrefix(task.ID, id) {
				match = task
				hits++
			}
		}
	}
	return match, hits == 1
}

// Snapshot copies the board in quadrant order.
func (b *Board) Snapshot() []Column {
	b.mu.RLock()
	defer b.mu.RUnlock()

	columns := make([]Column, 0, len(domain.Quadrants))
	for _, q := range domain.Quadrants {
		columns = append(columns, Column{
			Quadrant: q,
			Title:    q.Title(),
			Tasks:    append([]domain.Task(nil), b.buckets[q]...),
		})
	}
	return columns
}

func indexOf(tasks []domain.Task, id string) (int, bool) {
	for i, task := range tasks {
		if task.ID == id {
			return i, true
		}
	}
	return -1, false
}

func without(tasks []domain.Task, id string) []domain.Task {
	out := tasks[:0:0]
	for _, task := range tasks {
		if task.ID != id {
			out = append(out, task)
		}
	}
	return out
}
