package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/infrastructure/buffer"
	"github.com/fastygo/focus/repository"
	"github.com/fastygo/focus/repository/memory"
	"github.com/fastygo/focus/usecase"
)

type switchHealth struct{ online bool }

func (h *switchHealth) IsOnline() bool { return h.online }

// flakyTasks fails creates until healed.
type flakyTasks struct {
	repository.TaskRepository
	broken bool
}

func (f *flakyTasks) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if f.broken {
		return nil, errors.New("connection reset")
	}
	return f.TaskRepository.Create(ctx, task)
}

func newProcessor(t *testing.T, health ConnectionHealth, tasks repository.TaskRepository, journals repository.JournalRepository) (*BufferProcessor, *buffer.Store) {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewBufferProcessor(store, health, tasks, journals, nil, ProcessorConfig{MaxRetries: 2}), store
}

func TestSubmit_OfflineThenDrain(t *testing.T) {
	mem := memory.NewStore()
	health := &switchHealth{online: false}
	bp, _ := newProcessor(t, health, mem.Tasks(), mem.Journals())
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	task := &domain.Task{ID: "t1", UserID: "u1", Text: "buffered", Quadrant: domain.QuadrantDoFirst}
	require.NoError(t, bridge.BufferTask(ctx, usecase.OperationCreate, task))
	journal := &domain.Journal{ID: "j1", UserID: "u1", Title: "note"}
	require.NoError(t, bridge.BufferJournal(ctx, usecase.OperationCreate, journal))
	assert.Equal(t, 2, bp.Size())

	require.NoError(t, bp.Drain(ctx))
	assert.Equal(t, 2, bp.Size(), "offline drain must not touch the buffer")

	health.online = true
	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())

	got, err := mem.Tasks().GetByID(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "buffered", got.Text)
	_, err = mem.Journals().GetByID(ctx, "u1", "j1")
	require.NoError(t, err)
}

func TestDrain_RetriesThenDrops(t *testing.T) {
	mem := memory.NewStore()
	tasks := &flakyTasks{TaskRepository: mem.Tasks(), broken: true}
	bp, store := newProcessor(t, nil, tasks, mem.Journals())
	ctx := context.Background()

	w, err := buffer.TaskWrite(buffer.OperationCreate, &domain.Task{ID: "t1", UserID: "u1", Text: "x", Quadrant: domain.QuadrantDoFirst})
	require.NoError(t, err)
	require.NoError(t, bp.Submit(ctx, w))
	assert.Equal(t, 1, bp.Size())

	require.NoError(t, bp.Drain(ctx))
	writes, err := store.Peek(10)
	require.NoError(t, err)
	require.Len(t, writes, 1)
	assert.Equal(t, 1, writes[0].Attempts)

	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())
}

func TestDrain_TransientFailureKeepsOrder(t *testing.T) {
	mem := memory.NewStore()
	tasks := &flakyTasks{TaskRepository: mem.Tasks(), broken: true}
	health := &switchHealth{online: false}
	bp, _ := newProcessor(t, health, tasks, mem.Journals())
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	task := &domain.Task{ID: "t1", UserID: "u1", Text: "draft", Quadrant: domain.QuadrantDoFirst}
	require.NoError(t, bridge.BufferTask(ctx, usecase.OperationCreate, task))
	task.Text = "final"
	require.NoError(t, bridge.BufferTask(ctx, usecase.OperationUpdate, task))

	health.online = true
	require.NoError(t, bp.Drain(ctx))
	assert.Equal(t, 2, bp.Size(), "the update must wait for the create")

	tasks.broken = false
	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())

	got, err := mem.Tasks().GetByID(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)
}

func TestSubmit_PermanentErrorsAreReturned(t *testing.T) {
	mem := memory.NewStore()
	bp, _ := newProcessor(t, nil, mem.Tasks(), mem.Journals())

	w, err := buffer.JournalWrite(buffer.OperationDelete, &domain.Journal{ID: "missing", UserID: "u1"})
	require.NoError(t, err)

	err = bp.Submit(context.Background(), w)
	assert.ErrorIs(t, err, domain.ErrJournalNotFound)
	assert.Zero(t, bp.Size())
}
