package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/repository"
	"github.com/fastygo/focus/repository/memory"
)

type recordingBuffer struct {
	ops []string
	err error
}

func (b *recordingBuffer) BufferTask(_ context.Context, operation string, _ *domain.Task) error {
	b.ops = append(b.ops, operation)
	return b.err
}

func (b *recordingBuffer) BufferJournal(_ context.Context, operation string, _ *domain.Journal) error {
	b.ops = append(b.ops, operation)
	return b.err
}

// offlineTasks fails every write as if Postgres were unreachable.
type offlineTasks struct {
	repository.TaskRepository
}

var errOffline = errors.New("connection refused")

func (offlineTasks) Create(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, errOffline
}

func (offlineTasks) Delete(context.Context, string, string) error {
	return errOffline
}

func TestCreateTask_Validation(t *testing.T) {
	uc := New(memory.NewStore().Tasks(), nil, nil)
	ctx := context.Background()

	_, err := uc.CreateTask(ctx, &domain.Task{UserID: "u1", Text: "  ", Quadrant: domain.QuadrantDoFirst})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.CreateTask(ctx, &domain.Task{UserID: "u1", Text: "x", Quadrant: "later"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuadrant)

	created, err := uc.CreateTask(ctx, &domain.Task{UserID: "u1", Text: " plan sprint ", Quadrant: domain.QuadrantSchedule})
	require.NoError(t, err)
	assert.Equal(t, "plan sprint", created.Text)
}

func TestUpdateTask_QuadrantOnlyPatch(t *testing.T) {
	uc := New(memory.NewStore().Tasks(), nil, nil)
	ctx := context.Background()

	due, err := domain.ParseDate("2024-05-01")
	require.NoError(t, err)
	created, err := uc.CreateTask(ctx, &domain.Task{UserID: "u1", Text: "ship", Deadline: &due, Quadrant: domain.QuadrantDoFirst})
	require.NoError(t, err)

	target := domain.QuadrantDelegate
	updated, err := uc.UpdateTask(ctx, "u1", created.ID, domain.TaskPatch{Quadrant: &target})
	require.NoError(t, err)
	assert.Equal(t, domain.QuadrantDelegate, updated.Quadrant)
	assert.Equal(t, "ship", updated.Text)
	require.True(t, updated.HasDeadline())
	assert.Equal(t, "2024-05-01", updated.Deadline.String())

	_, err = uc.UpdateTask(ctx, "u2", created.ID, domain.TaskPatch{Quadrant: &target})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	bad := domain.Quadrant("nope")
	_, err = uc.UpdateTask(ctx, "u1", created.ID, domain.TaskPatch{Quadrant: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidQuadrant)
}

func TestCreateTask_BuffersWhenStoreOffline(t *testing.T) {
	buf := &recordingBuffer{}
	uc := New(offlineTasks{memory.NewStore().Tasks()}, buf, nil)

	task, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Text: "later", Quadrant: domain.QuadrantDontDo})
	require.NoError(t, err)
	assert.Equal(t, "later", task.Text)
	assert.Equal(t, []string{"create"}, buf.ops)

	buf.err = errors.New("disk full")
	_, err = uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Text: "again", Quadrant: domain.QuadrantDontDo})
	assert.ErrorIs(t, err, errOffline)
}

func TestDeleteTask_NotFoundIsNotBuffered(t *testing.T) {
	buf := &recordingBuffer{}
	uc := New(memory.NewStore().Tasks(), buf, nil)

	err := uc.DeleteTask(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Empty(t, buf.ops)
}
