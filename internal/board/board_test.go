package board

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/validate"
	"github.com/fastygo/focus/pkg/apiclient"
)

type fakeAPI struct {
	tasks   []domain.Task
	err     error
	calls   []string
	nextID  int
	lastNew apiclient.NewTask
}

func (f *fakeAPI) ListTasks(context.Context) ([]domain.Task, error) {
	f.calls = append(f.calls, "list")
	return f.tasks, f.err
}

func (f *fakeAPI) CreateTask(_ context.Context, in apiclient.NewTask) (*domain.Task, error) {
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return nil, f.err
	}
	f.lastNew = in
	f.nextID++
	return &domain.Task{ID: fmt.Sprintf("t%d", f.nextID), Text: in.Text, Deadline: in.Deadline, Quadrant: in.Quadrant}, nil
}

func (f *fakeAPI) MoveTask(_ context.Context, id string, target domain.Quadrant) (*domain.Task, error) {
	f.calls = append(f.calls, "move:"+id+":"+string(target))
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Task{ID: id, Quadrant: target}, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

func column(b *Board, q domain.Quadrant) []string {
	for _, c := range b.Snapshot() {
		if c.Quadrant == q {
			ids := make([]string, 0, len(c.Tasks))
			for _, t := range c.Tasks {
				ids = append(ids, t.ID)
			}
			return ids
		}
	}
	return nil
}

func TestLoad_PartitionsAndDropsUnknown(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{
		{ID: "a", Quadrant: domain.QuadrantSchedule},
		{ID: "b", Quadrant: "someday"},
		{ID: "c", Quadrant: domain.QuadrantDoFirst},
		{ID: "d", Quadrant: domain.QuadrantSchedule},
	}}
	b := New(api)

	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, []string{"c"}, column(b, domain.QuadrantDoFirst))
	assert.Equal(t, []string{"a", "d"}, column(b, domain.QuadrantSchedule))
	assert.Empty(t, column(b, domain.QuadrantDelegate))

	snapshot := b.Snapshot()
	require.Len(t, snapshot, 4)
	assert.Equal(t, "Do First (Urgent & Important)", snapshot[0].Title)
}

func TestLoad_FailureKeepsState(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{{ID: "a", Quadrant: domain.QuadrantDontDo}}}
	b := New(api)
	require.NoError(t, b.Load(context.Background()))

	api.err = errors.New("offline")
	assert.Error(t, b.Load(context.Background()))
	assert.Equal(t, []string{"a"}, column(b, domain.QuadrantDontDo))
}

func TestAdd(t *testing.T) {
	api := &fakeAPI{}
	b := New(api)
	ctx := context.Background()

	_, err := b.Add(ctx, "   ", nil, domain.QuadrantDoFirst)
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a task before adding", verr.Message)
	assert.Empty(t, api.calls, "blank text never reaches the server")

	_, err = b.Add(ctx, "x", nil, "later")
	assert.ErrorIs(t, err, domain.ErrInvalidQuadrant)

	created, err := b.Add(ctx, "  write  ", nil, domain.QuadrantDelegate)
	require.NoError(t, err)
	assert.Equal(t, "write", api.lastNew.Text)
	assert.Nil(t, api.lastNew.Deadline)
	assert.Equal(t, []string{created.ID}, column(b, domain.QuadrantDelegate))

	api.err = errors.New("boom")
	_, err = b.Add(ctx, "again", nil, domain.QuadrantDelegate)
	assert.Error(t, err)
	assert.Len(t, column(b, domain.QuadrantDelegate), 1)
}

func TestRemove(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{
		{ID: "a", Quadrant: domain.QuadrantDoFirst},
		{ID: "b", Quadrant: domain.QuadrantDoFirst},
	}}
	b := New(api)
	ctx := context.Background()
	require.NoError(t, b.Load(ctx))

	api.err = errors.New("nope")
	assert.Error(t, b.Remove(ctx, domain.QuadrantDoFirst, "a"))
	assert.Equal(t, []string{"a", "b"}, column(b, domain.QuadrantDoFirst))

	api.err = nil
	require.NoError(t, b.Remove(ctx, domain.QuadrantDoFirst, "a"))
	assert.Equal(t, []string{"b"}, column(b, domain.QuadrantDoFirst))
}

func TestMove(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{
		{ID: "a", Text: "keep me", Quadrant: domain.QuadrantDoFirst},
		{ID: "b", Quadrant: domain.QuadrantSchedule},
	}}
	b := New(api)
	ctx := context.Background()
	require.NoError(t, b.Load(ctx))
	api.calls = nil

	require.NoError(t, b.Move(ctx, "a", domain.QuadrantDoFirst, domain.QuadrantDoFirst))
	assert.Empty(t, api.calls, "same quadrant is a no-op")

	assert.ErrorIs(t, b.Move(ctx, "zzz", domain.QuadrantDoFirst, domain.QuadrantDontDo), ErrNotOnBoard)

	require.NoError(t, b.Move(ctx, "a", domain.QuadrantDoFirst, domain.QuadrantSchedule))
	assert.Equal(t, []string{"move:a:schedule"}, api.calls)
	assert.Empty(t, column(b, domain.QuadrantDoFirst))
	assert.Equal(t, []string{"b", "a"}, column(b, domain.QuadrantSchedule))

	moved, ok := b.Find("a")
	require.True(t, ok)
	assert.Equal(t, domain.QuadrantSchedule, moved.Quadrant)
	assert.Equal(t, "keep me", moved.Text)

	api.err = errors.New("conflict")
	assert.Error(t, b.Move(ctx, "b", domain.QuadrantSchedule, domain.QuadrantDontDo))
	assert.Equal(t, []string{"b", "a"}, column(b, domain.QuadrantSchedule))
}

func TestFind_Prefix(t *testing.T) {
	api := &fakeAPI{tasks: []domain.Task{
		{ID: "abc123", Quadrant: domain.QuadrantDoFirst},
		{ID: "abd456", Quadrant: domain.QuadrantSchedule},
	}}
	b := New(api)
	require.NoError(t, b.Load(context.Background()))

	task, ok := b.Find("abc")
	require.True(t, ok)
	assert.Equal(t, "abc123", task.ID)

	_, ok = b.Find("ab")
	assert.False(t, ok, "ambiguous prefix")
}
