package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/board"
	"github.com/fastygo/focus/internal/localstore"
	"github.com/fastygo/focus/pkg/apiclient"
)

type stubAPI struct {
	tasks []domain.Task
	moved []string
}

func (s *stubAPI) ListTasks(context.Context) ([]domain.Task, error) {
	return s.tasks, nil
}

func (s *stubAPI) CreateTask(_ context.Context, in apiclient.NewTask) (*domain.Task, error) {
	return &domain.Task{ID: "new", Text: in.Text, Deadline: in.Deadline, Quadrant: in.Quadrant}, nil
}

func (s *stubAPI) MoveTask(_ context.Context, id string, target domain.Quadrant) (*domain.Task, error) {
	s.moved = append(s.moved, id+"->"+string(target))
	return &domain.Task{ID: id, Quadrant: target}, nil
}

func (s *stubAPI) DeleteTask(context.Context, string) error {
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m tea.Model, msg tea.Msg) tea.Model {
	updated, _ := m.Update(msg)
	return updated
}

// press feeds msg to the model and resolves any command it returns once.
func press(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	if cmd == nil {
		return updated
	}
	if next := cmd(); next != nil {
		switch next.(type) {
		case boardLoadedMsg, boardOpMsg:
			updated, _ = updated.Update(next)
		}
	}
	return updated
}

func loadedBoard(t *testing.T, api *stubAPI) BoardModel {
	t.Helper()
	model := NewBoardModel(board.New(api), NewStyles(localstore.ThemeLight), nil)
	msg := model.Init()()
	updated, _ := model.Update(msg)
	return updated.(BoardModel)
}

func titles(column board.Column) []string {
	out := make([]string, 0, len(column.Tasks))
	for _, task := range column.Tasks {
		out = append(out, task.Text)
	}
	return out
}

func TestBoardModel_LoadRendersColumns(t *testing.T) {
	api := &stubAPI{tasks: []domain.Task{
		{ID: "1", Text: "Pay rent", Quadrant: domain.QuadrantDoFirst},
		{ID: "2", Text: "Gym", Quadrant: domain.QuadrantSchedule},
	}}
	m := loadedBoard(t, api)

	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "Pay rent")
	assert.Contains(t, view, "Gym")
	assert.Contains(t, view, domain.QuadrantDontDo.Title())
}

func TestBoardModel_PickAndDropMovesTask(t *testing.T) {
	api := &stubAPI{tasks: []domain.Task{
		{ID: "1", Text: "Pay rent", Quadrant: domain.QuadrantDoFirst},
	}}
	var m tea.Model = loadedBoard(t, api)

	m = press(t, m, runes(" "))
	require.NotNil(t, m.(BoardModel).picked)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, runes(" "))

	bm := m.(BoardModel)
	assert.Nil(t, bm.picked)
	assert.Equal(t, []string{"1->schedule"}, api.moved)
	columns := bm.board.Snapshot()
	assert.Empty(t, columns[0].Tasks)
	assert.Equal(t, []string{"Pay rent"}, titles(columns[1]))
}

func TestBoardModel_DropOnSameColumnIsNoop(t *testing.T) {
	api := &stubAPI{tasks: []domain.Task{
		{ID: "1", Text: "Pay rent", Quadrant: domain.QuadrantDoFirst},
	}}
	var m tea.Model = loadedBoard(t, api)

	m = press(t, m, runes(" "))
	m = press(t, m, runes(" "))

	assert.Nil(t, m.(BoardModel).picked)
	assert.Empty(t, api.moved)
}

func TestBoardModel_NumberKeySendsSelectedTask(t *testing.T) {
	api := &stubAPI{tasks: []domain.Task{
		{ID: "1", Text: "Pay rent", Quadrant: domain.QuadrantDoFirst},
	}}
	var m tea.Model = loadedBoard(t, api)

	m = press(t, m, runes("4"))

	assert.Equal(t, []string{"1->dontDo"}, api.moved)
}

func TestBoardModel_AddTaskWithDeadline(t *testing.T) {
	api := &stubAPI{}
	var m tea.Model = loadedBoard(t, api)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(m, runes("a"))
	require.True(t, m.(BoardModel).adding)

	m = send(m, runes("Book dentist @2030-01-15"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	bm := m.(BoardModel)
	assert.False(t, bm.adding)
	assert.NoError(t, bm.err)
	tasks := bm.board.Snapshot()[1].Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "Book dentist", tasks[0].Text)
	require.NotNil(t, tasks[0].Deadline)
	assert.Equal(t, "2030-01-15", tasks[0].Deadline.String())
}

func TestBoardModel_AddKeepsAtWordInText(t *testing.T) {
	var m tea.Model = loadedBoard(t, &stubAPI{})

	m = send(m, runes("a"))
	m = send(m, runes("Email bob @work"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	bm := m.(BoardModel)
	assert.NoError(t, bm.err)
	tasks := bm.board.Snapshot()[0].Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "Email bob @work", tasks[0].Text)
	assert.False(t, tasks[0].HasDeadline())
}

func TestBoardModel_ColumnsFitQuadrantTitles(t *testing.T) {
	m := loadedBoard(t, &stubAPI{})

	view := m.View()
	for i, q := range domain.Quadrants {
		assert.Contains(t, view, fmt.Sprintf("%d. %s", i+1, q.Title()))
	}
}

func TestBoardModel_AddBlankShowsError(t *testing.T) {
	var m tea.Model = loadedBoard(t, &stubAPI{})

	m = send(m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	bm := m.(BoardModel)
	assert.Error(t, bm.err)
	assert.Empty(t, bm.board.Snapshot()[0].Tasks)
}

func TestBoardModel_Quit(t *testing.T) {
	m := loadedBoard(t, &stubAPI{})

	updated, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.True(t, updated.(BoardModel).quitting)
	assert.Empty(t, updated.View())
}

func TestParseTaskInput(t *testing.T) {
	tests := []struct {
		in   string
		text string
		due  string
	}{
		{in: "  Call mom  ", text: "Call mom"},
		{in: "Email @ work @2031-02-03", text: "Email @ work", due: "2031-02-03"},
		{in: "Email bob @work", text: "Email bob @work"},
		{in: "Call mom @tomorrow", text: "Call mom @tomorrow"},
		{in: "Ship @2031-13-40", text: "Ship @2031-13-40"},
	}
	for _, tt := range tests {
		text, due := ParseTaskInput(tt.in)
		assert.Equal(t, tt.text, text, tt.in)
		if tt.due == "" {
			assert.Nil(t, due, tt.in)
			continue
		}
		require.NotNil(t, due, tt.in)
		assert.Equal(t, tt.due, due.String())
	}
}
