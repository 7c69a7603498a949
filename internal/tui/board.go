package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/board"
)

const requestTimeout = 10 * time.Second

type picked struct {
	id     string
	source domain.Quadrant
}

// BoardModel is the interactive matrix. A card is picked up with space and
// dropped on another column with space again; 1-4 send it straight to a
// quadrant.
type BoardModel struct {
	board  *board.Board
	styles Styles
	logger *zap.Logger

	col, row int
	picked   *picked
	adding   bool
	input    textinput.Model
	status   string
	err      error
	loading  bool
	quitting bool
}

type boardLoadedMsg struct{ err error }

type boardOpMsg struct {
	status string
	err    error
}

func NewBoardModel(b *board.Board, styles Styles, logger *zap.Logger) BoardModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.Placeholder = "Task text, optionally ending with @YYYY-MM-DD"
	input.CharLimit = 200
	input.Width = 60

	return BoardModel{
		board:   b,
		styles:  styles,
		logger:  logger,
		input:   input,
		loading: true,
	}
}

func (m BoardModel) Init() tea.Cmd {
	return m.load()
}

func (m BoardModel) load() tea.Cmd {
	b := m.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return boardLoadedMsg{err: b.Load(ctx)}
	}
}

func (m BoardModel) run(status string, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := op(ctx); err != nil {
			return boardOpMsg{err: err}
		}
		return boardOpMsg{status: status}
	}
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.logger.Error("failed to fetch tasks", zap.Error(msg.err))
		}
		m.clampCursor()
		return m, nil

	case boardOpMsg:
		m.err = msg.err
		if msg.err != nil {
			m.logger.Error("board operation failed", zap.Error(msg.err))
			m.status = ""
		} else {
			m.status = msg.status
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m BoardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		text, due := ParseTaskInput(m.input.Value())
		quadrant := domain.Quadrants[m.col]
		b := m.board
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.run("Task added", func(ctx context.Context) error {
			_, err := b.Add(ctx, text, due, quadrant)
			return err
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
		m.clampCursor()
	case "right", "l":
		if m.col < len(domain.Quadrants)-1 {
			m.col++
		}
		m.clampCursor()
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		m.row++
		m.clampCursor()
	case "r":
		m.loading = true
		return m, m.load()
	case "a":
		m.adding = true
		m.err = nil
		return m, m.input.Focus()
	case "esc":
		m.picked = nil
	case "d", "x":
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		quadrant := domain.Quadrants[m.col]
		b := m.board
		return m, m.run("Task deleted", func(ctx context.Context) error {
			return b.Remove(ctx, quadrant, task.ID)
		})
	case " ", "enter":
		if m.picked == nil {
			if task, ok := m.current(); ok {
				m.picked = &picked{id: task.ID, source: domain.Quadrants[m.col]}
			}
			return m, nil
		}
		return m.drop(domain.Quadrants[m.col])
	case "1", "2", "3", "4":
		target := domain.Quadrants[int(msg.String()[0]-'1')]
		if m.picked == nil {
			task, ok := m.current()
			if !ok {
				return m, nil
			}
			m.picked = &picked{id: task.ID, source: domain.Quadrants[m.col]}
		}
		return m.drop(target)
	}
	return m, nil
}

func (m BoardModel) drop(target domain.Quadrant) (tea.Model, tea.Cmd) {
	p := m.picked
	m.picked = nil
	if p.source == target {
		return m, nil
	}
	b := m.board
	return m, m.run("Moved to "+target.Title(), func(ctx context.Context) error {
		return b.Move(ctx, p.id, p.source, target)
	})
}

func (m BoardModel) current() (domain.Task, bool) {
	tasks := m.board.Snapshot()[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.row], true
}

func (m *BoardModel) clampCursor() {
	n := len(m.board.Snapshot()[m.col].Tasks)
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Eisenhower Matrix"))
	sb.WriteString("\n\n")

	columns := m.board.Snapshot()
	rendered := make([]string, 0, len(columns))
	for i, column := range columns {
		rendered = append(rendered, m.renderColumn(i, column))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1]))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], rendered[3]))
	sb.WriteString("\n")

	switch {
	case m.adding:
		sb.WriteString(fmt.Sprintf("New task in %s\n%s\n", columns[m.col].Title, m.input.View()))
	case m.loading:
		sb.WriteString(m.styles.Dim.Render("Loading tasks..."))
		sb.WriteString("\n")
	case m.err != nil:
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	case m.status != "":
		sb.WriteString(m.styles.Dim.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.footer(
		binding{"←→↑↓", "move"},
		binding{"space", "pick/drop"},
		binding{"1-4", "send to"},
		binding{"a", "add"},
		binding{"d", "delete"},
		binding{"r", "reload"},
		binding{"q", "quit"},
	))
	return sb.String()
}

func (m BoardModel) renderColumn(index int, column board.Column) string {
	style := m.styles.Column
	if index == m.col {
		style = m.styles.Active
	}

	lines := []string{m.styles.Title.Render(fmt.Sprintf("%d. %s", index+1, column.Title))}
	if len(column.Tasks) == 0 {
		lines = append(lines, m.styles.Dim.Render("No tasks"))
	}
	for row, task := range column.Tasks {
		line := task.Text
		if task.HasDeadline() {
			line += m.styles.Dim.Render(" (due " + task.Deadline.String() + ")")
		}
		switch {
		case m.picked != nil && m.picked.id == task.ID:
			line = m.styles.Picked.Render("» " + line)
		case index == m.col && row == m.row:
			line = m.styles.Selected.Render("> " + line)
		default:
			line = m.styles.Card.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// ParseTaskInput splits "text @YYYY-MM-DD" into text and optional deadline.
// A trailing "@word" that is not a date stays part of the text.
func ParseTaskInput(value string) (string, *domain.Date) {
	value = strings.TrimSpace(value)
	i := strings.LastIndex(value, " @")
	if i < 0 {
		return value, nil
	}
	due, err := domain.ParseDate(strings.TrimSpace(value[i+2:]))
	if err != nil {
		return value, nil
	}
	return strings.TrimSpace(value[:i]), &due
}
