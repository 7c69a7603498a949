package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fastygo/focus/internal/pomodoro"
)

type tickMsg time.Time

// PomodoroModel drives a pomodoro.Timer from a one second tick.
type PomodoroModel struct {
	timer    *pomodoro.Timer
	styles   Styles
	logger   *zap.Logger
	bell     io.Writer
	progress progress.Model

	custom   bool
	input    textinput.Model
	err      error
	quitting bool
}

func NewPomodoroModel(timer *pomodoro.Timer, styles Styles, bell io.Writer, logger *zap.Logger) PomodoroModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bell == nil {
		bell = io.Discard
	}
	input := textinput.New()
	input.Placeholder = "MM:SS"
	input.CharLimit = 6
	input.Width = 8

	return PomodoroModel{
		timer:    timer,
		styles:   styles,
		logger:   logger,
		bell:     bell,
		progress: progress.New(progress.WithGradient(styles.ProgressFrom, styles.ProgressTo), progress.WithWidth(40)),
		input:    input,
	}
}

func (m PomodoroModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.timer.Tick() {
			m.logger.Info("pomodoro finished", zap.Duration("duration", m.timer.Initial()))
		}
		if m.timer.Ringing() {
			if _, err := io.WriteString(m.bell, pomodoro.Bell); err != nil {
				m.logger.Debug("failed to ring bell", zap.Error(err))
			}
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.progress.Width = max(min(msg.Width-8, 60), 10)
		return m, nil

	case tea.KeyMsg:
		if m.custom {
			return m.updateCustom(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m PomodoroModel) updateCustom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.custom = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		minutes, seconds, err := ParseClock(m.input.Value())
		if err == nil {
			err = m.timer.SetCustom(minutes, seconds)
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.custom = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PomodoroModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.timer.Ringing() {
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter", "esc":
			m.timer.Dismiss()
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ", "s":
		m.timer.Toggle()
	case "r":
		m.timer.Reset()
	case "enter", "esc":
		m.timer.Dismiss()
	case "c":
		m.custom = true
		m.err = nil
		return m, m.input.Focus()
	case "1", "2", "3", "4", "5":
		if err := m.timer.SelectPreset(pomodoro.Presets[int(key[0]-'1')]); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m PomodoroModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Pomodoro"))
	sb.WriteString("\n")

	clock := m.styles.Clock
	if m.timer.Ringing() {
		clock = m.styles.Ringing
	}
	sb.WriteString(clock.Render(m.timer.Format()))
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(m.timer.Progress()))
	sb.WriteString("\n\n")

	presets := make([]string, 0, len(pomodoro.Presets))
	for i, p := range pomodoro.Presets {
		label := fmt.Sprintf("%d:%s", i+1, pomodoro.FormatDuration(p))
		if p == m.timer.Initial() {
			label = m.styles.Selected.Render(label)
		} else {
			label = m.styles.Dim.Render(label)
		}
		presets = append(presets, label)
	}
	sb.WriteString(strings.Join(presets, "  "))
	sb.WriteString("\n")

	switch {
	case m.custom:
		sb.WriteString("Custom time: " + m.input.View() + "\n")
	case m.timer.Ringing():
		sb.WriteString(m.styles.Error.Render("Time is up! Press enter to dismiss."))
		sb.WriteString("\n")
	case m.timer.Running():
		sb.WriteString(m.styles.Dim.Render("Running"))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.styles.Dim.Render("Paused"))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.footer(
		binding{"space", "start/pause"},
		binding{"r", "reset"},
		binding{"1-5", "preset"},
		binding{"c", "custom"},
		binding{"q", "quit"},
	))
	return sb.String()
}

// ParseClock reads "MM:SS" or a bare minute count.
func ParseClock(value string) (int, int, error) {
	value = strings.TrimSpace(value)
	minutesPart, secondsPart, hasSeconds := strings.Cut(value, ":")

	minutes, err := strconv.Atoi(minutesPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minutes %q", minutesPart)
	}
	seconds := 0
	if hasSeconds {
		seconds, err = strconv.Atoi(secondsPart)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid seconds %q", secondsPart)
		}
	}
	return minutes, seconds, nil
}
