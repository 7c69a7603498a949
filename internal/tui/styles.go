// Package tui renders the interactive board and the pomodoro timer with
// bubbletea.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/localstore"
)

const minColumnWidth = 36

// columnWidth fits the longest numbered quadrant heading on one line.
// lipgloss counts the horizontal padding inside the width.
func columnWidth() int {
	width := minColumnWidth
	for i, q := range domain.Quadrants {
		width = max(width, lipgloss.Width(fmt.Sprintf("%d. %s", i+1, q.Title()))+2)
	}
	return width
}

// Styles is the palette of one theme.
type Styles struct {
	Header    lipgloss.Style
	Column    lipgloss.Style
	Active    lipgloss.Style
	Title     lipgloss.Style
	Card      lipgloss.Style
	Selected  lipgloss.Style
	Picked    lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Clock     lipgloss.Style
	Ringing   lipgloss.Style
	FooterKey lipgloss.Style
	Footer    lipgloss.Style

	ProgressFrom string
	ProgressTo   string
}

func NewStyles(theme localstore.Theme) Styles {
	fg, dim, accent, border, alert := lipgloss.Color("235"), lipgloss.Color("244"), lipgloss.Color("25"), lipgloss.Color("250"), lipgloss.Color("160")
	from, to := "#2e7d32", "#f9a825"
	if theme == localstore.ThemeDark {
		fg, dim, accent, border, alert = lipgloss.Color("231"), lipgloss.Color("245"), lipgloss.Color("51"), lipgloss.Color("238"), lipgloss.Color("196")
		from, to = "#00ff87", "#ffd700"
	}

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(columnWidth())

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(accent).
			Bold(true).
			Padding(0, 1),
		Column:    column,
		Active:    column.BorderForeground(accent),
		Title:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		Card:      lipgloss.NewStyle().Foreground(fg),
		Selected:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Picked:    lipgloss.NewStyle().Foreground(alert).Bold(true).Underline(true),
		Dim:       lipgloss.NewStyle().Foreground(dim),
		Error:     lipgloss.NewStyle().Foreground(alert).Bold(true),
		Clock:     lipgloss.NewStyle().Foreground(fg).Bold(true).Padding(1, 2),
		Ringing:   lipgloss.NewStyle().Foreground(alert).Bold(true).Blink(true).Padding(1, 2),
		FooterKey: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Footer:    lipgloss.NewStyle().Foreground(dim).MarginTop(1),

		ProgressFrom: from,
		ProgressTo:   to,
	}
}

type binding struct {
	key  string
	help string
}

func (s Styles) footer(bindings ...binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += s.Dim.Render("  ")
		}
		out += s.FooterKey.Render(b.key) + s.Dim.Render(" "+b.help)
	}
	return s.Footer.Render(out)
}
