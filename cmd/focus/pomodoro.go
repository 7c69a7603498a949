package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fastygo/focus/internal/pomodoro"
	"github.com/fastygo/focus/internal/tui"
)

var pomodoroMinutes int

func init() {
	rootCmd.AddCommand(pomodoroCmd)
	pomodoroCmd.Flags().IntVarP(&pomodoroMinutes, "minutes", "m", 0, "start immediately with a custom length")
}

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"timer"},
	Short:   "Run a pomodoro countdown",
	Long: `Open the pomodoro timer. It starts at 25:00; presets 1-5 pick 15, 30, 45,
60 or 75 minutes and c enters a custom MM:SS up to 180 minutes. The
terminal bell rings until the alarm is dismissed.

Examples:
  focus pomodoro
  focus pomodoro -m 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timer := pomodoro.New()
		if pomodoroMinutes != 0 {
			if err := timer.SetCustom(pomodoroMinutes, 0); err != nil {
				return fail(cmd, err)
			}
		}

		model := tui.NewPomodoroModel(timer, tui.NewStyles(currentTheme()), cmd.OutOrStdout(), application.Logger.Named("pomodoro"))
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fail(cmd, err)
		}
		if timer.Remaining() < timer.Initial() {
			cmd.Printf("Focused for %s\n", pomodoro.FormatDuration(timer.Initial()-timer.Remaining()))
		}
		return nil
	},
}
