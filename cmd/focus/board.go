package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/board"
	"github.com/fastygo/focus/internal/tui"
)

var (
	boardInteractive bool

	taskDeadline string
	taskQuadrant string
)

func init() {
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	taskCmd.AddCommand(taskMoveCmd)

	boardCmd.Flags().BoolVarP(&boardInteractive, "interactive", "i", false, "open the interactive board")

	taskAddCmd.Flags().StringVar(&taskDeadline, "deadline", "", "due date as YYYY-MM-DD")
	taskAddCmd.Flags().StringVarP(&taskQuadrant, "quadrant", "q", string(domain.QuadrantDoFirst), "doFirst, schedule, delegate, dontDo or 1-4")
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the Eisenhower matrix",
	Long: `Print your tasks grouped by quadrant, or open the interactive board.

Examples:
  focus board
  focus board -i`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Add, remove or move tasks",
	Long: `Manage tasks without opening the board. Task ids may be shortened to any
unique prefix shown by "focus board".

Examples:
  focus task add "Renew passport" --deadline 2030-01-31 --quadrant schedule
  focus task mv 3f2a 4
  focus task rm 3f2a`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRemove,
}

var taskMoveCmd = &cobra.Command{
	Use:     "mv <id> <quadrant>",
	Aliases: []string{"move"},
	Short:   "Move a task to another quadrant",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskMove,
}

// loadBoard requires a session and fetches the task list.
func loadBoard(cmd *cobra.Command) (*board.Board, error) {
	if _, err := application.RequireSession(); err != nil {
		return nil, err
	}
	b := board.New(application.API)
	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := b.Load(ctx); err != nil {
		application.Logger.Error("error fetching tasks", zap.Error(err))
		return nil, err
	}
	return b, nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	if boardInteractive {
		if _, err := application.RequireSession(); err != nil {
			return fail(cmd, err)
		}
		model := tui.NewBoardModel(board.New(application.API), tui.NewStyles(currentTheme()), application.Logger.Named("board"))
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fail(cmd, err)
		}
		return nil
	}

	b, err := loadBoard(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	printBoard(cmd.OutOrStdout(), b.Snapshot())
	return nil
}

func printBoard(out io.Writer, columns []board.Column) {
	for i, column := range columns {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, column.Title)
		if len(column.Tasks) == 0 {
			fmt.Fprintln(out, "   (empty)")
			continue
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, task := range column.Tasks {
			due := ""
			if task.HasDeadline() {
				due = task.Deadline.String()
			}
			fmt.Fprintf(w, "   %s\t%s\t%s\n", shortID(task.ID), task.Text, due)
		}
		_ = w.Flush()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	quadrant, err := domain.ParseQuadrant(taskQuadrant)
	if err != nil {
		return fail(cmd, err)
	}
	var deadline *domain.Date
	if taskDeadline != "" {
		due, err := domain.ParseDate(taskDeadline)
		if err != nil {
			return fail(cmd, err)
		}
		deadline = &due
	}
	if _, err := application.RequireSession(); err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	task, err := board.New(application.API).Add(ctx, strings.Join(args, " "), deadline, quadrant)
	if err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", shortID(task.ID), task.Quadrant.Title())
	return nil
}

func findTask(b *board.Board, id string) (domain.Task, error) {
	task, ok := b.Find(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("no single task matches %q", id)
	}
	return task, nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	b, err := loadBoard(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	task, err := findTask(b, args[0])
	if err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := b.Remove(ctx, task.Quadrant, task.ID); err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	target, err := domain.ParseQuadrant(args[1])
	if err != nil {
		return fail(cmd, err)
	}
	b, err := loadBoard(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	task, err := findTask(b, args[0])
	if err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := b.Move(ctx, task.ID, task.Quadrant, target); err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s\n", target.Title())
	return nil
}
