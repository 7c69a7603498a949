package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/journal"
)

var (
	journalTag     string
	journalTitle   string
	journalContent string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalEditCmd)
	journalCmd.AddCommand(journalRemoveCmd)

	journalListCmd.Flags().StringVar(&journalTag, "tag", "", "only show journals whose tag contains this text")

	for _, c := range []*cobra.Command{journalAddCmd, journalEditCmd} {
		c.Flags().StringVar(&journalTitle, "title", "", "journal title")
		c.Flags().StringVar(&journalContent, "content", "", "journal body")
		c.Flags().StringVar(&journalTag, "tag", "", "journal tag")
	}
	_ = journalAddCmd.MarkFlagRequired("title")
}

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Write and browse journal entries",
	Long: `Write and browse journal entries. Ids may be shortened to any unique prefix.

Examples:
  focus journal add --title "Retro" --tag work --content "Shipped the board"
  focus journal list --tag work
  focus journal show 9c1e
  focus journal edit 9c1e --tag personal
  focus journal rm 9c1e`,
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journals, optionally filtered by tag",
	Args:    cobra.NoArgs,
	RunE:    runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one journal",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a journal",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a journal; omitted flags keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalEdit,
}

var journalRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a journal",
	Args:    cobra.ExactArgs(1),
	RunE:    runJournalRemove,
}

// loadJournals requires a session and fetches the list filtered by query.
func loadJournals(cmd *cobra.Command, query string) (*journal.Manager, error) {
	session, err := application.RequireSession()
	if err != nil {
		return nil, err
	}
	m := journal.New(application.API, session.User.ID, application.Logger.Named("journal"))
	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := m.Fetch(ctx, query); err != nil {
		return nil, err
	}
	return m, nil
}

func findJournal(m *journal.Manager, id string) (domain.Journal, error) {
	j, ok := m.Find(id)
	if !ok {
		return domain.Journal{}, fmt.Errorf("no single journal matches %q", id)
	}
	return j, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	m, err := loadJournals(cmd, journalTag)
	if err != nil {
		return fail(cmd, err)
	}
	visible := m.Visible()
	out := cmd.OutOrStdout()
	if len(visible) == 0 {
		fmt.Fprintln(out, "No journals found")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tEDITED\tTAG\tTITLE")
	for _, j := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(j.ID), domain.FormatDay(j.CreatedAt), domain.FormatDay(j.UpdatedAt), j.Tag, j.Title)
	}
	return w.Flush()
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	m, err := loadJournals(cmd, "")
	if err != nil {
		return fail(cmd, err)
	}
	j, err := findJournal(m, args[0])
	if err != nil {
		return fail(cmd, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, j.Title)
	fmt.Fprintln(out, strings.Repeat("=", len(j.Title)))
	if j.Tag != "" {
		fmt.Fprintf(out, "Tag: %s\n", j.Tag)
	}
	fmt.Fprintf(out, "Created: %s\n", domain.FormatDay(j.CreatedAt))
	if !j.UpdatedAt.IsZero() {
		fmt.Fprintf(out, "Last Edited: %s\n", domain.FormatDay(j.UpdatedAt))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, j.Content)
	return nil
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	m, err := loadJournals(cmd, "")
	if err != nil {
		return fail(cmd, err)
	}
	m.OpenNew()
	m.SetDraft(journal.Draft{Title: journalTitle, Content: journalContent, Tag: journalTag})

	ctx, cancel := requestContext(cmd)
	defer cancel()
	created, err := m.Submit(ctx)
	if err != nil {
		if msg := m.State().Error; msg != "" {
			return fail(cmd, fmt.Errorf("%s", msg))
		}
		return fail(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", shortID(created.ID))
	return nil
}

func runJournalEdit(cmd *cobra.Command, args []string) error {
	m, err := loadJournals(cmd, "")
	if err != nil {
		return fail(cmd, err)
	}
	j, err := findJournal(m, args[0])
	if err != nil {
		return fail(cmd, err)
	}
	if err := m.Open(j.ID); err != nil {
		return fail(cmd, err)
	}
	m.BeginEdit()

	draft := m.State().Draft
	flags := cmd.Flags()
	if flags.Changed("title") {
		draft.Title = journalTitle
	}
	if flags.Changed("content") {
		draft.Content = journalContent
	}
	if flags.Changed("tag") {
		draft.Tag = journalTag
	}
	m.SetDraft(draft)

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if _, err := m.Submit(ctx); err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Journal updated")
	return nil
}

func runJournalRemove(cmd *cobra.Command, args []string) error {
	m, err := loadJournals(cmd, "")
	if err != nil {
		return fail(cmd, err)
	}
	j, err := findJournal(m, args[0])
	if err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := m.Delete(ctx, j.ID); err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Journal deleted")
	return nil
}
