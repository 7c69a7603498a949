package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/focus/internal/localstore"
)

func init() {
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the colour theme",
	Long: `Show the current theme, or set it. The choice is kept in the local store
and survives logout.

Examples:
  focus theme
  focus theme dark
  focus theme toggle`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := application.Store
		var (
			theme localstore.Theme
			err   error
		)
		switch {
		case len(args) == 0:
			theme, err = store.Theme()
		case args[0] == "toggle":
			theme, err = store.ToggleTheme()
		default:
			theme, err = localstore.ParseTheme(args[0])
			if err == nil {
				err = store.SetTheme(theme)
			}
		}
		if err != nil {
			return fail(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

// currentTheme falls back to the light theme when the store cannot be read.
func currentTheme() localstore.Theme {
	theme, err := application.Store.Theme()
	if err != nil {
		return localstore.ThemeLight
	}
	return theme
}
