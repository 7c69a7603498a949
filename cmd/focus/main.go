// Package main implements the focus terminal client: an Eisenhower board,
// a pomodoro timer and a journal backed by the focus REST server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/focus/internal/app"
)

var (
	// configPath overrides the default client config location
	configPath string
	version    = "dev"

	application *app.App
)

func main() {
	err := rootCmd.Execute()
	if application != nil {
		_ = application.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "Prioritise tasks, time focus sessions and keep a journal",
	Long: `focus is a terminal client for the focus server.

It keeps your tasks in an Eisenhower matrix, runs pomodoro countdowns and
stores tagged journal entries.

Examples:
  # Sign in once, the token is cached locally
  focus login --email me@example.com

  # Open the interactive board
  focus board -i

  # Start a timer
  focus pomodoro`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open(configPath)
		if err != nil {
			return fail(cmd, err)
		}
		application = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "client config file (default ~/.config/focus/config.yaml)")
}

// fail prints a short message for the user and returns err so the exit
// status is non-zero.
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return err
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := 10 * time.Second
	if application != nil && application.Config.RequestTimeout > 0 {
		timeout = application.Config.RequestTimeout
	}
	return context.WithTimeout(cmd.Context(), timeout)
}
