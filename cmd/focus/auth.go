package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fastygo/focus/internal/validate"
)

var (
	authEmail    string
	authPassword string
	authUsername string
	authConfirm  string
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when empty)")

	registerCmd.Flags().StringVar(&authUsername, "username", "", "username, at most 20 characters")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "password (prompted when empty)")
	registerCmd.Flags().StringVar(&authConfirm, "confirm", "", "password confirmation (prompted when empty)")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache the session token",
	Long: `Sign in with email and password. Missing values are prompted for.

Examples:
  focus login --email me@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account. Passwords need at least 8 characters with a letter,
two digits and one of @$!%*?&.

Examples:
  focus register --username alice --email alice@example.com`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the cached session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := application.Logout(ctx); err != nil {
			return fail(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := application.RequireSession()
		if err != nil {
			return fail(cmd, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", session.User.Username, session.User.Email)
		return nil
	},
}

func runLogin(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	email := prompt(in, out, "Email", authEmail)
	password := promptSecret(cmd.InOrStdin(), in, out, "Password", authPassword)

	ctx, cancel := requestContext(cmd)
	defer cancel()
	session, err := application.Login(ctx, email, password)
	if err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintf(out, "Welcome, %s\n", session.User.Username)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	form := validate.Registration{
		Username: prompt(in, out, "Username", authUsername),
		Email:    prompt(in, out, "Email", authEmail),
		Password: promptSecret(cmd.InOrStdin(), in, out, "Password", authPassword),
	}
	form.ConfirmPassword = promptSecret(cmd.InOrStdin(), in, out, "Confirm password", authConfirm)

	ctx, cancel := requestContext(cmd)
	defer cancel()
	msg, err := application.Register(ctx, form)
	if err != nil {
		return fail(cmd, err)
	}
	fmt.Fprintln(out, msg)
	fmt.Fprintln(out, "Run `focus login` to sign in.")
	return nil
}

// prompt returns value when set and otherwise reads one line from in.
func prompt(in *bufio.Reader, out io.Writer, label, value string) string {
	if value != "" {
		return value
	}
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// promptSecret reads a password without echo when stdin is a terminal.
// Piped input falls back to the line reader.
func promptSecret(stdin io.Reader, in *bufio.Reader, out io.Writer, label, value string) string {
	if value != "" {
		return value
	}
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(in, out, label, "")
	}
	fmt.Fprintf(out, "%s: ", label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return ""
	}
	return string(secret)
}
