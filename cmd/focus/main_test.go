package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/board"
	"github.com/fastygo/focus/internal/config"
	"github.com/fastygo/focus/internal/server"
)

func startBackend(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{
		Storage:   config.StorageConfig{Driver: config.DriverMemory},
		JWT:       config.JWTConfig{Secret: "secret", Issuer: "focus", TTL: time.Hour},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 600, AuthBurst: 100},
		Context:   config.ContextConfig{RequestTimeout: time.Second, ShutdownTimeout: time.Second},
	}
	srv, err := server.New(context.Background(), cfg, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return "http://" + ln.Addr().String()
}

func writeClientConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`backend_url: %s
state_path: %s
request_timeout: 2s
log:
  level: error
`, backend, filepath.Join(dir, "state.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes one CLI invocation and closes the app so the next one can
// reopen the local store.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	if application != nil {
		require.NoError(t, application.Close())
		application = nil
	}
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	cfgPath := writeClientConfig(t, startBackend(t))

	out, err := run(t, cfgPath, "board")
	require.Error(t, err)
	assert.Contains(t, out, "focus login")

	out, err = run(t, cfgPath, "register",
		"--username", "alice", "--email", "alice@example.com",
		"--password", "passw0rd12!", "--confirm", "passw0rd12!")
	require.NoError(t, err, out)
	assert.Contains(t, out, "User registered successfully")

	out, err = run(t, cfgPath, "login", "--email", "alice@example.com", "--password", "passw0rd12!")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Welcome, alice")

	out, err = run(t, cfgPath, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice <alice@example.com>")

	out, err = run(t, cfgPath, "task", "add", "Renew", "passport", "--deadline", "2030-01-31", "-q", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, domain.QuadrantSchedule.Title())
	id := strings.Fields(out)[1]

	out, err = run(t, cfgPath, "board")
	require.NoError(t, err)
	assert.Contains(t, out, "Renew passport")
	assert.Contains(t, out, "2030-01-31")

	out, err = run(t, cfgPath, "task", "mv", id, "delegate")
	require.NoError(t, err, out)
	assert.Contains(t, out, domain.QuadrantDelegate.Title())

	out, err = run(t, cfgPath, "journal", "add", "--title", "Retro", "--tag", "Work", "--content", "Shipped")
	require.NoError(t, err, out)
	journalID := strings.Fields(out)[1]

	out, err = run(t, cfgPath, "journal", "list", "--tag", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Retro")
	assert.Contains(t, out, "EDITED")

	out, err = run(t, cfgPath, "journal", "list", "--tag", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "No journals found")

	out, err = run(t, cfgPath, "journal", "edit", journalID, "--tag", "home")
	require.NoError(t, err, out)

	out, err = run(t, cfgPath, "journal", "show", journalID)
	require.NoError(t, err)
	assert.Contains(t, out, "Tag: home")
	assert.Contains(t, out, "Shipped")
	today := domain.FormatDay(time.Now())
	assert.Contains(t, out, "Created: "+today)
	assert.Contains(t, out, "Last Edited: "+today)

	out, err = run(t, cfgPath, "journal", "rm", journalID)
	require.NoError(t, err, out)
	out, err = run(t, cfgPath, "task", "rm", id)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Task deleted")

	out, err = run(t, cfgPath, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = run(t, cfgPath, "whoami")
	assert.Error(t, err)
}

func TestCLI_RegisterRejectsWeakPassword(t *testing.T) {
	cfgPath := writeClientConfig(t, startBackend(t))

	out, err := run(t, cfgPath, "register",
		"--username", "bob", "--email", "bob@example.com",
		"--password", "password", "--confirm", "password")

	require.Error(t, err)
	assert.Contains(t, out, "Error:")
}

func TestCLI_Theme(t *testing.T) {
	cfgPath := writeClientConfig(t, "http://127.0.0.1:1")

	out, err := run(t, cfgPath, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = run(t, cfgPath, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = run(t, cfgPath, "theme", "blue")
	assert.Error(t, err)
}

func TestPrintBoard(t *testing.T) {
	due, err := domain.ParseDate("2030-05-01")
	require.NoError(t, err)
	columns := []board.Column{
		{Quadrant: domain.QuadrantDoFirst, Title: "Do First", Tasks: []domain.Task{
			{ID: "0123456789abcdef", Text: "File taxes", Deadline: &due},
		}},
		{Quadrant: domain.QuadrantSchedule, Title: "Schedule"},
	}

	var out bytes.Buffer
	printBoard(&out, columns)

	assert.Contains(t, out.String(), "1. Do First")
	assert.Contains(t, out.String(), "01234567")
	assert.NotContains(t, out.String(), "0123456789")
	assert.Contains(t, out.String(), "2030-05-01")
	assert.Contains(t, out.String(), "2. Schedule\n   (empty)")
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("alice\r\n"))

	assert.Equal(t, "preset", prompt(in, &out, "Username", "preset"))
	assert.Empty(t, out.String())

	assert.Equal(t, "alice", prompt(in, &out, "Username", ""))
	assert.Equal(t, "Username: ", out.String())

	assert.Empty(t, prompt(in, &out, "Email", ""))
}

func TestPromptSecret_PipedInputUsesLineReader(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	_, err = w.WriteString("s3cret12!\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var out bytes.Buffer
	assert.Equal(t, "s3cret12!", promptSecret(r, bufio.NewReader(r), &out, "Password", ""))
	assert.Equal(t, "Password: ", out.String())

	out.Reset()
	assert.Equal(t, "flag", promptSecret(r, bufio.NewReader(r), &out, "Password", "flag"))
	assert.Empty(t, out.String())
}
