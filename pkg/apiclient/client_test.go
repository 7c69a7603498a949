package apiclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/config"
	"github.com/fastygo/focus/internal/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.Config{
		Storage:   config.StorageConfig{Driver: config.DriverMemory},
		JWT:       config.JWTConfig{Secret: "secret", Issuer: "focus", TTL: time.Hour},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 600, AuthBurst: 100},
		Context:   config.ContextConfig{RequestTimeout: time.Second, ShutdownTimeout: time.Second},
	}
	srv, err := server.New(context.Background(), cfg, nil)
	require.NoError(t, err)

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	httpClient := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	return New("http://focus.test/", WithHTTPClient(httpClient), WithTimeout(time.Second))
}

func signIn(t *testing.T, c *Client) *Session {
	t.Helper()
	ctx := context.Background()
	_, err := c.Register(ctx, RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "passw0rd12!"})
	require.NoError(t, err)
	session, err := c.Login(ctx, "bob@example.com", "passw0rd12!")
	require.NoError(t, err)
	c.SetToken(session.Token)
	return session
}

func TestClient_LoginSurfacesBackendMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.True(t, IsStatus(err, fasthttp.StatusUnauthorized))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestClient_RegisterValidationMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Register(context.Background(), RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password must be at least 8 characters long")
}

func TestClient_TaskLifecycle(t *testing.T) {
	c := newTestClient(t)
	signIn(t, c)
	ctx := context.Background()

	due := domain.NewDate(time.Date(2031, 5, 6, 0, 0, 0, 0, time.UTC))
	created, err := c.CreateTask(ctx, NewTask{Text: "plan", Deadline: &due, Quadrant: domain.QuadrantDoFirst})
	require.NoError(t, err)
	require.True(t, created.HasDeadline())
	assert.Equal(t, "2031-05-06", created.Deadline.String())

	moved, err := c.MoveTask(ctx, created.ID, domain.QuadrantDelegate)
	require.NoError(t, err)
	assert.Equal(t, domain.QuadrantDelegate, moved.Quadrant)
	assert.Equal(t, "plan", moved.Text)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.QuadrantDelegate, tasks[0].Quadrant)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	err = c.DeleteTask(ctx, created.ID)
	assert.True(t, IsStatus(err, fasthttp.StatusNotFound))
}

func TestClient_JournalLifecycle(t *testing.T) {
	c := newTestClient(t)
	session := signIn(t, c)
	ctx := context.Background()

	created, err := c.CreateJournal(ctx, JournalInput{Title: "morning", Content: "coffee", Tag: "Life", UserID: session.User.ID})
	require.NoError(t, err)

	updated, err := c.UpdateJournal(ctx, created.ID, JournalInput{Title: "evening", Content: "tea", Tag: "life"})
	require.NoError(t, err)
	assert.Equal(t, "evening", updated.Title)

	journals, err := c.ListJournals(ctx)
	require.NoError(t, err)
	require.Len(t, journals, 1)

	require.NoError(t, c.DeleteJournal(ctx, created.ID))
}

func TestClient_LogoutRevokesToken(t *testing.T) {
	c := newTestClient(t)
	signIn(t, c)
	ctx := context.Background()

	require.NoError(t, c.Logout(ctx))
	_, err := c.ListTasks(ctx)
	assert.True(t, IsStatus(err, fasthttp.StatusUnauthorized))
}

func TestClient_NoSession(t *testing.T) {
	c := New("http://focus.test")
	_, err := c.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_Unreachable(t *testing.T) {
	httpClient := &fasthttp.Client{Dial: func(string) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}}
	c := New("http://focus.test", WithHTTPClient(httpClient))

	_, err := c.Login(context.Background(), "a@b.c", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, "Failed to connect to server", err.Error())
}
