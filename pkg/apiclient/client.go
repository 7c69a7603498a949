// Package apiclient is the HTTP client of the focus REST API.
package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
)

// Client talks to the focus backend. It is safe for concurrent use; the
// bearer token can be swapped with SetToken after login.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying fasthttp client, e.g. to dial an
// in-memory listener in tests.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout caps each request. Non-positive values keep the 10s default.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithLogger sets the logger for transport failures.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithToken starts the client with a stored bearer token.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &fasthttp.Client{
			Name:                "focus-cli",
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	return c
}

// SetToken replaces the bearer token sent on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends body as JSON and decodes a 2xx reply into out. Non-2xx replies
// become *APIError; transport failures wrap ErrUnreachable.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, body, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")

	if authenticated {
		token := c.Token()
		if token == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &transportError{err: err}
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: status}
		var payload struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if err := json.Unmarshal(resp.Body(), &payload); err == nil {
			apiErr.Message = payload.Message
			apiErr.Code = payload.Code
		}
		c.logger.Debug("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

type messageResponse struct {
	Message string `json:"message"`
}

// Session is what a successful login yields and what the local store keeps.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a session. The caller decides where the
// token is kept and calls SetToken.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/auth/login", false, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. It returns the backend's confirmation message.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	var out messageResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/api/auth/register", false, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Logout revokes the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, fasthttp.MethodPost, "/api/auth/logout", true, nil, nil)
}
