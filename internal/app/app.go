// Package app wires the terminal client: configuration, logging, the local
// store and the API client. It owns the login session shared by every
// screen.
package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/focus/internal/config"
	"github.com/fastygo/focus/internal/localstore"
	"github.com/fastygo/focus/internal/services/lifecycle"
	"github.com/fastygo/focus/internal/validate"
	"github.com/fastygo/focus/pkg/apiclient"
	"github.com/fastygo/focus/pkg/logger"
)

type App struct {
	Config *config.ClientConfig
	Logger *zap.Logger
	Store  *localstore.Store
	API    *apiclient.Client

	lifecycle *lifecycle.Manager
}

// Open loads the client config at path (empty for the default) and opens
// the local store.
func Open(path string) (*App, error) {
	cfg, err := config.LoadClient(path)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		Output:   cfg.Log.Output,
	})
	if err != nil {
		return nil, err
	}
	return New(cfg, log)
}

// New builds an App from an already loaded config. Extra options are
// passed to the API client.
func New(cfg *config.ClientConfig, log *zap.Logger, opts ...apiclient.Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	manager := lifecycle.New(0, log)
	manager.Register("logger", func(context.Context) error {
		_ = log.Sync()
		return nil
	})

	store, err := localstore.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}
	manager.RegisterCloser("localstore", store)

	opts = append([]apiclient.Option{
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithLogger(log.Named("api")),
	}, opts...)

	return &App{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		API:       apiclient.New(cfg.BackendURL, opts...),
		lifecycle: manager,
	}, nil
}

func (a *App) Close() error {
	return a.lifecycle.Shutdown(context.Background())
}

// RequireSession loads the cached login and arms the API client with its
// token. Screens that need a user call this first.
func (a *App) RequireSession() (*localstore.Session, error) {
	session, err := a.Store.LoadSession()
	if err != nil {
		return nil, err
	}
	a.API.SetToken(session.Token)
	return session, nil
}

// Login authenticates and caches token and user.
func (a *App) Login(ctx context.Context, email, password string) (*localstore.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &validate.Error{Message: "All fields are required"}
	}

	result, err := a.API.Login(ctx, email, password)
	if err != nil {
		a.Logger.Error("login error", zap.Error(err))
		return nil, err
	}
	if result.User == nil || result.Token == "" {
		return nil, errors.New("login response missing token or user")
	}

	session := localstore.Session{Token: result.Token, User: *result.User}
	if err := a.Store.SaveSession(session); err != nil {
		return nil, err
	}
	a.API.SetToken(session.Token)
	return &session, nil
}

// Register validates the form locally and creates the account.
func (a *App) Register(ctx context.Context, form validate.Registration) (string, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if err := form.Check(); err != nil {
		return "", err
	}

	msg, err := a.API.Register(ctx, apiclient.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		a.Logger.Error("register error", zap.Error(err))
		return "", err
	}
	return msg, nil
}

// Logout revokes the server session when possible and always forgets the
// local one.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.RequireSession(); err == nil {
		if err := a.API.Logout(ctx); err != nil {
			a.Logger.Warn("server logout failed", zap.Error(err))
		}
	}
	a.API.SetToken("")
	return a.Store.ClearSession()
}
