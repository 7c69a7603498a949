package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/focus/api/handler"
	"github.com/fastygo/focus/internal/config"
	"github.com/fastygo/focus/internal/infrastructure/buffer"
	"github.com/fastygo/focus/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/focus/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/focus/internal/infrastructure/redis"
	"github.com/fastygo/focus/internal/middleware"
	"github.com/fastygo/focus/internal/router"
	"github.com/fastygo/focus/internal/services"
	"github.com/fastygo/focus/internal/services/lifecycle"
	"github.com/fastygo/focus/pkg/httpcontext"
	"github.com/fastygo/focus/repository"
	"github.com/fastygo/focus/repository/memory"
	"github.com/fastygo/focus/repository/postgres"
	redisRepo "github.com/fastygo/focus/repository/redis"
	"github.com/fastygo/focus/usecase"
	authUC "github.com/fastygo/focus/usecase/auth"
	journalUC "github.com/fastygo/focus/usecase/journal"
	taskUC "github.com/fastygo/focus/usecase/task"
)

// Server is the assembled HTTP API with its backing stores.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	http      *fasthttp.Server
	lifecycle *lifecycle.Manager
}

type stores struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	journals repository.JournalRepository
	sessions repository.SessionRepository
	buffer   usecase.OperationBuffer
	monitor  *monitor.Monitor
}

// New connects the configured storage driver and builds the router. On
// error everything opened so far is released.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	manager := lifecycle.New(cfg.Context.ShutdownTimeout, logger)

	var (
		st  *stores
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		st = memoryStores(manager, logger)
	default:
		st, err = postgresStores(ctx, cfg, manager, logger)
	}
	if err != nil {
		_ = manager.Shutdown(context.Background())
		return nil, err
	}

	tokens := authUC.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	authUseCase := authUC.New(st.users, st.sessions, tokens, logger)
	taskUseCase := taskUC.New(st.tasks, st.buffer, logger)
	journalUseCase := journalUC.New(st.journals, st.buffer, logger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, logger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, logger),
		Journal: apiHandler.NewJournalHandler(journalUseCase, ctxAdapter, logger),
		Health:  apiHandler.NewHealthHandler(st.monitor, ctxAdapter, logger),
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	r := router.New(handlers, router.Options{
		Auth:          middleware.JWTAuth(cfg.JWT.Secret, authUseCase, logger),
		RateLimit:     limiter.Middleware,
		EnableMetrics: cfg.HTTP.EnableMetrics,
		EnablePprof:   cfg.HTTP.EnablePprof,
	})

	handler := r.Handler
	if cfg.HTTP.EnableMetrics {
		handler = middleware.Metrics(handler)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &fasthttp.Server{
			Handler:      handler,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			Concurrency:  cfg.HTTP.MaxConn,
			Name:         cfg.AppName,
		},
		lifecycle: manager,
	}, nil
}

func memoryStores(manager *lifecycle.Manager, logger *zap.Logger) *stores {
	store := memory.NewStore()
	mon := monitor.New(config.DriverMemory, nil, nil, nil, 30*time.Second, logger)
	mon.Start()
	manager.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})
	logger.Warn("using in-memory storage, data is lost on restart")
	return &stores{
		users:    store.Users(),
		tasks:    store.Tasks(),
		journals: store.Journals(),
		sessions: store.Sessions(),
		monitor:  mon,
	}
}

func postgresStores(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*stores, error) {
	if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, logger); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	manager.Register("postgres", func(context.Context) error {
		pgInfra.Close(pool, logger)
		return nil
	})

	st := &stores{
		users:    postgres.NewUserRepository(pool),
		tasks:    postgres.NewTaskRepository(pool),
		journals: postgres.NewJournalRepository(pool),
	}

	var redisProbe monitor.Pinger
	redisClient, err := redisInfra.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if redisClient != nil {
		manager.RegisterCloser("redis", redisClient)
		st.sessions = redisRepo.NewSessionRepository(redisClient, cfg.JWT.TTL)
		redisProbe = monitor.PingFunc(redisInfra.Pinger(redisClient))
	} else {
		logger.Warn("REDIS_URL not set, sessions are kept in process")
		st.sessions = memory.NewStore().Sessions()
	}

	bufferStore, err := buffer.Open(cfg.Buffer.Path)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	manager.RegisterCloser("buffer", bufferStore)

	mon := monitor.New(config.DriverPostgres, pool, redisProbe, bufferStore, 10*time.Second, logger)
	mon.Start()
	manager.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})
	st.monitor = mon

	processor := services.NewBufferProcessor(
		bufferStore,
		mon,
		st.tasks,
		st.journals,
		logger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
		},
	)
	processor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		processor.Stop(ctx)
		return nil
	})
	st.buffer = services.NewBufferBridge(processor)

	return st, nil
}

// Handler exposes the root request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.http.Handler
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.http.Serve(ln)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// everything down.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started",
			zap.String("address", s.cfg.Address()),
			zap.String("driver", s.cfg.Storage.Driver))
		errCh <- s.http.ListenAndServe(s.cfg.Address())
	}()

	select {
	case err := <-errCh:
		_ = s.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown stops the listener and then every backing store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.lifecycle.Register("http_server", func(ctx context.Context) error {
		return s.http.ShutdownWithContext(ctx)
	})
	return s.lifecycle.Shutdown(ctx)
}
