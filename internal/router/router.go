package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"github.com/valyala/fasthttp/pprofhandler"

	apiHandler "github.com/fastygo/focus/api/handler"
)

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Task    *apiHandler.TaskHandler
	Journal *apiHandler.JournalHandler
	Health  *apiHandler.HealthHandler
}

type Options struct {
	// Auth guards every /api route except login and register.
	Auth Middleware
	// RateLimit guards login and register. Optional.
	RateLimit     Middleware
	EnableMetrics bool
	EnablePprof   bool
}

func New(handlers Handlers, opts Options) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	auth := opts.Auth
	limit := opts.RateLimit
	if limit == nil {
		limit = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r.GET("/health", handlers.Health.Check)
	if opts.EnableMetrics {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	}
	if opts.EnablePprof {
		r.ANY("/debug/pprof/{profile:*}", pprofhandler.PprofHandler)
	}

	api := r.Group("/api")

	// Auth routes
	api.POST("/auth/register", limit(handlers.Auth.Register))
	api.POST("/auth/login", limit(handlers.Auth.Login))
	api.POST("/auth/logout", auth(handlers.Auth.Logout))

	// Protected routes
	api.GET("/tasks", auth(handlers.Task.GetTasks))
	api.POST("/tasks", auth(handlers.Task.CreateTask))
	api.PUT("/tasks/{id}", auth(handlers.Task.UpdateTask))
	api.DELETE("/tasks/{id}", auth(handlers.Task.DeleteTask))

	api.GET("/journals", auth(handlers.Journal.GetJournals))
	api.POST("/journals", auth(handlers.Journal.CreateJournal))
	api.PUT("/journals/{id}", auth(handlers.Journal.UpdateJournal))
	api.DELETE("/journals/{id}", auth(handlers.Journal.DeleteJournal))

	return r
}
