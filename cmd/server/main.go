package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/fastygo/focus/internal/config"
	"github.com/fastygo/focus/internal/server"
	"github.com/fastygo/focus/internal/services/lifecycle"
	"github.com/fastygo/focus/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   cfg.Logger.Output,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	signals.Listen(cancel)

	srv, err := server.New(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("startup failed", zap.Error(err))
	}

	if err := srv.Run(appCtx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
