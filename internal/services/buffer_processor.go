package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/infrastructure/buffer"
	"github.com/fastygo/focus/internal/metrics"
	"github.com/fastygo/focus/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// BufferProcessor replays buffered task and journal writes against Postgres.
type BufferProcessor struct {
	store       *buffer.Store
	monitor     ConnectionHealth
	taskRepo    repository.TaskRepository
	journalRepo repository.JournalRepository
	logger      *zap.Logger
	cron        *cron.Cron
	cfg         ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	taskRepo repository.TaskRepository,
	journalRepo repository.JournalRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:       store,
		monitor:     monitor,
		taskRepo:    taskRepo,
		journalRepo: journalRepo,
		logger:      logger,
		cfg:         cfg,
		cron:        cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := bp.Drain(ctx); err != nil {
			bp.logger.Error("buffer drain failed", zap.Error(err))
		}
	})
	_, _ = bp.cron.AddFunc("@hourly", func() {
		purged, err := bp.store.Purge(time.Now().Add(-bp.cfg.Retention))
		if err != nil {
			bp.logger.Error("buffer purge failed", zap.Error(err))
			return
		}
		if purged > 0 {
			bp.logger.Warn("purged expired buffered writes", zap.Int("count", purged))
		}
	})

	return bp
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("buffer processor started")
}

// Stop gracefully stops the scheduler.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Info("buffer processor stopped")
}

// Drain replays pending writes in arrival order. A transient failure stops
// the pass so later writes to the same record never overtake it.
func (bp *BufferProcessor) Drain(ctx context.Context) error {
	if bp == nil || bp.store == nil {
		return nil
	}
	if bp.monitor != nil && !bp.monitor.IsOnline() {
		bp.logger.Debug("skipping buffer drain (offline)")
		return nil
	}
	defer func() { metrics.BufferPending.Set(float64(bp.Size())) }()

	writes, err := bp.store.Peek(bp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, w := range writes {
		err := bp.apply(ctx, w)
		if err == nil {
			if err := bp.store.Ack(w.Seq); err != nil {
				return err
			}
			metrics.BufferReplayTotal.WithLabelValues(string(w.Entity), metrics.OutcomeOK).Inc()
			continue
		}

		fields := []zap.Field{
			zap.Uint64("seq", w.Seq),
			zap.String("entity", string(w.Entity)),
			zap.String("operation", string(w.Operation)),
			zap.Int("attempts", w.Attempts+1),
			zap.Error(err),
		}
		if isPermanent(err) || w.Attempts+1 >= bp.cfg.MaxRetries {
			bp.logger.Warn("dropping buffered write", fields...)
			if err := bp.store.Ack(w.Seq); err != nil {
				return err
			}
			metrics.BufferReplayTotal.WithLabelValues(string(w.Entity), metrics.OutcomeDropped).Inc()
			continue
		}

		bp.logger.Error("buffered write failed, will retry", fields...)
		if _, err := bp.store.Retry(w); err != nil {
			return err
		}
		metrics.BufferReplayTotal.WithLabelValues(string(w.Entity), metrics.OutcomeRequeued).Inc()
		return nil
	}
	return nil
}

// Submit applies w immediately when the database is reachable and queues
// it otherwise. Permanent failures are returned and never queued.
func (bp *BufferProcessor) Submit(ctx context.Context, w buffer.Write) error {
	if bp == nil || bp.store == nil {
		return errors.New("buffer processor not configured")
	}

	if bp.monitor == nil || bp.monitor.IsOnline() {
		err := bp.apply(ctx, w)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return err
		}
		bp.logger.Warn("write failed, buffering", zap.String("entity", string(w.Entity)), zap.Error(err))
	}
	if _, err := bp.store.Append(w); err != nil {
		return err
	}
	metrics.BufferPending.Set(float64(bp.Size()))
	return nil
}

// Size returns the number of buffered writes.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (bp *BufferProcessor) apply(ctx context.Context, w buffer.Write) error {
	switch w.Entity {
	case buffer.EntityTask:
		task, err := w.Task()
		if err != nil {
			return err
		}
		switch w.Operation {
		case buffer.OperationCreate:
			_, err = bp.taskRepo.Create(ctx, task)
		case buffer.OperationUpdate:
			err = bp.taskRepo.Update(ctx, task)
		case buffer.OperationDelete:
			err = bp.taskRepo.Delete(ctx, task.UserID, task.ID)
		}
		return err

	case buffer.EntityJournal:
		journal, err := w.Journal()
		if err != nil {
			return err
		}
		switch w.Operation {
		case buffer.OperationCreate:
			_, err = bp.journalRepo.Create(ctx, journal)
		case buffer.OperationUpdate:
			err = bp.journalRepo.Update(ctx, journal)
		case buffer.OperationDelete:
			err = bp.journalRepo.Delete(ctx, journal.UserID, journal.ID)
		}
		return err
	}
	return fmt.Errorf("unsupported entity %q", w.Entity)
}

// isPermanent reports errors that a replay can never fix.
func isPermanent(err error) bool {
	return domain.IsDomainError(err, domain.ErrCodeNotFound) || domain.IsDomainError(err, domain.ErrCodeInvalid)
}
