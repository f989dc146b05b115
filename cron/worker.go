package cron

import (
	"context"
	"fmt"
	"time"

	"matehub/services/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeExpireSweep is the asynq task that auto-cancels ended paid transactions.
const TypeExpireSweep = "transaction:expire_sweep"

// sweepTimeout bounds one sweep; a batch of refunds must finish well inside the cadence.
const sweepTimeout = 4 * time.Minute

// SweepWorkerConfig configures the asynq-driven expiry sweep.
type SweepWorkerConfig struct {
	Redis    asynq.RedisClientOpt
	CronSpec string
	Location *time.Location
}

// NewSweepTask builds the periodic sweep task. Failed sweeps are not
// retried; the next tick picks up whatever is still paid.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeExpireSweep, nil,
		asynq.MaxRetry(0),
		asynq.Timeout(sweepTimeout),
		asynq.Unique(sweepTimeout),
	)
}

// HandleSweepTask runs one sweep per task.
func HandleSweepTask(sweeper booking.Sweeper, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		report, err := sweeper.SweepExpired(ctx)
		if err != nil {
			logger.Error("[SweepWorker] sweep failed", zap.Error(err))
			return err
		}
		if report.Found > 0 {
			logger.Info("[SweepWorker] sweep complete",
				zap.Int("found", report.Found),
				zap.Int("refunded", report.Refunded),
				zap.Int("failed", report.Failed))
		}
		return nil
	}
}

// SweepWorker owns the asynq scheduler that enqueues sweeps and the server that runs them.
type SweepWorker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	logger    *zap.Logger
}

// StartSweepWorker registers the sweep on cfg.CronSpec and starts processing.
func StartSweepWorker(cfg SweepWorkerConfig, sweeper booking.Sweeper, logger *zap.Logger) (*SweepWorker, error) {
	sugar := logger.Sugar()

	scheduler := asynq.NewScheduler(cfg.Redis, &asynq.SchedulerOpts{
		Location: cfg.Location,
		Logger:   sugar,
	})
	entryID, err := scheduler.Register(cfg.CronSpec, NewSweepTask())
	if err != nil {
		return nil, fmt.Errorf("register sweep on %q: %w", cfg.CronSpec, err)
	}

	server := asynq.NewServer(cfg.Redis, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
		Logger:      sugar,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireSweep, HandleSweepTask(sweeper, logger))

	const maxAttempts = 5
	for attempts := 1; ; attempts++ {
		err := server.Start(mux)
		if err == nil {
			break
		}
		logger.Warn("[SweepWorker] failed to start worker",
			zap.Int("attempt", attempts), zap.Error(err))
		if attempts == maxAttempts {
			return nil, fmt.Errorf("start sweep worker: %w", err)
		}
		time.Sleep(time.Duration(attempts*2) * time.Second)
	}

	if err := scheduler.Start(); err != nil {
		server.Shutdown()
		return nil, fmt.Errorf("start sweep scheduler: %w", err)
	}

	logger.Info("[SweepWorker] started",
		zap.String("cron", cfg.CronSpec),
		zap.String("entryId", entryID))
	return &SweepWorker{scheduler: scheduler, server: server, logger: logger}, nil
}

// Shutdown stops enqueuing and waits for a running sweep to finish.
func (w *SweepWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("[SweepWorker] stopped")
}
