package cron

import (
	"context"
	"time"

	"matehub/services/booking"

	"go.uber.org/zap"
)

// TickerScheduler runs the expiry sweep in-process on a fixed interval.
type TickerScheduler struct {
	sweeper  booking.Sweeper
	interval time.Duration
	logger   *zap.Logger
}

func NewTickerScheduler(sweeper booking.Sweeper, interval time.Duration, logger *zap.Logger) *TickerScheduler {
	return &TickerScheduler{sweeper: sweeper, interval: interval, logger: logger}
}

// Start blocks until ctx is cancelled.
func (s *TickerScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweep ticker started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweep ticker stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *TickerScheduler) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	report, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if report.Found > 0 {
		s.logger.Info("expiry sweep complete",
			zap.Int("found", report.Found),
			zap.Int("refunded", report.Refunded),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed))
	}
}
