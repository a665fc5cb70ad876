package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/go-co-op/gocron"
)

// Backfiller は音声URLのバックフィルを実行します (MaintenanceService が満たす)
type Backfiller interface {
	BackfillMissingAudio(ctx context.Context, limit int) (*model.EnrichmentReport, error)
}

// Scheduler は enrichment.interval ごとにバックフィルを実行します
type Scheduler struct {
	scheduler  *gocron.Scheduler
	backfiller Backfiller
	interval   time.Duration
	limit      int
	logger     *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(backfiller Backfiller, cfg config.EnrichmentConfig, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		backfiller: backfiller,
		interval:   cfg.Interval,
		limit:      cfg.BackfillLimit,
		logger:     logger.With(slog.String("component", "scheduler")),
	}
}

// Start は最初の実行を interval 後に予約して非同期で動かします。
// 前回の実行が終わっていなければ次の実行はスキップされます。
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("scheduler: enrichment interval must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("scheduler: already started")
	}
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run, jobCtx); err != nil {
		cancel()
		s.cancel = nil
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("Audio backfill scheduled", slog.Duration("interval", s.interval), slog.Int("limit", s.limit))
	return nil
}

// Stop は実行中のジョブをキャンセルしてスケジューラを止めます
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	report, err := s.backfiller.BackfillMissingAudio(middleware.WithLogger(ctx, s.logger), s.limit)
	if err != nil {
		s.logger.Error("Scheduled audio backfill failed", slog.Any("error", err))
		return
	}
	s.logger.Info("Scheduled audio backfill finished",
		slog.Int("checked", report.Checked),
		slog.Int("updated", report.Updated),
		slog.Duration("elapsed", time.Since(start)),
	)
}
