package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/config"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// Scheduler manages the background maintenance tasks: evicting stale cache
// entries and probing backend reachability so the UI can surface outages.
type Scheduler struct {
	cron   *cron.Cron
	cache  *cache.Cache
	client *backend.Client
	cfg    config.Config
	logger *zap.Logger
}

func New(cfg config.Config, c *cache.Cache, client *backend.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		cache:  c,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("sweep_schedule", s.cfg.Cache.SweepSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Cache.SweepSchedule, s.sweepCache); err != nil {
		s.logger.Error("failed to schedule cache sweep", zap.Error(err))
	}

	if _, err := s.cron.AddFunc("@every 5m", s.probeBackend); err != nil {
		s.logger.Error("failed to schedule backend probe", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepCache() {
	if n := s.cache.Sweep(); n > 0 {
		s.logger.Debug("swept expired cache entries", zap.Int("evicted", n))
	}
}

func (s *Scheduler) probeBackend() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	latency, err := s.client.Ping(ctx)
	if err != nil {
		s.logger.Warn("backend unreachable", zap.Error(err))
		return
	}
	s.logger.Debug("backend reachable", zap.Duration("latency", latency))
}
