package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/config"
	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/service/reporting"
)

const snapshotTimeout = 2 * time.Minute

// StatsSnapshotter records a stats snapshot for the given instant.
type StatsSnapshotter interface {
	SnapshotStats(ctx context.Context, at time.Time) (models.ScenarioStats, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	snapshot StatsSnapshotter
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, snapshot StatsSnapshotter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		schedule: cfg.CronSchedule,
		location: loc,
		snapshot: snapshot,
		logger:   logger,
	}, nil
}

// Start registers the stats snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.recordStats); err != nil {
		return fmt.Errorf("schedule stats snapshot %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) recordStats() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	now := time.Now().In(s.location)
	stats, err := s.snapshot.SnapshotStats(ctx, now)
	if err != nil {
		s.logger.Error("failed to record stats snapshot", zap.Error(err))
		return
	}

	s.logger.Info(reporting.SummarizeStats(stats, now))
}
