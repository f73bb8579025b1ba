package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/config"
	"github.com/mamadbah2/tco/internal/domain/models"
)

type fakeSnapshotter struct {
	calls []time.Time
	err   error
}

func (f *fakeSnapshotter) SnapshotStats(_ context.Context, at time.Time) (models.ScenarioStats, error) {
	f.calls = append(f.calls, at)
	return models.ScenarioStats{TotalScenarios: 2}, f.err
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}, &fakeSnapshotter{}, nil)
	assert.Error(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every day", Timezone: "UTC"}, &fakeSnapshotter{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Conakry"}, &fakeSnapshotter{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestRecordStats_UsesLocation(t *testing.T) {
	snap := &fakeSnapshotter{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Asia/Tokyo"}, snap, nil)
	require.NoError(t, err)

	s.recordStats()
	require.Len(t, snap.calls, 1)
	assert.Equal(t, "Asia/Tokyo", snap.calls[0].Location().String())

	snap.err = errors.New("boom")
	s.recordStats()
	assert.Len(t, snap.calls, 2)
}
