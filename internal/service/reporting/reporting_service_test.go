package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/domain/models"
)

type fakeSource struct {
	scenarios []models.Scenario
	stats     models.ScenarioStats
	err       error
}

func (f fakeSource) All(context.Context) ([]models.Scenario, error) { return f.scenarios, f.err }

func (f fakeSource) Stats(context.Context) (models.ScenarioStats, error) { return f.stats, f.err }

type write struct {
	op   string
	rng  string
	rows [][]interface{}
}

type fakeSheets struct {
	writes []write
	err    error
}

func (f *fakeSheets) AppendRows(_ context.Context, rng string, rows [][]interface{}) error {
	f.writes = append(f.writes, write{op: "append", rng: rng, rows: rows})
	return f.err
}

func (f *fakeSheets) ReplaceRange(_ context.Context, rng string, rows [][]interface{}) error {
	f.writes = append(f.writes, write{op: "replace", rng: rng, rows: rows})
	return f.err
}

var snapshotDay = time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)

func TestExportScenarios(t *testing.T) {
	desc := "line 2"
	src := fakeSource{scenarios: []models.Scenario{
		{ID: "a", Name: "press", Description: &desc, Tags: []string{"x", "y"}, CreatedAt: snapshotDay, UpdatedAt: snapshotDay, MonthlyCost: 2916.67, NPVTCO: 41000.5, NPVAnnual: 3416.71},
		{ID: "b", Name: "lathe"},
	}}
	sheets := &fakeSheets{}
	svc := NewService(src, sheets, nil)

	n, err := svc.ExportScenarios(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, sheets.writes, 1)
	w := sheets.writes[0]
	assert.Equal(t, "replace", w.op)
	assert.Equal(t, scenariosRange, w.rng)
	require.Len(t, w.rows, 3)
	assert.Equal(t, "Scenarios!A:R", w.rng)
	assert.Equal(t, []interface{}{
		"id", "name", "description", "tags", "created_at", "updated_at",
		"initial_price", "useful_life_years", "residual_value", "annual_maintenance", "annual_operating_cost", "discount_rate",
		"total_cost", "annual_cost", "monthly_cost", "cost_per_day", "npv_tco", "npv_annual",
	}, w.rows[0])
	assert.Len(t, w.rows[1], 18)
	assert.Len(t, w.rows[2], 18)
	assert.Equal(t, "line 2", w.rows[1][2])
	assert.Equal(t, "x,y", w.rows[1][3])
	assert.Equal(t, "2026-05-04T20:00:00Z", w.rows[1][4])
	assert.Equal(t, 2916.67, w.rows[1][14])
	assert.Equal(t, 41000.5, w.rows[1][16])
	assert.Equal(t, 3416.71, w.rows[1][17])
	assert.Equal(t, "", w.rows[2][2])
}

func TestExportScenarios_Errors(t *testing.T) {
	_, err := NewService(fakeSource{}, nil, nil).ExportScenarios(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)

	boom := errors.New("boom")
	_, err = NewService(fakeSource{err: boom}, &fakeSheets{}, nil).ExportScenarios(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = NewService(fakeSource{}, &fakeSheets{err: boom}, nil).ExportScenarios(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotStats(t *testing.T) {
	stats := models.ScenarioStats{TotalScenarios: 3, AvgMonthlyCost: 3789.68, MinMonthlyCost: 2916.67, MaxMonthlyCost: 4702.38}
	sheets := &fakeSheets{}
	svc := NewService(fakeSource{stats: stats}, sheets, nil)

	got, err := svc.SnapshotStats(context.Background(), snapshotDay)
	require.NoError(t, err)
	assert.Equal(t, stats, got)

	require.Len(t, sheets.writes, 1)
	assert.Equal(t, "append", sheets.writes[0].op)
	assert.Equal(t, statsRange, sheets.writes[0].rng)
	assert.Equal(t, [][]interface{}{{"2026-05-04", int64(3), 3789.68, 2916.67, 4702.38}}, sheets.writes[0].rows)
}

func TestSnapshotStats_WithoutSheets(t *testing.T) {
	svc := NewService(fakeSource{stats: models.ScenarioStats{TotalScenarios: 1}}, nil, nil)
	assert.False(t, svc.ExportEnabled())

	got, err := svc.SnapshotStats(context.Background(), snapshotDay)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TotalScenarios)
}

func TestSummarizeStats(t *testing.T) {
	assert.Equal(t, "Scenarios (2026-05-04): none saved yet.", SummarizeStats(models.ScenarioStats{}, snapshotDay))
	assert.Equal(t,
		"Scenarios (2026-05-04): 2 saved, monthly cost avg 1500.50 (min 1000.00, max 2001.00).",
		SummarizeStats(models.ScenarioStats{TotalScenarios: 2, AvgMonthlyCost: 1500.5, MinMonthlyCost: 1000, MaxMonthlyCost: 2001}, snapshotDay),
	)
}
