package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/domain/models"
	repo "github.com/mamadbah2/tco/internal/repository/sheets"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = time.RFC3339
	scenariosRange = "Scenarios!A:R"
	statsRange     = "Stats!A:E"
)

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("google sheets export is not configured")

var scenarioHeader = []interface{}{
	"id", "name", "description", "tags", "created_at", "updated_at",
	"initial_price", "useful_life_years", "residual_value", "annual_maintenance", "annual_operating_cost", "discount_rate",
	"total_cost", "annual_cost", "monthly_cost", "cost_per_day", "npv_tco", "npv_annual",
}

// ScenarioSource is the read side of the scenario service used for reports.
type ScenarioSource interface {
	All(ctx context.Context) ([]models.Scenario, error)
	Stats(ctx context.Context) (models.ScenarioStats, error)
}

// Service exports scenarios and periodic stats snapshots to a spreadsheet.
type Service struct {
	source ScenarioSource
	sheets repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. A nil sheets repository
// keeps snapshots in the logs only.
func NewService(source ScenarioSource, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, sheets: sheets, logger: logger}
}

// ExportEnabled reports whether a spreadsheet is configured.
func (s *Service) ExportEnabled() bool {
	return s.sheets != nil
}

// ExportScenarios overwrites the Scenarios sheet with every saved scenario and
// returns the number of exported rows.
func (s *Service) ExportScenarios(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrExportDisabled
	}

	scenarios, err := s.source.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load scenarios: %w", err)
	}

	rows := make([][]interface{}, 0, len(scenarios)+1)
	rows = append(rows, scenarioHeader)
	for _, sc := range scenarios {
		rows = append(rows, scenarioRow(sc))
	}

	if err := s.sheets.ReplaceRange(ctx, scenariosRange, rows); err != nil {
		return 0, fmt.Errorf("export scenarios: %w", err)
	}

	s.logger.Info("scenarios exported", zap.Int("rows", len(scenarios)))
	return len(scenarios), nil
}

// SnapshotStats computes the current scenario stats and, when a spreadsheet
// is configured, appends them as one row dated at.
func (s *Service) SnapshotStats(ctx context.Context, at time.Time) (models.ScenarioStats, error) {
	stats, err := s.source.Stats(ctx)
	if err != nil {
		return models.ScenarioStats{}, fmt.Errorf("load stats: %w", err)
	}

	s.logger.Info("scenario stats snapshot",
		zap.String("date", at.Format(dateLayout)),
		zap.Int64("total_scenarios", stats.TotalScenarios),
		zap.Float64("avg_monthly_cost", stats.AvgMonthlyCost),
		zap.Float64("min_monthly_cost", stats.MinMonthlyCost),
		zap.Float64("max_monthly_cost", stats.MaxMonthlyCost),
	)

	if s.sheets == nil {
		return stats, nil
	}

	row := []interface{}{at.Format(dateLayout), stats.TotalScenarios, stats.AvgMonthlyCost, stats.MinMonthlyCost, stats.MaxMonthlyCost}
	if err := s.sheets.AppendRows(ctx, statsRange, [][]interface{}{row}); err != nil {
		return stats, fmt.Errorf("append stats snapshot: %w", err)
	}
	return stats, nil
}

// SummarizeStats renders a one-line human summary of a snapshot.
func SummarizeStats(stats models.ScenarioStats, at time.Time) string {
	if stats.TotalScenarios == 0 {
		return fmt.Sprintf("Scenarios (%s): none saved yet.", at.Format(dateLayout))
	}
	return fmt.Sprintf("Scenarios (%s): %d saved, monthly cost avg %.2f (min %.2f, max %.2f).",
		at.Format(dateLayout), stats.TotalScenarios, stats.AvgMonthlyCost, stats.MinMonthlyCost, stats.MaxMonthlyCost)
}

func scenarioRow(sc models.Scenario) []interface{} {
	description := ""
	if sc.Description != nil {
		description = *sc.Description
	}
	return []interface{}{
		sc.ID,
		sc.Name,
		description,
		strings.Join(sc.Tags, ","),
		sc.CreatedAt.UTC().Format(timeLayout),
		sc.UpdatedAt.UTC().Format(timeLayout),
		sc.InitialPrice,
		sc.UsefulLifeYears,
		sc.ResidualValue,
		sc.AnnualMaintenance,
		sc.AnnualOperatingCost,
		sc.DiscountRate,
		sc.TotalCost,
		sc.AnnualCost,
		sc.MonthlyCost,
		sc.CostPerDay,
		sc.NPVTCO,
		sc.NPVAnnual,
	}
}
