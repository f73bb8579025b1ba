package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository"
)

const scenarioColumns = `id, name, description, tags, created_at, updated_at,
	initial_price, useful_life_years, residual_value, annual_maintenance, annual_operating_cost, discount_rate,
	total_cost, annual_cost, monthly_cost, cost_per_day, npv_tco, npv_annual`

// Repository implements repository.ScenarioRepository on top of SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the database at path. The special path
// ":memory:" keeps everything in process.
func NewRepository(ctx context.Context, path string) (*Repository, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	r := &Repository{db: db}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return r, nil
}

func (r *Repository) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tco_scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		initial_price REAL NOT NULL,
		useful_life_years REAL NOT NULL,
		residual_value REAL NOT NULL DEFAULT 0,
		annual_maintenance REAL NOT NULL DEFAULT 0,
		annual_operating_cost REAL NOT NULL DEFAULT 0,
		discount_rate REAL NOT NULL DEFAULT 0.03,
		total_cost REAL,
		annual_cost REAL,
		monthly_cost REAL,
		cost_per_day REAL,
		npv_tco REAL,
		npv_annual REAL
	);

	CREATE INDEX IF NOT EXISTS idx_tco_scenarios_name ON tco_scenarios(name);
	CREATE INDEX IF NOT EXISTS idx_tco_scenarios_updated_at ON tco_scenarios(updated_at DESC);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// CreateScenario inserts a new row.
func (r *Repository) CreateScenario(ctx context.Context, s models.Scenario) error {
	tags, err := json.Marshal(nonNilTags(s.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO tco_scenarios (`+scenarioColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Description, string(tags), s.CreatedAt.UnixNano(), s.UpdatedAt.UnixNano(),
		s.InitialPrice, s.UsefulLifeYears, s.ResidualValue, s.AnnualMaintenance, s.AnnualOperatingCost, s.DiscountRate,
		s.TotalCost, s.AnnualCost, s.MonthlyCost, s.CostPerDay, s.NPVTCO, s.NPVAnnual,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetScenario loads one row by ID.
func (r *Repository) GetScenario(ctx context.Context, id string) (models.Scenario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scenarioColumns+` FROM tco_scenarios WHERE id = ?`, id)
	s, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Scenario{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	return s, nil
}

// ListScenarios returns one page ordered by updated_at descending.
func (r *Repository) ListScenarios(ctx context.Context, filter models.ScenarioFilter) ([]models.Scenario, int64, error) {
	where := ""
	var args []any
	if filter.Search != "" {
		where = ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tco_scenarios`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count scenarios: %w", err)
	}

	query := `SELECT ` + scenarioColumns + ` FROM tco_scenarios` + where +
		` ORDER BY updated_at DESC, id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PerPage, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	items := []models.Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan scenario: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return items, total, nil
}

// UpdateScenario overwrites every column of an existing row.
func (r *Repository) UpdateScenario(ctx context.Context, s models.Scenario) error {
	tags, err := json.Marshal(nonNilTags(s.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE tco_scenarios SET
		name = ?, description = ?, tags = ?, created_at = ?, updated_at = ?,
		initial_price = ?, useful_life_years = ?, residual_value = ?, annual_maintenance = ?,
		annual_operating_cost = ?, discount_rate = ?,
		total_cost = ?, annual_cost = ?, monthly_cost = ?, cost_per_day = ?, npv_tco = ?, npv_annual = ?
		WHERE id = ?`,
		s.Name, s.Description, string(tags), s.CreatedAt.UnixNano(), s.UpdatedAt.UnixNano(),
		s.InitialPrice, s.UsefulLifeYears, s.ResidualValue, s.AnnualMaintenance,
		s.AnnualOperatingCost, s.DiscountRate,
		s.TotalCost, s.AnnualCost, s.MonthlyCost, s.CostPerDay, s.NPVTCO, s.NPVAnnual,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scenario %s: %w", s.ID, err)
	}
	return requireAffected(res)
}

// DeleteScenario removes one row.
func (r *Repository) DeleteScenario(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tco_scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return requireAffected(res)
}

// ScenarioStats aggregates monthly costs in SQL.
func (r *Repository) ScenarioStats(ctx context.Context) (models.ScenarioStats, error) {
	var (
		stats       models.ScenarioStats
		avg, lo, hi sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id), AVG(monthly_cost), MIN(monthly_cost), MAX(monthly_cost) FROM tco_scenarios`,
	).Scan(&stats.TotalScenarios, &avg, &lo, &hi)
	if err != nil {
		return models.ScenarioStats{}, fmt.Errorf("failed to aggregate scenarios: %w", err)
	}
	stats.AvgMonthlyCost = avg.Float64
	stats.MinMonthlyCost = lo.Float64
	stats.MaxMonthlyCost = hi.Float64
	return stats, nil
}

// Close closes the database handle.
func (r *Repository) Close(context.Context) error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (models.Scenario, error) {
	var (
		s                   models.Scenario
		description         sql.NullString
		tags                string
		created, updated    int64
		total, annual       sql.NullFloat64
		monthly, daily      sql.NullFloat64
		npvTotal, npvYearly sql.NullFloat64
	)
	err := row.Scan(
		&s.ID, &s.Name, &description, &tags, &created, &updated,
		&s.InitialPrice, &s.UsefulLifeYears, &s.ResidualValue, &s.AnnualMaintenance, &s.AnnualOperatingCost, &s.DiscountRate,
		&total, &annual, &monthly, &daily, &npvTotal, &npvYearly,
	)
	if err != nil {
		return models.Scenario{}, err
	}

	if description.Valid {
		d := description.String
		s.Description = &d
	}
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return models.Scenario{}, fmt.Errorf("decode tags: %w", err)
	}
	s.CreatedAt = time.Unix(0, created).UTC()
	s.UpdatedAt = time.Unix(0, updated).UTC()
	s.TotalCost = total.Float64
	s.AnnualCost = annual.Float64
	s.MonthlyCost = monthly.Float64
	s.CostPerDay = daily.Float64
	s.NPVTCO = npvTotal.Float64
	s.NPVAnnual = npvYearly.Float64
	return s, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
