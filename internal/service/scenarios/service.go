package scenarios

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository"
	"github.com/mamadbah2/tco/pkg/tco"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	maxNameLength  = 255
)

// ErrNotFound is returned when the requested scenario does not exist.
var ErrNotFound = repository.ErrNotFound

// Service manages saved TCO scenarios.
type Service struct {
	repo   repository.ScenarioRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a scenario service over the given repository.
func NewService(repo repository.ScenarioRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Create computes the TCO of the input and stores it as a new scenario.
func (s *Service) Create(ctx context.Context, in models.ScenarioCreate) (models.Scenario, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return models.Scenario{}, err
	}

	opt := in.Option()
	result, err := tco.CalculateTCO(opt)
	if err != nil {
		return models.Scenario{}, err
	}

	now := s.now()
	scenario := models.Scenario{
		ID:          s.newID(),
		Name:        name,
		Description: in.Description,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	scenario.SetOption(opt)
	scenario.SetResult(result)

	if err := s.repo.CreateScenario(ctx, scenario); err != nil {
		return models.Scenario{}, fmt.Errorf("create scenario: %w", err)
	}

	s.logger.Info("scenario created", zap.String("id", scenario.ID), zap.String("name", scenario.Name))
	return scenario, nil
}

// Get returns a scenario by ID.
func (s *Service) Get(ctx context.Context, id string) (models.Scenario, error) {
	scenario, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return models.Scenario{}, wrapRepoErr("get scenario", id, err)
	}
	return scenario, nil
}

// List returns one page of scenarios, most recently updated first.
func (s *Service) List(ctx context.Context, filter models.ScenarioFilter) (models.ScenarioPage, error) {
	filter = normalizeFilter(filter)

	items, total, err := s.repo.ListScenarios(ctx, filter)
	if err != nil {
		return models.ScenarioPage{}, fmt.Errorf("list scenarios: %w", err)
	}
	if items == nil {
		items = []models.Scenario{}
	}

	return models.ScenarioPage{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

// Update applies a partial update, recomputes the metrics and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, upd models.ScenarioUpdate) (models.Scenario, error) {
	scenario, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return models.Scenario{}, wrapRepoErr("get scenario", id, err)
	}

	upd.ApplyTo(&scenario)
	if upd.Name != nil {
		if scenario.Name, err = normalizeName(*upd.Name); err != nil {
			return models.Scenario{}, err
		}
	}

	result, err := tco.CalculateTCO(scenario.Option())
	if err != nil {
		return models.Scenario{}, err
	}
	scenario.SetResult(result)
	scenario.UpdatedAt = s.now()

	if err := s.repo.UpdateScenario(ctx, scenario); err != nil {
		return models.Scenario{}, wrapRepoErr("update scenario", id, err)
	}

	s.logger.Info("scenario updated", zap.String("id", id))
	return scenario, nil
}

// Delete removes a scenario by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteScenario(ctx, id); err != nil {
		return wrapRepoErr("delete scenario", id, err)
	}
	s.logger.Info("scenario deleted", zap.String("id", id))
	return nil
}

// Stats aggregates monthly costs across all scenarios, rounded to cents.
func (s *Service) Stats(ctx context.Context) (models.ScenarioStats, error) {
	stats, err := s.repo.ScenarioStats(ctx)
	if err != nil {
		return models.ScenarioStats{}, fmt.Errorf("scenario stats: %w", err)
	}
	stats.AvgMonthlyCost = tco.Round2(stats.AvgMonthlyCost)
	stats.MinMonthlyCost = tco.Round2(stats.MinMonthlyCost)
	stats.MaxMonthlyCost = tco.Round2(stats.MaxMonthlyCost)
	return stats, nil
}

// All walks every page and returns all scenarios.
func (s *Service) All(ctx context.Context) ([]models.Scenario, error) {
	var out []models.Scenario
	filter := models.ScenarioFilter{Page: 1, PerPage: maxPerPage}
	for {
		items, total, err := s.repo.ListScenarios(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list scenarios page %d: %w", filter.Page, err)
		}
		out = append(out, items...)
		if len(items) == 0 || int64(len(out)) >= total {
			return out, nil
		}
		filter.Page++
	}
}

func normalizeFilter(f models.ScenarioFilter) models.ScenarioFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PerPage <= 0:
		f.PerPage = defaultPerPage
	case f.PerPage > maxPerPage:
		f.PerPage = maxPerPage
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: scenario name is required", tco.ErrInvalidInput)
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: scenario name exceeds %d characters", tco.ErrInvalidInput, maxNameLength)
	}
	return name, nil
}

func wrapRepoErr(op, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
