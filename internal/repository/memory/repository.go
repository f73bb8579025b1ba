package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository"
)

// Repository is an in-memory implementation of repository.ScenarioRepository.
type Repository struct {
	mu   sync.RWMutex
	data map[string]models.Scenario
}

// NewRepository creates an empty in-memory scenario repository.
func NewRepository() *Repository {
	return &Repository{data: make(map[string]models.Scenario)}
}

// CreateScenario stores a copy of the scenario.
func (r *Repository) CreateScenario(_ context.Context, scenario models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[scenario.ID] = clone(scenario)
	return nil
}

// GetScenario returns the scenario with the given ID.
func (r *Repository) GetScenario(_ context.Context, id string) (models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return models.Scenario{}, repository.ErrNotFound
	}
	return clone(s), nil
}

// ListScenarios returns one page of scenarios and the total number of matches.
func (r *Repository) ListScenarios(_ context.Context, filter models.ScenarioFilter) ([]models.Scenario, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.Search)
	matches := make([]models.Scenario, 0, len(r.data))
	for _, s := range r.data {
		if needle != "" && !strings.Contains(strings.ToLower(s.Name), needle) {
			continue
		}
		matches = append(matches, s)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].UpdatedAt.Equal(matches[j].UpdatedAt) {
			return matches[i].UpdatedAt.After(matches[j].UpdatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := int64(len(matches))
	start := filter.Offset()
	if start >= len(matches) || start < 0 {
		return []models.Scenario{}, total, nil
	}
	end := start + filter.PerPage
	if end > len(matches) {
		end = len(matches)
	}

	page := make([]models.Scenario, 0, end-start)
	for _, s := range matches[start:end] {
		page = append(page, clone(s))
	}
	return page, total, nil
}

// UpdateScenario replaces a stored scenario.
func (r *Repository) UpdateScenario(_ context.Context, scenario models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[scenario.ID]; !ok {
		return repository.ErrNotFound
	}
	r.data[scenario.ID] = clone(scenario)
	return nil
}

// DeleteScenario removes a stored scenario.
func (r *Repository) DeleteScenario(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// ScenarioStats aggregates monthly costs across stored scenarios.
func (r *Repository) ScenarioStats(_ context.Context) (models.ScenarioStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.ScenarioStats
	var sum float64
	for _, s := range r.data {
		if stats.TotalScenarios == 0 || s.MonthlyCost < stats.MinMonthlyCost {
			stats.MinMonthlyCost = s.MonthlyCost
		}
		if stats.TotalScenarios == 0 || s.MonthlyCost > stats.MaxMonthlyCost {
			stats.MaxMonthlyCost = s.MonthlyCost
		}
		sum += s.MonthlyCost
		stats.TotalScenarios++
	}
	if stats.TotalScenarios > 0 {
		stats.AvgMonthlyCost = sum / float64(stats.TotalScenarios)
	}
	return stats, nil
}

// Close is a no-op.
func (r *Repository) Close(context.Context) error { return nil }

func clone(s models.Scenario) models.Scenario {
	if s.Tags != nil {
		s.Tags = append([]string(nil), s.Tags...)
	}
	if s.Description != nil {
		d := *s.Description
		s.Description = &d
	}
	return s
}
