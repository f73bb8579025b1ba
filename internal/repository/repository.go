package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/tco/internal/domain/models"
)

// ErrNotFound is returned when no scenario matches the requested ID.
var ErrNotFound = errors.New("scenario not found")

// ScenarioRepository persists saved TCO scenarios.
//
// ListScenarios orders by most recently updated first and matches Search as a
// case-insensitive substring of the name. ScenarioStats returns unrounded
// aggregates; an empty store yields zero values.
type ScenarioRepository interface {
	CreateScenario(ctx context.Context, scenario models.Scenario) error
	GetScenario(ctx context.Context, id string) (models.Scenario, error)
	ListScenarios(ctx context.Context, filter models.ScenarioFilter) ([]models.Scenario, int64, error)
	UpdateScenario(ctx context.Context, scenario models.Scenario) error
	DeleteScenario(ctx context.Context, id string) error
	ScenarioStats(ctx context.Context) (models.ScenarioStats, error)
	Close(ctx context.Context) error
}
