// Package repositorytest holds behaviour checks shared by every
// repository.ScenarioRepository implementation.
package repositorytest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// Scenario builds a stored scenario with the given name, monthly cost and
// update offset from a fixed base time.
func Scenario(id, name string, monthly float64, updatedOffset time.Duration) models.Scenario {
	desc := "saved from test"
	return models.Scenario{
		ID:              id,
		Name:            name,
		Description:     &desc,
		Tags:            []string{"office", "chairs"},
		CreatedAt:       base,
		UpdatedAt:       base.Add(updatedOffset),
		InitialPrice:    monthly * 12,
		UsefulLifeYears: 1,
		DiscountRate:    0.03,
		TotalCost:       monthly * 12,
		AnnualCost:      monthly * 12,
		MonthlyCost:     monthly,
		CostPerDay:      monthly * 12 / 365,
		NPVTCO:          monthly * 12,
		NPVAnnual:       monthly * 12,
	}
}

// Run exercises the full repository contract against newRepo.
func Run(t *testing.T, newRepo func(t *testing.T) repository.ScenarioRepository) {
	t.Run("create and get", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		want := Scenario("a1", "Premium Chair", 2916.67, 0)
		require.NoError(t, repo.CreateScenario(ctx, want))

		got, err := repo.GetScenario(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, *want.Description, *got.Description)
		assert.Equal(t, want.Tags, got.Tags)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
		assert.Equal(t, want.MonthlyCost, got.MonthlyCost)
		assert.Equal(t, want.Option(), got.Option())

		_, err = repo.GetScenario(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("nil description and tags", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		s := Scenario("n1", "Bare", 10, 0)
		s.Description = nil
		s.Tags = nil
		require.NoError(t, repo.CreateScenario(ctx, s))

		got, err := repo.GetScenario(ctx, "n1")
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Empty(t, got.Tags)
	})

	t.Run("list orders, filters and paginates", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("Chair %d", i)
			if i%2 == 1 {
				name = fmt.Sprintf("Desk %d", i)
			}
			s := Scenario(fmt.Sprintf("id-%d", i), name, float64(100*(i+1)), time.Duration(i)*time.Minute)
			require.NoError(t, repo.CreateScenario(ctx, s))
		}

		items, total, err := repo.ListScenarios(ctx, models.ScenarioFilter{Page: 1, PerPage: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, items, 2)
		assert.Equal(t, "id-4", items[0].ID)
		assert.Equal(t, "id-3", items[1].ID)

		items, _, err = repo.ListScenarios(ctx, models.ScenarioFilter{Page: 3, PerPage: 2})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "id-0", items[0].ID)

		items, total, err = repo.ListScenarios(ctx, models.ScenarioFilter{Page: 1, PerPage: 10, Search: "dESk"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, "id-3", items[0].ID)
		assert.Equal(t, "id-1", items[1].ID)

		items, total, err = repo.ListScenarios(ctx, models.ScenarioFilter{Page: 9, PerPage: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Empty(t, items)

		_, total, err = repo.ListScenarios(ctx, models.ScenarioFilter{Page: 1, PerPage: 10, Search: "%"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("update and delete", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		s := Scenario("u1", "Old", 50, 0)
		require.NoError(t, repo.CreateScenario(ctx, s))

		s.Name = "New"
		s.MonthlyCost = 75
		s.UpdatedAt = s.UpdatedAt.Add(time.Hour)
		require.NoError(t, repo.UpdateScenario(ctx, s))

		got, err := repo.GetScenario(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, 75.0, got.MonthlyCost)

		missing := Scenario("nope", "x", 1, 0)
		assert.ErrorIs(t, repo.UpdateScenario(ctx, missing), repository.ErrNotFound)

		require.NoError(t, repo.DeleteScenario(ctx, "u1"))
		assert.ErrorIs(t, repo.DeleteScenario(ctx, "u1"), repository.ErrNotFound)
		_, err = repo.GetScenario(ctx, "u1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("stats", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		stats, err := repo.ScenarioStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ScenarioStats{}, stats)

		require.NoError(t, repo.CreateScenario(ctx, Scenario("s1", "a", 100, 0)))
		require.NoError(t, repo.CreateScenario(ctx, Scenario("s2", "b", 200, 0)))
		require.NoError(t, repo.CreateScenario(ctx, Scenario("s3", "c", 600, 0)))

		stats, err = repo.ScenarioStats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.TotalScenarios)
		assert.InDelta(t, 300, stats.AvgMonthlyCost, 1e-9)
		assert.Equal(t, 100.0, stats.MinMonthlyCost)
		assert.Equal(t, 600.0, stats.MaxMonthlyCost)
	})
}
