package calculator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/repository/cache"
	"github.com/mamadbah2/tco/pkg/tco"
)

type countingCache struct {
	*cache.MemoryCache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func premium() tco.Option {
	return tco.Option{InitialPrice: 450000, UsefulLifeYears: 12, ResidualValue: 90000, AnnualMaintenance: 5000, DiscountRate: 0.03}
}

func TestCalculate_CachesResult(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache()}
	svc := NewService(c, time.Hour, tco.DefaultSearchConfig(), nil)

	first, err := svc.Calculate(ctx, premium())
	require.NoError(t, err)
	assert.Equal(t, 420000.0, first.TotalCost)
	assert.Equal(t, 1, c.sets)

	second, err := svc.Calculate(ctx, premium())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.sets)

	other := premium()
	other.DiscountRate = 0.05
	_, err = svc.Calculate(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, c.sets)
}

func TestCalculate_IgnoresCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	key, err := cacheKey(premium())
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, "{not json", 0))

	svc := NewService(c, 0, tco.DefaultSearchConfig(), nil)
	got, err := svc.Calculate(ctx, premium())
	require.NoError(t, err)
	assert.Equal(t, 35000.0, got.AnnualCost)
}

func TestCalculate_InvalidInputNotCached(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache()}
	svc := NewService(c, time.Hour, tco.DefaultSearchConfig(), nil)

	_, err := svc.Calculate(ctx, tco.Option{InitialPrice: 1, UsefulLifeYears: 0})
	assert.ErrorIs(t, err, tco.ErrInvalidInput)
	assert.Zero(t, c.sets)
}

func TestCalculate_WithoutCache(t *testing.T) {
	svc := NewService(nil, 0, tco.DefaultSearchConfig(), nil)
	got, err := svc.Calculate(context.Background(), premium())
	require.NoError(t, err)
	assert.Equal(t, 2916.67, got.MonthlyCost)
}

func TestCompare(t *testing.T) {
	svc := NewService(nil, 0, tco.DefaultSearchConfig(), nil)
	rows, err := svc.Compare(context.Background(), []tco.NamedOption{
		{Name: "premium", Option: premium()},
		{Name: "budget", Option: tco.Option{InitialPrice: 50000, UsefulLifeYears: 3, AnnualMaintenance: 8000, DiscountRate: 0.03}},
	})
	require.NoError(t, err)
	assert.Equal(t, "budget", rows[0].Name)

	_, err = svc.Compare(context.Background(), nil)
	assert.ErrorIs(t, err, tco.ErrInvalidInput)
}

func TestBreakeven_UsesConfiguredHorizon(t *testing.T) {
	a := tco.Option{InitialPrice: 1000, UsefulLifeYears: 50}
	b := tco.Option{InitialPrice: 100, UsefulLifeYears: 50, AnnualOperatingCost: 100}

	short := NewService(nil, 0, tco.SearchConfig{HorizonYears: 5, StepsPerYear: 12}, nil)
	got, err := short.Breakeven(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, got.Found)

	long := NewService(nil, 0, tco.DefaultSearchConfig(), nil)
	got, err = long.Breakeven(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.InDelta(t, 9.0, got.Years, 0.01)
}
