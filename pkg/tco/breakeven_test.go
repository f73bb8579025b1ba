package tco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCumulativeCost(t *testing.T) {
	o := Option{InitialPrice: 100, UsefulLifeYears: 2, ResidualValue: 20, AnnualMaintenance: 10}

	testCases := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{-1, 0},
		{1, 110},
		{2, 100 + 20 - 20},
		{2.5, 200 + 25 - 20},
		{4, 200 + 40 - 40},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.want, CumulativeCost(o, tc.t), 1e-9, "t=%v", tc.t)
	}
}

func TestCalculateBreakevenPoint_LinearCrossing(t *testing.T) {
	a := Option{InitialPrice: 1000, UsefulLifeYears: 50}
	b := Option{InitialPrice: 100, UsefulLifeYears: 50, AnnualOperatingCost: 100}

	got, err := CalculateBreakevenPoint(a, b)
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.InDelta(t, 9.0, got.Years, 0.01)
	assert.Equal(t, SideA, got.CheaperAfter)
	assert.Equal(t, 100.0, got.Horizon)

	diff := CumulativeCost(a, got.Years) - CumulativeCost(b, got.Years)
	assert.InDelta(t, 0, diff, 100.0/12)
}

func TestCalculateBreakevenPoint_ReplacementCycles(t *testing.T) {
	durable := Option{InitialPrice: 300, UsefulLifeYears: 10}
	disposable := Option{InitialPrice: 100, UsefulLifeYears: 2}

	got, err := CalculateBreakevenPoint(durable, disposable)
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, 4.0, got.Years)
	assert.Equal(t, SideA, got.CheaperAfter)
}

func TestCalculateBreakevenPoint_Symmetric(t *testing.T) {
	pairs := [][2]Option{
		{{InitialPrice: 1000, UsefulLifeYears: 50}, {InitialPrice: 100, UsefulLifeYears: 50, AnnualOperatingCost: 100}},
		{{InitialPrice: 300, UsefulLifeYears: 10}, {InitialPrice: 100, UsefulLifeYears: 2}},
		{{InitialPrice: 5000, UsefulLifeYears: 7.5, AnnualMaintenance: 30, ResidualValue: 900}, {InitialPrice: 800, UsefulLifeYears: 1.5, AnnualMaintenance: 210}},
	}

	for _, p := range pairs {
		ab, err := CalculateBreakevenPoint(p[0], p[1])
		require.NoError(t, err)
		ba, err := CalculateBreakevenPoint(p[1], p[0])
		require.NoError(t, err)

		assert.Equal(t, ab.Found, ba.Found)
		assert.Equal(t, ab.Years, ba.Years)
		if ab.Found {
			assert.NotEqual(t, ab.CheaperAfter, ba.CheaperAfter)
		}
	}
}

func TestCalculateBreakevenPoint_NoCrossing(t *testing.T) {
	testCases := []struct {
		name string
		a, b Option
	}{
		{
			name: "same recurring cost and lifespan",
			a:    Option{InitialPrice: 2000, UsefulLifeYears: 5, AnnualMaintenance: 100},
			b:    Option{InitialPrice: 1500, UsefulLifeYears: 5, AnnualMaintenance: 100},
		},
		{
			name: "premium never pays off",
			a:    Option{InitialPrice: 450000, UsefulLifeYears: 12, ResidualValue: 90000, AnnualMaintenance: 5000},
			b:    Option{InitialPrice: 50000, UsefulLifeYears: 3, AnnualMaintenance: 8000},
		},
		{
			name: "identical options",
			a:    Option{InitialPrice: 10, UsefulLifeYears: 1},
			b:    Option{InitialPrice: 10, UsefulLifeYears: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateBreakevenPoint(tc.a, tc.b)
			require.NoError(t, err)
			assert.False(t, got.Found)
			assert.Zero(t, got.Years)
			assert.Empty(t, got.CheaperAfter)
		})
	}
}

func TestCalculateBreakevenPointWithin_Horizon(t *testing.T) {
	a := Option{InitialPrice: 1000, UsefulLifeYears: 50}
	b := Option{InitialPrice: 100, UsefulLifeYears: 50, AnnualOperatingCost: 100}

	got, err := CalculateBreakevenPointWithin(a, b, SearchConfig{HorizonYears: 5, StepsPerYear: 12})
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, 5.0, got.Horizon)

	got, err = CalculateBreakevenPointWithin(a, b, SearchConfig{HorizonYears: 20, StepsPerYear: 365})
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.LessOrEqual(t, got.Years, 20.0)
	assert.InDelta(t, 9.0, got.Years, 0.01)
}

func TestCalculateBreakevenPoint_InvalidInput(t *testing.T) {
	valid := Option{InitialPrice: 1, UsefulLifeYears: 1}

	_, err := CalculateBreakevenPoint(Option{InitialPrice: 1, UsefulLifeYears: 0}, valid)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateBreakevenPoint(valid, Option{InitialPrice: 1, UsefulLifeYears: -2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateBreakevenPointWithin(valid, valid, SearchConfig{HorizonYears: 0, StepsPerYear: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateBreakevenPointWithin(valid, valid, SearchConfig{HorizonYears: 10, StepsPerYear: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateBreakevenPointWithin(valid, valid, SearchConfig{HorizonYears: 1e9, StepsPerYear: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateBreakevenPoint_CrossingAtRepurchase(t *testing.T) {
	yearly := Option{InitialPrice: 100, UsefulLifeYears: 1}
	durable := Option{InitialPrice: 150, UsefulLifeYears: 100}

	got, err := CalculateBreakevenPoint(yearly, durable)
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, 1.0, got.Years)
	assert.Equal(t, SideB, got.CheaperAfter)

	swapped, err := CalculateBreakevenPoint(durable, yearly)
	require.NoError(t, err)
	assert.Equal(t, got.Years, swapped.Years)
	assert.Equal(t, SideA, swapped.CheaperAfter)
}

func TestCalculateBreakevenPoint_RepurchaseInsideCoarseCell(t *testing.T) {
	yearly := Option{InitialPrice: 100, UsefulLifeYears: 1}
	durable := Option{InitialPrice: 150, UsefulLifeYears: 100}

	got, err := CalculateBreakevenPointWithin(yearly, durable, SearchConfig{HorizonYears: 10, StepsPerYear: 1})
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, 1.0, got.Years)

	// slope crossing before the next repurchase: 100 + 40t = 150 + 10t
	a := Option{InitialPrice: 100, UsefulLifeYears: 10, AnnualOperatingCost: 40}
	b := Option{InitialPrice: 150, UsefulLifeYears: 10, AnnualOperatingCost: 10}
	got, err = CalculateBreakevenPointWithin(a, b, SearchConfig{HorizonYears: 10, StepsPerYear: 1})
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, 1.67, got.Years)
	assert.Equal(t, SideB, got.CheaperAfter)
}

func TestCalculateBreakevenPoint_OverflowingCosts(t *testing.T) {
	a := Option{InitialPrice: 1e307, UsefulLifeYears: 1}
	b := Option{InitialPrice: 1e307, UsefulLifeYears: 2}

	got, err := CalculateBreakevenPoint(a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, got.Found)

	_, err = CalculateBreakevenPoint(b, a)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
