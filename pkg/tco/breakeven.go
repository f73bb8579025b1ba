package tco

import (
	"fmt"
	"math"
)

const (
	maxSearchSteps = 1_000_000
	// maxCellPieces caps the cycle boundaries walked inside one grid cell.
	maxCellPieces = 4096
)

// Side identifies one of the two options handed to the break-even search.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// SearchConfig bounds the break-even grid search.
type SearchConfig struct {
	HorizonYears float64
	StepsPerYear int
}

// DefaultSearchConfig searches 100 years at monthly resolution.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{HorizonYears: 100, StepsPerYear: 12}
}

// Validate rejects empty or unbounded grids.
func (c SearchConfig) Validate() error {
	if math.IsNaN(c.HorizonYears) || math.IsInf(c.HorizonYears, 0) || c.HorizonYears <= 0 {
		return fmt.Errorf("%w: horizon must be a positive number of years", ErrInvalidInput)
	}
	if c.StepsPerYear <= 0 {
		return fmt.Errorf("%w: steps per year must be positive", ErrInvalidInput)
	}
	if c.HorizonYears*float64(c.StepsPerYear) > maxSearchSteps {
		return fmt.Errorf("%w: search grid exceeds %d steps", ErrInvalidInput, maxSearchSteps)
	}
	return nil
}

// Breakeven is the outcome of a break-even search. Found is false when the
// cumulative costs never cross within Horizon.
type Breakeven struct {
	Years        float64 `json:"breakeven_years"`
	Found        bool    `json:"has_breakeven"`
	CheaperAfter Side    `json:"cheaper_after,omitempty"`
	Horizon      float64 `json:"horizon_years"`
}

// CumulativeCost is what owning o has cost after t years. The asset is bought
// again at the start of every life cycle and its residual value is recovered
// at the end of each completed one.
func CumulativeCost(o Option, t float64) float64 {
	if t <= 0 {
		return 0
	}
	cycles := t / o.UsefulLifeYears
	return math.Ceil(cycles)*o.InitialPrice +
		o.RecurringCost()*t -
		math.Floor(cycles)*o.ResidualValue
}

// CalculateBreakevenPoint runs CalculateBreakevenPointWithin with DefaultSearchConfig.
func CalculateBreakevenPoint(a, b Option) (Breakeven, error) {
	return CalculateBreakevenPointWithin(a, b, DefaultSearchConfig())
}

// CalculateBreakevenPointWithin finds the first time the cumulative costs of
// a and b cross. The grid is scanned from the first step; leading points
// where both cost the same carry no sign. The crossing is the first point
// whose sign differs from the last non-zero one, located inside its grid
// cell by crossingInCell. Swapping a and b yields the same Years.
func CalculateBreakevenPointWithin(a, b Option, cfg SearchConfig) (Breakeven, error) {
	if err := a.Validate(); err != nil {
		return Breakeven{}, fmt.Errorf("option a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Breakeven{}, fmt.Errorf("option b: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Breakeven{}, err
	}

	steps := float64(cfg.StepsPerYear)
	n := int(math.Ceil(cfg.HorizonYears * steps))

	var prevT, prevDiff float64
	sign := 0
	for i := 1; i <= n; i++ {
		t := math.Min(float64(i)/steps, cfg.HorizonYears)
		diff := CumulativeCost(a, t) - CumulativeCost(b, t)
		if math.IsNaN(diff) || math.IsInf(diff, 0) {
			return Breakeven{}, fmt.Errorf("%w: cumulative costs overflow at %g years", ErrInvalidInput, t)
		}
		s := signOf(diff)

		if sign != 0 && s != sign {
			years := crossingInCell(a, b, prevT, t, prevDiff, diff, sign)
			cheaper := SideA
			if sign < 0 {
				cheaper = SideB
			}
			return Breakeven{
				Years:        Round2(years),
				Found:        true,
				CheaperAfter: cheaper,
				Horizon:      cfg.HorizonYears,
			}, nil
		}
		if s != 0 {
			sign = s
		}
		prevT, prevDiff = t, diff
	}

	return Breakeven{Horizon: cfg.HorizonYears}, nil
}

// costAfter is the right limit of CumulativeCost at t: a repurchase due at
// the end of a cycle is already paid.
func costAfter(o Option, t float64) float64 {
	cycles := math.Floor(t / o.UsefulLifeYears)
	return (cycles+1)*o.InitialPrice + o.RecurringCost()*t - cycles*o.ResidualValue
}

// nextCycleEnd is the first multiple of the useful life strictly after t.
func nextCycleEnd(o Option, t float64) float64 {
	end := (math.Floor(t/o.UsefulLifeYears) + 1) * o.UsefulLifeYears
	if end <= t {
		end += o.UsefulLifeYears
	}
	return end
}

// crossingInCell locates the crossing between grid points from and to, where
// the cost difference moves from fromDiff (sign) to toDiff. Between cycle
// ends the difference is linear; at a cycle end it jumps. A crossing caused
// by a jump is placed on the cycle end itself.
func crossingInCell(a, b Option, from, to, fromDiff, toDiff float64, sign int) float64 {
	slope := a.RecurringCost() - b.RecurringCost()
	x := from
	for i := 0; i < maxCellPieces; i++ {
		right := costAfter(a, x) - costAfter(b, x)
		if signOf(right) != sign {
			return x
		}

		next := math.Min(to, math.Min(nextCycleEnd(a, x), nextCycleEnd(b, x)))
		end := right + slope*(next-x)
		if signOf(end) != sign {
			return x + (next-x)*right/(right-end)
		}

		at := CumulativeCost(a, next) - CumulativeCost(b, next)
		if next >= to || signOf(at) != sign {
			return next
		}
		x = next
	}
	return from + (to-from)*fromDiff/(fromDiff-toDiff)
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
