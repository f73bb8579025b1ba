package tco

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	monthsPerYear = 12
	daysPerYear   = 365
)

// Result holds the lifetime cost metrics of one Option. Every field is
// rounded to 2 decimals, half away from zero.
type Result struct {
	TotalCost   float64 `json:"total_cost"`
	AnnualCost  float64 `json:"annual_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	CostPerDay  float64 `json:"cost_per_day"`
	NPVTCO      float64 `json:"npv_tco"`
	NPVAnnual   float64 `json:"npv_annual"`
}

// CalculateTCO computes the undiscounted and discounted lifetime cost of o.
func CalculateTCO(o Option) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, err
	}

	life := o.UsefulLifeYears
	total := o.InitialPrice + o.RecurringCost()*life - o.ResidualValue
	annual := total / life
	npv := presentValue(o)

	values := []float64{total, annual, npv}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: inputs overflow the cost computation", ErrInvalidInput)
		}
	}

	return Result{
		TotalCost:   Round2(total),
		AnnualCost:  Round2(annual),
		MonthlyCost: Round2(annual / monthsPerYear),
		CostPerDay:  Round2(annual / daysPerYear),
		NPVTCO:      Round2(npv),
		NPVAnnual:   Round2(npv / life),
	}, nil
}

// presentValue discounts every year's recurring cost and the residual value.
// Whole years are summed as an annuity; a fractional final year contributes
// its share of the recurring cost, discounted at the end of life.
func presentValue(o Option) float64 {
	life := o.UsefulLifeYears
	r := o.DiscountRate
	base := 1 + r
	recurring := o.RecurringCost()

	years := math.Floor(life)
	pv := o.InitialPrice + recurring*annuityFactor(r, years)
	if tail := life - years; tail > 0 {
		pv += recurring * tail / math.Pow(base, life)
	}
	return pv - o.ResidualValue/math.Pow(base, life)
}

// annuityFactor is the present value of 1 paid at the end of each of n years.
func annuityFactor(r, n float64) float64 {
	if r == 0 {
		return n
	}
	return -math.Expm1(-n*math.Log1p(r)) / r
}

// Round2 rounds v to 2 decimals, half away from zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
