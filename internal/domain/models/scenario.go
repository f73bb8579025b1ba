package models

import (
	"time"

	"github.com/mamadbah2/tco/pkg/tco"
)

// Scenario is a saved TCO calculation together with its computed metrics.
type Scenario struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description *string   `bson:"description,omitempty" json:"description"`
	Tags        []string  `bson:"tags" json:"tags"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`

	InitialPrice        float64 `bson:"initial_price" json:"initial_price"`
	UsefulLifeYears     float64 `bson:"useful_life_years" json:"useful_life_years"`
	ResidualValue       float64 `bson:"residual_value" json:"residual_value"`
	AnnualMaintenance   float64 `bson:"annual_maintenance" json:"annual_maintenance"`
	AnnualOperatingCost float64 `bson:"annual_operating_cost" json:"annual_operating_cost"`
	DiscountRate        float64 `bson:"discount_rate" json:"discount_rate"`

	TotalCost   float64 `bson:"total_cost" json:"total_cost"`
	AnnualCost  float64 `bson:"annual_cost" json:"annual_cost"`
	MonthlyCost float64 `bson:"monthly_cost" json:"monthly_cost"`
	CostPerDay  float64 `bson:"cost_per_day" json:"cost_per_day"`
	NPVTCO      float64 `bson:"npv_tco" json:"npv_tco"`
	NPVAnnual   float64 `bson:"npv_annual" json:"npv_annual"`
}

// Option returns the engine input stored in the scenario.
func (s Scenario) Option() tco.Option {
	return tco.Option{
		InitialPrice:        s.InitialPrice,
		UsefulLifeYears:     s.UsefulLifeYears,
		ResidualValue:       s.ResidualValue,
		AnnualMaintenance:   s.AnnualMaintenance,
		AnnualOperatingCost: s.AnnualOperatingCost,
		DiscountRate:        s.DiscountRate,
	}
}

// SetOption copies the engine input into the scenario.
func (s *Scenario) SetOption(o tco.Option) {
	s.InitialPrice = o.InitialPrice
	s.UsefulLifeYears = o.UsefulLifeYears
	s.ResidualValue = o.ResidualValue
	s.AnnualMaintenance = o.AnnualMaintenance
	s.AnnualOperatingCost = o.AnnualOperatingCost
	s.DiscountRate = o.DiscountRate
}

// SetResult copies the computed metrics into the scenario.
func (s *Scenario) SetResult(r tco.Result) {
	s.TotalCost = r.TotalCost
	s.AnnualCost = r.AnnualCost
	s.MonthlyCost = r.MonthlyCost
	s.CostPerDay = r.CostPerDay
	s.NPVTCO = r.NPVTCO
	s.NPVAnnual = r.NPVAnnual
}

// Result returns the stored metrics.
func (s Scenario) Result() tco.Result {
	return tco.Result{
		TotalCost:   s.TotalCost,
		AnnualCost:  s.AnnualCost,
		MonthlyCost: s.MonthlyCost,
		CostPerDay:  s.CostPerDay,
		NPVTCO:      s.NPVTCO,
		NPVAnnual:   s.NPVAnnual,
	}
}

// ScenarioCreate carries the fields accepted when saving a new scenario.
type ScenarioCreate struct {
	Name        string   `json:"name" binding:"required,min=1,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Tags        []string `json:"tags"`
	OptionInput
}

// ScenarioUpdate carries a partial update; nil fields are left untouched.
type ScenarioUpdate struct {
	Name                *string   `json:"name" binding:"omitempty,min=1,max=255"`
	Description         *string   `json:"description" binding:"omitempty,max=1000"`
	Tags                *[]string `json:"tags"`
	InitialPrice        *float64  `json:"initial_price" binding:"omitempty,gt=0"`
	UsefulLifeYears     *float64  `json:"useful_life_years" binding:"omitempty,gt=0,lte=100"`
	ResidualValue       *float64  `json:"residual_value" binding:"omitempty,gte=0"`
	AnnualMaintenance   *float64  `json:"annual_maintenance" binding:"omitempty,gte=0"`
	AnnualOperatingCost *float64  `json:"annual_operating_cost" binding:"omitempty,gte=0"`
	DiscountRate        *float64  `json:"discount_rate" binding:"omitempty,gte=0,lte=1"`
}

// ApplyTo copies every non-nil field onto s.
func (u ScenarioUpdate) ApplyTo(s *Scenario) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Description != nil {
		s.Description = u.Description
	}
	if u.Tags != nil {
		s.Tags = *u.Tags
	}
	if u.InitialPrice != nil {
		s.InitialPrice = *u.InitialPrice
	}
	if u.UsefulLifeYears != nil {
		s.UsefulLifeYears = *u.UsefulLifeYears
	}
	if u.ResidualValue != nil {
		s.ResidualValue = *u.ResidualValue
	}
	if u.AnnualMaintenance != nil {
		s.AnnualMaintenance = *u.AnnualMaintenance
	}
	if u.AnnualOperatingCost != nil {
		s.AnnualOperatingCost = *u.AnnualOperatingCost
	}
	if u.DiscountRate != nil {
		s.DiscountRate = *u.DiscountRate
	}
}

// ScenarioFilter selects one page of scenarios.
type ScenarioFilter struct {
	Page    int
	PerPage int
	Search  string
}

// Offset is the number of rows skipped before the page starts.
func (f ScenarioFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// ScenarioPage is one page of a scenario listing.
type ScenarioPage struct {
	Items   []Scenario `json:"items"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

// ScenarioStats aggregates monthly costs across every saved scenario.
type ScenarioStats struct {
	TotalScenarios int64   `bson:"total_scenarios" json:"total_scenarios"`
	AvgMonthlyCost float64 `bson:"avg_monthly_cost" json:"avg_monthly_cost"`
	MinMonthlyCost float64 `bson:"min_monthly_cost" json:"min_monthly_cost"`
	MaxMonthlyCost float64 `bson:"max_monthly_cost" json:"max_monthly_cost"`
}
