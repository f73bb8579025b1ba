package models

import "github.com/mamadbah2/tco/pkg/tco"

// OptionInput is the wire form of an ownership option. Bounds follow the
// public API contract; a missing discount rate falls back to
// tco.DefaultDiscountRate.
type OptionInput struct {
	InitialPrice        float64  `json:"initial_price" binding:"required,gt=0"`
	UsefulLifeYears     float64  `json:"useful_life_years" binding:"required,gt=0,lte=100"`
	ResidualValue       float64  `json:"residual_value" binding:"gte=0"`
	AnnualMaintenance   float64  `json:"annual_maintenance" binding:"gte=0"`
	AnnualOperatingCost float64  `json:"annual_operating_cost" binding:"gte=0"`
	DiscountRate        *float64 `json:"discount_rate" binding:"omitempty,gte=0,lte=1"`
}

// Option converts the wire form into an engine option.
func (in OptionInput) Option() tco.Option {
	rate := tco.DefaultDiscountRate
	if in.DiscountRate != nil {
		rate = *in.DiscountRate
	}
	return tco.Option{
		InitialPrice:        in.InitialPrice,
		UsefulLifeYears:     in.UsefulLifeYears,
		ResidualValue:       in.ResidualValue,
		AnnualMaintenance:   in.AnnualMaintenance,
		AnnualOperatingCost: in.AnnualOperatingCost,
		DiscountRate:        rate,
	}
}

// CalculationResponse echoes the normalized input next to its metrics.
type CalculationResponse struct {
	Input  tco.Option `json:"input"`
	Result tco.Result `json:"result"`
}

// CompareOption is an OptionInput with a display name.
type CompareOption struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	OptionInput
}

// CompareRequest lists the options to rank.
type CompareRequest struct {
	Options []CompareOption `json:"options" binding:"required,min=2,dive"`
}

// NamedOptions converts the request into engine input.
func (r CompareRequest) NamedOptions() []tco.NamedOption {
	out := make([]tco.NamedOption, 0, len(r.Options))
	for _, opt := range r.Options {
		out = append(out, tco.NamedOption{Name: opt.Name, Option: opt.Option()})
	}
	return out
}

// CompareResponse holds the ranked rows and the cheapest option's name.
type CompareResponse struct {
	Results    []tco.Ranked `json:"results"`
	BestOption string       `json:"best_option"`
}

// BreakevenRequest holds the two options to compare over time.
type BreakevenRequest struct {
	OptionA OptionInput `json:"option_a" binding:"required"`
	OptionB OptionInput `json:"option_b" binding:"required"`
}

// BreakevenResponse reports the crossing point, if any.
type BreakevenResponse struct {
	BreakevenYears *float64 `json:"breakeven_years"`
	HasBreakeven   bool     `json:"has_breakeven"`
	CheaperAfter   tco.Side `json:"cheaper_after,omitempty"`
	HorizonYears   float64  `json:"horizon_years"`
	Message        string   `json:"message"`
}

// NewBreakevenResponse converts an engine result into its wire form.
func NewBreakevenResponse(b tco.Breakeven, message string) BreakevenResponse {
	resp := BreakevenResponse{
		HasBreakeven: b.Found,
		CheaperAfter: b.CheaperAfter,
		HorizonYears: b.Horizon,
		Message:      message,
	}
	if b.Found {
		years := b.Years
		resp.BreakevenYears = &years
	}
	return resp
}
