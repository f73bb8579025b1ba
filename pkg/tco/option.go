package tco

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDiscountRate is the yearly rate applied when callers do not choose one.
const DefaultDiscountRate = 0.03

// ErrInvalidInput is returned for any option or search parameter the engine refuses.
var ErrInvalidInput = errors.New("invalid input")

// Option describes one way of owning an asset.
//
// ResidualValue is realised at end of life and may be negative to model a
// disposal cost. A zero DiscountRate disables discounting; use NewOption to
// get DefaultDiscountRate filled in.
type Option struct {
	InitialPrice        float64 `json:"initial_price" yaml:"initial_price"`
	UsefulLifeYears     float64 `json:"useful_life_years" yaml:"useful_life_years"`
	ResidualValue       float64 `json:"residual_value" yaml:"residual_value"`
	AnnualMaintenance   float64 `json:"annual_maintenance" yaml:"annual_maintenance"`
	AnnualOperatingCost float64 `json:"annual_operating_cost" yaml:"annual_operating_cost"`
	DiscountRate        float64 `json:"discount_rate" yaml:"discount_rate"`
}

// OptionFunc customises an Option built by NewOption.
type OptionFunc func(*Option)

// WithResidualValue sets the value recovered at end of life.
func WithResidualValue(v float64) OptionFunc {
	return func(o *Option) { o.ResidualValue = v }
}

// WithAnnualMaintenance sets the yearly maintenance cost.
func WithAnnualMaintenance(v float64) OptionFunc {
	return func(o *Option) { o.AnnualMaintenance = v }
}

// WithAnnualOperatingCost sets the yearly operating cost.
func WithAnnualOperatingCost(v float64) OptionFunc {
	return func(o *Option) { o.AnnualOperatingCost = v }
}

// WithDiscountRate overrides DefaultDiscountRate.
func WithDiscountRate(v float64) OptionFunc {
	return func(o *Option) { o.DiscountRate = v }
}

// NewOption builds a validated Option. Residual value, maintenance and
// operating cost default to 0, the discount rate to DefaultDiscountRate.
func NewOption(initialPrice, usefulLifeYears float64, opts ...OptionFunc) (Option, error) {
	o := Option{
		InitialPrice:    initialPrice,
		UsefulLifeYears: usefulLifeYears,
		DiscountRate:    DefaultDiscountRate,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.Validate(); err != nil {
		return Option{}, err
	}
	return o, nil
}

// RecurringCost is the yearly maintenance plus operating cost.
func (o Option) RecurringCost() float64 {
	return o.AnnualMaintenance + o.AnnualOperatingCost
}

// Validate reports the first problem found, wrapped in ErrInvalidInput.
func (o Option) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initial_price", o.InitialPrice},
		{"useful_life_years", o.UsefulLifeYears},
		{"residual_value", o.ResidualValue},
		{"annual_maintenance", o.AnnualMaintenance},
		{"annual_operating_cost", o.AnnualOperatingCost},
		{"discount_rate", o.DiscountRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}

	switch {
	case o.UsefulLifeYears <= 0:
		return fmt.Errorf("%w: useful_life_years must be positive", ErrInvalidInput)
	case o.InitialPrice < 0:
		return fmt.Errorf("%w: initial_price cannot be negative", ErrInvalidInput)
	case o.AnnualMaintenance < 0 || o.AnnualOperatingCost < 0:
		return fmt.Errorf("%w: annual costs cannot be negative", ErrInvalidInput)
	case o.DiscountRate < 0:
		return fmt.Errorf("%w: discount_rate cannot be negative", ErrInvalidInput)
	}
	return nil
}
