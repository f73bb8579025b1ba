package tco

import (
	"fmt"
	"sort"
	"strings"
)

// NamedOption is an Option labelled for comparison.
type NamedOption struct {
	Name   string `json:"name" yaml:"name"`
	Option `yaml:",inline"`
}

// Ranked is one row of a comparison. Rank 1 is the cheapest per year.
type Ranked struct {
	Name            string  `json:"name"`
	Rank            int     `json:"rank"`
	InitialPrice    float64 `json:"initial_price"`
	UsefulLifeYears float64 `json:"useful_life_years"`
	Result
}

// CompareTCO evaluates every option independently and orders the rows by
// ascending annual cost. Equal annual costs keep their input order.
func CompareTCO(options []NamedOption) ([]Ranked, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: options list cannot be empty", ErrInvalidInput)
	}

	rows := make([]Ranked, 0, len(options))
	for i, opt := range options {
		if strings.TrimSpace(opt.Name) == "" {
			return nil, fmt.Errorf("%w: option %d: name is required", ErrInvalidInput, i)
		}
		res, err := CalculateTCO(opt.Option)
		if err != nil {
			return nil, fmt.Errorf("option %d (%q): %w", i, opt.Name, err)
		}
		rows = append(rows, Ranked{
			Name:            opt.Name,
			InitialPrice:    opt.InitialPrice,
			UsefulLifeYears: opt.UsefulLifeYears,
			Result:          res,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AnnualCost < rows[j].AnnualCost
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
