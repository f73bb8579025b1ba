package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/tco/pkg/tco"
)

// optionSpec is the YAML form of an ownership option.
type optionSpec struct {
	Name                string   `yaml:"name"`
	InitialPrice        float64  `yaml:"initial_price"`
	UsefulLifeYears     float64  `yaml:"useful_life_years"`
	ResidualValue       float64  `yaml:"residual_value"`
	AnnualMaintenance   float64  `yaml:"annual_maintenance"`
	AnnualOperatingCost float64  `yaml:"annual_operating_cost"`
	DiscountRate        *float64 `yaml:"discount_rate"`
}

func (s optionSpec) option() (tco.Option, error) {
	opts := []tco.OptionFunc{
		tco.WithResidualValue(s.ResidualValue),
		tco.WithAnnualMaintenance(s.AnnualMaintenance),
		tco.WithAnnualOperatingCost(s.AnnualOperatingCost),
	}
	if s.DiscountRate != nil {
		opts = append(opts, tco.WithDiscountRate(*s.DiscountRate))
	}
	return tco.NewOption(s.InitialPrice, s.UsefulLifeYears, opts...)
}

type compareFile struct {
	Options []optionSpec `yaml:"options"`
}

type breakevenFile struct {
	OptionA *optionSpec `yaml:"option_a"`
	OptionB *optionSpec `yaml:"option_b"`
}

// loadCompareFile accepts either a top-level list or an "options" key.
func loadCompareFile(path string) ([]tco.NamedOption, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: no options defined", path)
	}

	var specs []optionSpec
	if doc.Content[0].Kind == yaml.SequenceNode {
		err = decodeStrict(raw, &specs)
	} else {
		var wrapped compareFile
		err = decodeStrict(raw, &wrapped)
		specs = wrapped.Options
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: no options defined", path)
	}

	out := make([]tco.NamedOption, 0, len(specs))
	for i, s := range specs {
		opt, err := s.option()
		if err != nil {
			return nil, fmt.Errorf("%s: option %d (%q): %w", path, i, s.Name, err)
		}
		out = append(out, tco.NamedOption{Name: s.Name, Option: opt})
	}
	return out, nil
}

func loadBreakevenFile(path string) (tco.Option, tco.Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tco.Option{}, tco.Option{}, fmt.Errorf("read %s: %w", path, err)
	}

	var f breakevenFile
	if err := decodeStrict(raw, &f); err != nil {
		return tco.Option{}, tco.Option{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.OptionA == nil || f.OptionB == nil {
		return tco.Option{}, tco.Option{}, fmt.Errorf("%s: option_a and option_b are required", path)
	}

	a, err := f.OptionA.option()
	if err != nil {
		return tco.Option{}, tco.Option{}, fmt.Errorf("%s: option_a: %w", path, err)
	}
	b, err := f.OptionB.option()
	if err != nil {
		return tco.Option{}, tco.Option{}, fmt.Errorf("%s: option_b: %w", path, err)
	}
	return a, b, nil
}

func decodeStrict(raw []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}
