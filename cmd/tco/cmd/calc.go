package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/report"
	"github.com/mamadbah2/tco/pkg/tco"
)

func newCalcCmd(root *rootOptions) *cobra.Command {
	var spec optionSpec
	var rate float64

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the TCO of a single option",
		Long: `Computes total, annual, monthly and daily cost plus the NPV of one option.

Examples:
  tco calc --price 450000 --life 12 --residual 90000 --maintenance 5000
  tco calc --price 1200 --life 4 --operating 150 --rate 0.05 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec.DiscountRate = &rate
			opt, err := spec.option()
			if err != nil {
				return err
			}

			result, err := root.backend().Calculate(cmd.Context(), opt)
			if err != nil {
				return err
			}

			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.CalculationResponse{Input: opt, Result: result})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.RenderResult(opt, result))
			return err
		},
	}

	f := cmd.Flags()
	f.Float64Var(&spec.InitialPrice, "price", 0, "Initial purchase price")
	f.Float64Var(&spec.UsefulLifeYears, "life", 0, "Useful life in years")
	f.Float64Var(&spec.ResidualValue, "residual", 0, "Residual value at end of life")
	f.Float64Var(&spec.AnnualMaintenance, "maintenance", 0, "Annual maintenance cost")
	f.Float64Var(&spec.AnnualOperatingCost, "operating", 0, "Annual operating cost")
	f.Float64Var(&rate, "rate", tco.DefaultDiscountRate, "Annual discount rate")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("life")

	return cmd
}
