package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/report"
)

func newBreakevenCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find when two options cost the same",
		Long: `Finds the first time the cumulative costs of option_a and option_b cross,
including replacement purchases at the end of each useful life.

File format:
  option_a:
    initial_price: 1000
    useful_life_years: 10
  option_b:
    initial_price: 100
    useful_life_years: 10
    annual_operating_cost: 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, b, err := loadBreakevenFile(file)
			if err != nil {
				return err
			}

			result, err := root.backend().Breakeven(cmd.Context(), a, b)
			if err != nil {
				return err
			}

			message := report.DescribeBreakeven(result)
			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.NewBreakevenResponse(result, message))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with option_a and option_b")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
