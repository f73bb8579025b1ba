package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/report"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank options by annual cost",
		Long: `Ranks the options listed in a YAML file from cheapest to most expensive
annual cost.

File format:
  options:
    - name: Premium
      initial_price: 450000
      useful_life_years: 12
      residual_value: 90000
      annual_maintenance: 5000
    - name: Budget
      initial_price: 50000
      useful_life_years: 3
      annual_maintenance: 8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := loadCompareFile(file)
			if err != nil {
				return err
			}

			rows, err := root.backend().Compare(cmd.Context(), options)
			if err != nil {
				return err
			}

			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.CompareResponse{Results: rows, BestOption: rows[0].Name})
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, report.RenderComparison(rows)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Best option: %s\n", rows[0].Name)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file listing the options")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
