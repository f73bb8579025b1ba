package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/tco/internal/service/calculator"
	"github.com/mamadbah2/tco/pkg/clients/tcoapi"
	"github.com/mamadbah2/tco/pkg/tco"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type rootOptions struct {
	apiURL       string
	timeout      time.Duration
	horizonYears float64
	output       string
}

// Execute runs the tco command line.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tco",
		Short: "Total cost of ownership calculator",
		Long: `Computes the total cost of ownership of assets, ranks alternatives
and finds the break-even point between two purchases.

Examples:
  tco calc --price 450000 --life 12 --residual 90000 --maintenance 5000
  tco compare --file options.yaml
  tco breakeven --file pair.yaml
  tco compare --file options.yaml --api http://localhost:8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("unsupported output %q (table, json)", opts.output)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "TCO API base URL (default: compute locally)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "API request timeout")
	root.PersistentFlags().Float64Var(&opts.horizonYears, "horizon", tco.DefaultSearchConfig().HorizonYears, "Break-even search horizon in years (local mode)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "Output format (table, json)")

	root.AddCommand(newCalcCmd(opts), newCompareCmd(opts), newBreakevenCmd(opts))
	return root
}

// backend selects the remote API or the in-process engine.
func (o *rootOptions) backend() tcoapi.Client {
	if o.apiURL != "" {
		return tcoapi.NewClient(o.apiURL, o.timeout)
	}
	search := tco.DefaultSearchConfig()
	search.HorizonYears = o.horizonYears
	return calculator.NewService(nil, 0, search, nil)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
