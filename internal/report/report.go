// Package report renders engine output for people: comparison tables,
// single results and break-even sentences.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/tco/pkg/tco"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")

	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(colorSuccess)
	borderStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// ComparisonHeaders names the columns produced by ComparisonRows.
var ComparisonHeaders = []string{
	"Rank", "Option", "Initial price", "Life (y)", "Monthly", "Annual",
	"Per day", "Total", "NPV TCO", "NPV annual", "Payback (y)",
}

// PaybackYears is the number of years of annual cost the initial price
// represents. It is 0 when the annual cost is not positive.
func PaybackYears(r tco.Ranked) float64 {
	if r.AnnualCost <= 0 {
		return 0
	}
	return tco.Round2(r.InitialPrice / r.AnnualCost)
}

// ComparisonRows formats ranked options as table rows in rank order.
func ComparisonRows(rows []tco.Ranked) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprint(r.Rank),
			r.Name,
			Money(r.InitialPrice),
			Years(r.UsefulLifeYears),
			Money(r.MonthlyCost),
			Money(r.AnnualCost),
			Money(r.CostPerDay),
			Money(r.TotalCost),
			Money(r.NPVTCO),
			Money(r.NPVAnnual),
			Years(PaybackYears(r)),
		})
	}
	return out
}

// RenderComparison draws the ranked options as a terminal table. The
// cheapest row is highlighted.
func RenderComparison(rows []tco.Ranked) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(ComparisonHeaders...).
		Rows(ComparisonRows(rows)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0:
				return bestStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// RenderResult draws the metrics of a single option.
func RenderResult(o tco.Option, r tco.Result) string {
	rows := [][]string{
		{"Initial price", Money(o.InitialPrice)},
		{"Useful life", Years(o.UsefulLifeYears) + " years"},
		{"Residual value", Money(o.ResidualValue)},
		{"Recurring cost / year", Money(o.RecurringCost())},
		{"Discount rate", Percent(o.DiscountRate)},
		{"Total cost", Money(r.TotalCost)},
		{"Annual cost", Money(r.AnnualCost)},
		{"Monthly cost", Money(r.MonthlyCost)},
		{"Cost per day", Money(r.CostPerDay)},
		{"NPV TCO", Money(r.NPVTCO)},
		{"NPV annual", Money(r.NPVAnnual)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// DescribeBreakeven summarizes a break-even search in one sentence.
func DescribeBreakeven(b tco.Breakeven) string {
	if !b.Found {
		return fmt.Sprintf("No break-even within %s years: the cost curves never cross", Years(b.Horizon))
	}
	return fmt.Sprintf("Break-even after %s years; option %s is cheaper from then on",
		Years(b.Years), strings.ToUpper(string(b.CheaperAfter)))
}

// Money formats an amount with two decimals.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Years formats a duration in years, dropping trailing zeros.
func Years(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

// Percent formats a rate such as 0.03 as "3%".
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).Round(2).String() + "%"
}
