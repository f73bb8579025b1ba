package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository/memory"
	"github.com/mamadbah2/tco/internal/server/handlers"
	"github.com/mamadbah2/tco/internal/server/router"
	"github.com/mamadbah2/tco/internal/service/calculator"
	"github.com/mamadbah2/tco/internal/service/scenarios"
	"github.com/mamadbah2/tco/pkg/tco"
)

const compareYAML = `options:
  - name: Premium
    initial_price: 450000
    useful_life_years: 12
    residual_value: 90000
    annual_maintenance: 5000
  - name: Budget
    initial_price: 50000
    useful_life_years: 3
    annual_maintenance: 8000
`

const compareListYAML = `- name: Premium
  initial_price: 450000
  useful_life_years: 12
  residual_value: 90000
  annual_maintenance: 5000
- name: Budget
  initial_price: 50000
  useful_life_years: 3
  annual_maintenance: 8000
`

const breakevenYAML = `option_a:
  initial_price: 1000
  useful_life_years: 50
option_b:
  initial_price: 100
  useful_life_years: 50
  annual_operating_cost: 100
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCalc(t *testing.T) {
	out, err := run(t, "calc", "--price", "450000", "--life", "12", "--residual", "90000", "--maintenance", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, "420000.00")
	assert.Contains(t, out, "2916.67")
	assert.Contains(t, out, "95.89")
}

func TestCalc_JSON(t *testing.T) {
	out, err := run(t, "calc", "--price", "100000", "--life", "5", "--operating", "0", "--rate", "0", "-o", "json")
	require.NoError(t, err)

	var resp models.CalculationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Zero(t, resp.Input.DiscountRate)
	assert.Equal(t, 20000.0, resp.Result.AnnualCost)
	assert.Equal(t, 100000.0, resp.Result.NPVTCO)
}

func TestCalc_Errors(t *testing.T) {
	_, err := run(t, "calc", "--price", "100")
	assert.ErrorContains(t, err, "life")

	_, err = run(t, "calc", "--price", "100", "--life", "-2")
	assert.ErrorIs(t, err, tco.ErrInvalidInput)

	_, err = run(t, "calc", "--price", "100", "--life", "2", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output")
}

func TestCompare(t *testing.T) {
	for name, content := range map[string]string{"wrapped": compareYAML, "list": compareListYAML} {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, "compare", "--file", writeFile(t, content))
			require.NoError(t, err)
			assert.Contains(t, out, "Premium")
			assert.Contains(t, out, "Best option: Budget")
		})
	}
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare")
	assert.ErrorContains(t, err, "file")

	_, err = run(t, "compare", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read")

	_, err = run(t, "compare", "--file", writeFile(t, ""))
	assert.ErrorContains(t, err, "no options")

	_, err = run(t, "compare", "--file", writeFile(t, "options:\n  - name: x\n    price: 3\n"))
	assert.ErrorContains(t, err, "price")

	_, err = run(t, "compare", "--file", writeFile(t, "options:\n  - name: x\n    initial_price: 3\n"))
	assert.ErrorIs(t, err, tco.ErrInvalidInput)

	_, err = run(t, "compare", "--file", writeFile(t, "options:\n  - initial_price: 3\n    useful_life_years: 1\n"))
	assert.ErrorIs(t, err, tco.ErrInvalidInput)
}

func TestBreakeven(t *testing.T) {
	path := writeFile(t, breakevenYAML)

	out, err := run(t, "breakeven", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Break-even after 9 years; option A is cheaper")

	out, err = run(t, "breakeven", "--file", path, "--horizon", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "No break-even within 5 years")

	out, err = run(t, "breakeven", "--file", path, "-o", "json")
	require.NoError(t, err)
	var resp models.BreakevenResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.HasBreakeven)
	require.NotNil(t, resp.BreakevenYears)
	assert.InDelta(t, 9.0, *resp.BreakevenYears, 0.01)

	_, err = run(t, "breakeven", "--file", writeFile(t, "option_a:\n  initial_price: 1\n  useful_life_years: 1\n"))
	assert.ErrorContains(t, err, "option_b")
}

func TestRemoteAPI(t *testing.T) {
	r := router.New(
		handlers.NewTCOHandler(calculator.NewService(nil, 0, tco.DefaultSearchConfig(), nil), nil),
		handlers.NewScenarioHandler(scenarios.NewService(memory.NewRepository(), nil), nil, nil),
		nil,
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	out, err := run(t, "compare", "--file", writeFile(t, compareYAML), "--api", srv.URL, "-o", "json")
	require.NoError(t, err)
	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Budget", resp.BestOption)

	out, err = run(t, "breakeven", "--file", writeFile(t, breakevenYAML), "--api", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Break-even after 9 years")

	_, err = run(t, "calc", "--price", "100", "--life", "101", "--api", srv.URL)
	assert.ErrorIs(t, err, tco.ErrInvalidInput)
}

func TestOptionSpec_DefaultRate(t *testing.T) {
	opt, err := optionSpec{InitialPrice: 10, UsefulLifeYears: 1}.option()
	require.NoError(t, err)
	assert.Equal(t, tco.DefaultDiscountRate, opt.DiscountRate)

	zero := 0.0
	opt, err = optionSpec{InitialPrice: 10, UsefulLifeYears: 1, DiscountRate: &zero}.option()
	require.NoError(t, err)
	assert.Zero(t, opt.DiscountRate)
}
