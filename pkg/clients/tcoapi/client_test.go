package tcoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/pkg/tco"
)

func newServer(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var premium = tco.Option{InitialPrice: 450000, UsefulLifeYears: 12, ResidualValue: 90000, AnnualMaintenance: 5000, DiscountRate: 0}

func TestCalculate(t *testing.T) {
	var got models.OptionInput
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tco/calculate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, models.CalculationResponse{Result: tco.Result{TotalCost: 420000, MonthlyCost: 2916.67}})
	})

	res, err := client.Calculate(context.Background(), premium)
	require.NoError(t, err)
	assert.Equal(t, 2916.67, res.MonthlyCost)

	assert.Equal(t, 450000.0, got.InitialPrice)
	require.NotNil(t, got.DiscountRate)
	assert.Zero(t, *got.DiscountRate)
}

func TestCompare(t *testing.T) {
	var got models.CompareRequest
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tco/compare", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, models.CompareResponse{
			Results:    []tco.Ranked{{Name: "b", Rank: 1}, {Name: "a", Rank: 2}},
			BestOption: "b",
		})
	})

	rows, err := client.Compare(context.Background(), []tco.NamedOption{{Name: "a", Option: premium}, {Name: "b", Option: premium}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Name)

	require.Len(t, got.Options, 2)
	assert.Equal(t, "a", got.Options[0].Name)
	assert.Equal(t, 12.0, got.Options[0].UsefulLifeYears)
}

func TestBreakeven(t *testing.T) {
	years := 9.0
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tco/breakeven", r.URL.Path)
		writeJSON(w, http.StatusOK, models.BreakevenResponse{BreakevenYears: &years, HasBreakeven: true, CheaperAfter: tco.SideA, HorizonYears: 100})
	})

	b, err := client.Breakeven(context.Background(), premium, premium)
	require.NoError(t, err)
	assert.Equal(t, tco.Breakeven{Years: 9, Found: true, CheaperAfter: tco.SideA, Horizon: 100}, b)
}

func TestBreakeven_NotFound(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"breakeven_years":null,"has_breakeven":false,"horizon_years":100,"message":"none"}`))
	})

	b, err := client.Breakeven(context.Background(), premium, premium)
	require.NoError(t, err)
	assert.False(t, b.Found)
	assert.Zero(t, b.Years)
}

func TestErrors(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tco/calculate":
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "details": "useful_life_years"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	_, err := client.Calculate(context.Background(), premium)
	require.Error(t, err)
	assert.ErrorIs(t, err, tco.ErrInvalidInput)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "useful_life_years")

	_, err = client.Compare(context.Background(), nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.NotErrorIs(t, err, tco.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).Calculate(context.Background(), premium)
	assert.Error(t, err)
}
