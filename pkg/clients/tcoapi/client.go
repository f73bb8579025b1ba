package tcoapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/pkg/tco"
)

const defaultTimeout = 15 * time.Second

// Client exposes the remote TCO calculation endpoints.
type Client interface {
	Calculate(ctx context.Context, o tco.Option) (tco.Result, error)
	Compare(ctx context.Context, options []tco.NamedOption) ([]tco.Ranked, error)
	Breakeven(ctx context.Context, a, b tco.Option) (tco.Breakeven, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an API client for the server at baseURL. A zero timeout
// uses the default.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("tco api error: status=%d, message=%s, details=%s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("tco api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Unwrap maps a 400 answer onto tco.ErrInvalidInput.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusBadRequest {
		return tco.ErrInvalidInput
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Calculate asks the server for the TCO metrics of o.
func (c *APIClient) Calculate(ctx context.Context, o tco.Option) (tco.Result, error) {
	result := new(models.CalculationResponse)
	if err := c.post(ctx, "/tco/calculate", toInput(o), result); err != nil {
		return tco.Result{}, fmt.Errorf("calculate: %w", err)
	}
	return result.Result, nil
}

// Compare asks the server to rank the options.
func (c *APIClient) Compare(ctx context.Context, options []tco.NamedOption) ([]tco.Ranked, error) {
	req := models.CompareRequest{Options: make([]models.CompareOption, 0, len(options))}
	for _, opt := range options {
		req.Options = append(req.Options, models.CompareOption{Name: opt.Name, OptionInput: toInput(opt.Option)})
	}

	result := new(models.CompareResponse)
	if err := c.post(ctx, "/tco/compare", req, result); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	return result.Results, nil
}

// Breakeven asks the server where the cumulative costs of a and b cross.
func (c *APIClient) Breakeven(ctx context.Context, a, b tco.Option) (tco.Breakeven, error) {
	req := models.BreakevenRequest{OptionA: toInput(a), OptionB: toInput(b)}

	result := new(models.BreakevenResponse)
	if err := c.post(ctx, "/tco/breakeven", req, result); err != nil {
		return tco.Breakeven{}, fmt.Errorf("breakeven: %w", err)
	}

	out := tco.Breakeven{Found: result.HasBreakeven, CheaperAfter: result.CheaperAfter, Horizon: result.HorizonYears}
	if result.BreakevenYears != nil {
		out.Years = *result.BreakevenYears
	}
	return out, nil
}

func (c *APIClient) post(ctx context.Context, path string, body, result interface{}) error {
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: message, Details: apiErr.Details}
	}

	return nil
}

func toInput(o tco.Option) models.OptionInput {
	rate := o.DiscountRate
	return models.OptionInput{
		InitialPrice:        o.InitialPrice,
		UsefulLifeYears:     o.UsefulLifeYears,
		ResidualValue:       o.ResidualValue,
		AnnualMaintenance:   o.AnnualMaintenance,
		AnnualOperatingCost: o.AnnualOperatingCost,
		DiscountRate:        &rate,
	}
}
