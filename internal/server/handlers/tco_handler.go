package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/report"
	"github.com/mamadbah2/tco/pkg/tco"
)

// Calculator is the engine facade used by TCOHandler.
type Calculator interface {
	Calculate(ctx context.Context, o tco.Option) (tco.Result, error)
	Compare(ctx context.Context, options []tco.NamedOption) ([]tco.Ranked, error)
	Breakeven(ctx context.Context, a, b tco.Option) (tco.Breakeven, error)
}

// TCOHandler serves the stateless calculation endpoints.
type TCOHandler struct {
	calc   Calculator
	logger *zap.Logger
}

// NewTCOHandler constructs the calculation handler.
func NewTCOHandler(calc Calculator, logger *zap.Logger) *TCOHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TCOHandler{calc: calc, logger: logger}
}

// Calculate returns the TCO metrics of a single option.
func (h *TCOHandler) Calculate(c *gin.Context) {
	var req models.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	opt := req.Option()
	result, err := h.calc.Calculate(c.Request.Context(), opt)
	if err != nil {
		respondError(c, h.logger, "calculate tco failed", err)
		return
	}

	c.JSON(http.StatusOK, models.CalculationResponse{Input: opt, Result: result})
}

// Compare ranks two or more options by annual cost.
func (h *TCOHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	rows, err := h.calc.Compare(c.Request.Context(), req.NamedOptions())
	if err != nil {
		respondError(c, h.logger, "compare tco failed", err)
		return
	}

	c.JSON(http.StatusOK, models.CompareResponse{Results: rows, BestOption: rows[0].Name})
}

// Breakeven finds when the cumulative costs of option A and option B cross.
func (h *TCOHandler) Breakeven(c *gin.Context) {
	var req models.BreakevenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	b, err := h.calc.Breakeven(c.Request.Context(), req.OptionA.Option(), req.OptionB.Option())
	if err != nil {
		respondError(c, h.logger, "breakeven failed", err)
		return
	}

	c.JSON(http.StatusOK, models.NewBreakevenResponse(b, report.DescribeBreakeven(b)))
}
