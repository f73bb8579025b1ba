package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/domain/models"
)

// ScenarioService is the scenario CRUD surface used by ScenarioHandler.
type ScenarioService interface {
	Create(ctx context.Context, in models.ScenarioCreate) (models.Scenario, error)
	Get(ctx context.Context, id string) (models.Scenario, error)
	List(ctx context.Context, filter models.ScenarioFilter) (models.ScenarioPage, error)
	Update(ctx context.Context, id string, upd models.ScenarioUpdate) (models.Scenario, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.ScenarioStats, error)
}

// Exporter pushes saved scenarios to an external spreadsheet.
type Exporter interface {
	ExportScenarios(ctx context.Context) (int, error)
}

// ScenarioHandler serves the saved scenario endpoints.
type ScenarioHandler struct {
	svc      ScenarioService
	exporter Exporter
	logger   *zap.Logger
}

type listQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Search  string `form:"search" binding:"omitempty,max=255"`
}

// NewScenarioHandler constructs the scenario handler.
func NewScenarioHandler(svc ScenarioService, exporter Exporter, logger *zap.Logger) *ScenarioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioHandler{svc: svc, exporter: exporter, logger: logger}
}

// Create saves a new scenario with its computed metrics.
func (h *ScenarioHandler) Create(c *gin.Context) {
	var req models.ScenarioCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	scenario, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "create scenario failed", err)
		return
	}

	c.JSON(http.StatusCreated, scenario)
}

// List returns one page of scenarios.
func (h *ScenarioHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), models.ScenarioFilter{Page: q.Page, PerPage: q.PerPage, Search: q.Search})
	if err != nil {
		respondError(c, h.logger, "list scenarios failed", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get returns one scenario.
func (h *ScenarioHandler) Get(c *gin.Context) {
	scenario, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get scenario failed", err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

// Update applies a partial update and recomputes the metrics.
func (h *ScenarioHandler) Update(c *gin.Context) {
	var req models.ScenarioUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	scenario, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "update scenario failed", err)
		return
	}

	c.JSON(http.StatusOK, scenario)
}

// Delete removes a scenario.
func (h *ScenarioHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete scenario failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns aggregate monthly costs.
func (h *ScenarioHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "scenario stats failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export writes every scenario to the configured spreadsheet.
func (h *ScenarioHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export is not configured"})
		return
	}

	n, err := h.exporter.ExportScenarios(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "export scenarios failed", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"exported": n})
}
