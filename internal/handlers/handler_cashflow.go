package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// cashflowHandler handles HTTP requests for the daily cashflow cache.
type cashflowHandler struct {
	cashflowService portssvc.CashflowSvcFacade
}

func newCashflowHandler(cs portssvc.CashflowSvcFacade) *cashflowHandler {
	return &cashflowHandler{cashflowService: cs}
}

// registerCashflowRoutes registers daily cashflow and heatmap routes.
func registerCashflowRoutes(rg *gin.RouterGroup, cashflowService portssvc.CashflowSvcFacade) {
	h := newCashflowHandler(cashflowService)

	cashflow := rg.Group("/cashflow")
	{
		cashflow.GET("/daily", h.getDaily)
		cashflow.GET("/heatmap", h.getHeatmap)
	}
}

// getDaily godoc
// @Summary Get one day's cashflow
// @Description Retrieves a day's income/expense/net summary, recomputing it from the ledger when absent
// @Tags cashflow
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailyCashflowResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cashflow/daily [get]
func (h *cashflowHandler) getDaily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	cashflow, err := h.cashflowService.GetDailyCashflow(c.Request.Context(), userID, date)
	if err != nil {
		logger.Error("Failed to get daily cashflow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve daily cashflow"})
		return
	}

	c.JSON(http.StatusOK, cashflow)
}

// getHeatmap godoc
// @Summary Get the monthly heatmap
// @Description Returns a full calendar month of day cells in whole rupees, neutral placeholders for days without activity
// @Tags cashflow
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.HeatmapResponse
// @Failure 400 {object} map[string]string "Invalid month or year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cashflow/heatmap [get]
func (h *cashflowHandler) getHeatmap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.HeatmapParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	heatmap, err := h.cashflowService.GetHeatmap(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to build heatmap", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build heatmap"})
		return
	}

	c.JSON(http.StatusOK, heatmap)
}
