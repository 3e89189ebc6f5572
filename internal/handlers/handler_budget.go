package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// budgetHandler handles HTTP requests for weekly budget snapshots.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers weekly budget routes.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("/current", h.getCurrentWeek)
		budgets.GET("/history", h.getHistory)
		budgets.GET("/:year/:week", h.getWeek)
		budgets.POST("/generate", h.generate)
		budgets.POST("/refresh", h.refresh)
		budgets.PUT("/limits", h.updateLimits)
	}
}

// getCurrentWeek godoc
// @Summary Get the current week's budget
// @Description Retrieves the current ISO week's snapshot, generating it from the ledger when absent
// @Tags budgets
// @Produce json
// @Success 200 {object} dto.WeeklyBudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /budgets/current [get]
func (h *budgetHandler) getCurrentWeek(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetCurrentWeekBudget(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get current week budget", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// getWeek godoc
// @Summary Get a specific week's budget
// @Description Retrieves the snapshot for an ISO year and week number
// @Tags budgets
// @Produce json
// @Param year path int true "ISO year"
// @Param week path int true "ISO week number (1-53)"
// @Success 200 {object} dto.WeeklyBudgetResponse
// @Failure 400 {object} map[string]string "Invalid year or week"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No snapshot for that week"
// @Security BearerAuth
// @Router /budgets/{year}/{week} [get]
func (h *budgetHandler) getWeek(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year must be a number"})
		return
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Week must be a number"})
		return
	}

	budget, err := h.budgetService.GetWeekBudget(c.Request.Context(), userID, year, week)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No budget snapshot for that week"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get week budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		}
		return
	}

	c.JSON(http.StatusOK, budget)
}

// getHistory godoc
// @Summary Get budget history
// @Description Retrieves the last weeks of snapshots plus their spending trend
// @Tags budgets
// @Produce json
// @Param weeks query int false "Number of weeks" default(8)
// @Success 200 {object} dto.BudgetHistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /budgets/history [get]
func (h *budgetHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "8"))

	history, err := h.budgetService.GetBudgetHistory(c.Request.Context(), userID, weeks)
	if err != nil {
		logger.Error("Failed to get budget history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// generate godoc
// @Summary Generate a weekly budget
// @Description Recomputes and upserts the snapshot for the week containing weekDate (current week when absent)
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.GenerateBudgetRequest false "Optional week selector"
// @Success 200 {object} dto.WeeklyBudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /budgets/generate [post]
func (h *budgetHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GenerateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.GenerateBudget(c.Request.Context(), userID, req.WeekDate)
	if err != nil {
		logger.Error("Failed to generate budget", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate budget"})
		return
	}

	logger.Info("Budget generated", slog.String("week_id", budget.WeekID))
	c.JSON(http.StatusOK, budget)
}

// refresh godoc
// @Summary Refresh the current week's budget
// @Description Recomputes the current week's snapshot from the ledger
// @Tags budgets
// @Produce json
// @Success 200 {object} dto.WeeklyBudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /budgets/refresh [post]
func (h *budgetHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GenerateBudget(c.Request.Context(), userID, nil)
	if err != nil {
		logger.Error("Failed to refresh budget", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh budget"})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// updateLimits godoc
// @Summary Update category limits
// @Description Replaces per-category limits (rupees) on the current week's snapshot
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.UpdateBudgetLimitsRequest true "New limits keyed by category"
// @Success 200 {object} dto.WeeklyBudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No snapshot for the current week"
// @Security BearerAuth
// @Router /budgets/limits [put]
func (h *budgetHandler) updateLimits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateBudgetLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudgetLimits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudgetLimits(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No budget snapshot for the current week"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update budget limits", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget limits"})
		}
		return
	}

	logger.Info("Budget limits updated", slog.String("week_id", budget.WeekID))
	c.JSON(http.StatusOK, budget)
}
