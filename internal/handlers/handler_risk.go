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

// riskHandler handles HTTP requests for risk predictions and analyses.
type riskHandler struct {
	riskService portssvc.RiskSvcFacade
}

func newRiskHandler(rs portssvc.RiskSvcFacade) *riskHandler {
	return &riskHandler{riskService: rs}
}

// registerRiskRoutes registers risk prediction and analysis routes.
func registerRiskRoutes(rg *gin.RouterGroup, riskService portssvc.RiskSvcFacade) {
	h := newRiskHandler(riskService)

	risk := rg.Group("/risk")
	{
		predictions := risk.Group("/predictions")
		{
			predictions.POST("", h.storePrediction)
			predictions.GET("/latest", h.getLatestPrediction)
			predictions.GET("/latest/risks", h.getRisksByCategory)
			predictions.GET("/history", h.getPredictionHistory)
			predictions.GET("/critical", h.getCriticalSummary)
			predictions.DELETE("/expired", h.cleanupExpired)
			predictions.POST("/:predictionId/feedback", h.recordFeedback)
		}

		analyses := risk.Group("/analyses")
		{
			analyses.POST("", h.storeAnalysis)
			analyses.GET("/latest", h.getLatestAnalysis)
			analyses.GET("/history", h.getAnalysisHistory)
		}
	}
}

// storePrediction godoc
// @Summary Store a risk prediction
// @Description Persists an externally computed prediction, replacing the user's still-valid ones unless disabled
// @Tags risk
// @Accept json
// @Produce json
// @Param prediction body dto.CreatePredictionRequest true "Prediction payload"
// @Success 201 {object} dto.PredictionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/predictions [post]
func (h *riskHandler) storePrediction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	prediction, err := h.riskService.StorePrediction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to store prediction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store prediction"})
		return
	}

	c.JSON(http.StatusCreated, prediction)
}

// getLatestPrediction godoc
// @Summary Get the latest valid prediction
// @Tags risk
// @Produce json
// @Success 200 {object} dto.PredictionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No valid prediction"
// @Security BearerAuth
// @Router /risk/predictions/latest [get]
func (h *riskHandler) getLatestPrediction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prediction, err := h.riskService.GetLatestPrediction(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No valid prediction available"})
			return
		}
		logger.Error("Failed to get latest prediction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prediction"})
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// getRisksByCategory godoc
// @Summary Get latest risks for a category
// @Description Filters the latest valid prediction's risks to one category. Risks tagged "all" always match.
// @Tags risk
// @Produce json
// @Param category query string true "Budget category, income, expense or saving"
// @Success 200 {array} domain.PredictedRisk
// @Failure 400 {object} map[string]string "Missing category"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No valid prediction"
// @Security BearerAuth
// @Router /risk/predictions/latest/risks [get]
func (h *riskHandler) getRisksByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required"})
		return
	}

	risks, err := h.riskService.GetRisksByCategory(c.Request.Context(), userID, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No valid prediction available"})
			return
		}
		logger.Error("Failed to get risks by category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risks"})
		return
	}

	c.JSON(http.StatusOK, risks)
}

// getPredictionHistory godoc
// @Summary Get prediction history
// @Description Retrieves recent predictions, newest first, with the score trend
// @Tags risk
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} dto.PredictionHistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/predictions/history [get]
func (h *riskHandler) getPredictionHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
		return
	}

	history, err := h.riskService.GetPredictionHistory(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to get prediction history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prediction history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// getCriticalSummary godoc
// @Summary List users at critical risk
// @Tags risk
// @Produce json
// @Success 200 {object} dto.CriticalRiskSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/predictions/critical [get]
func (h *riskHandler) getCriticalSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.riskService.GetCriticalSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get critical risk summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve critical risk summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// cleanupExpired godoc
// @Summary Remove expired predictions
// @Tags risk
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/predictions/expired [delete]
func (h *riskHandler) cleanupExpired(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	removed, err := h.riskService.CleanupExpired(c.Request.Context())
	if err != nil {
		logger.Error("Failed to clean up expired predictions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up expired predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// recordFeedback godoc
// @Summary Record feedback on a prediction
// @Tags risk
// @Accept json
// @Produce json
// @Param predictionId path string true "Prediction ID"
// @Param feedback body dto.PredictionFeedbackRequest true "Feedback type"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown feedback type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Prediction not found"
// @Security BearerAuth
// @Router /risk/predictions/{predictionId}/feedback [post]
func (h *riskHandler) recordFeedback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	predictionID := c.Param("predictionId")

	var req dto.PredictionFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.riskService.RecordFeedback(c.Request.Context(), predictionID, req); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prediction not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record prediction feedback", slog.String("predictionId", predictionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record feedback"})
		return
	}

	c.Status(http.StatusNoContent)
}

// storeAnalysis godoc
// @Summary Store a monthly risk analysis
// @Tags risk
// @Accept json
// @Produce json
// @Param analysis body dto.CreateAnalysisRequest true "Analysis payload"
// @Success 201 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/analyses [post]
func (h *riskHandler) storeAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	analysis, err := h.riskService.StoreAnalysis(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to store analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analysis"})
		return
	}

	c.JSON(http.StatusCreated, analysis)
}

// getLatestAnalysis godoc
// @Summary Get the latest analysis
// @Tags risk
// @Produce json
// @Success 200 {object} dto.AnalysisResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No analysis available"
// @Security BearerAuth
// @Router /risk/analyses/latest [get]
func (h *riskHandler) getLatestAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	analysis, err := h.riskService.GetLatestAnalysis(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No analysis available"})
			return
		}
		logger.Error("Failed to get latest analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// getAnalysisHistory godoc
// @Summary Get analysis history
// @Tags risk
// @Produce json
// @Param limit query int false "Max entries" default(6)
// @Success 200 {array} dto.AnalysisResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /risk/analyses/history [get]
func (h *riskHandler) getAnalysisHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
		return
	}

	analyses, err := h.riskService.GetAnalysisHistory(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to get analysis history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis history"})
		return
	}

	c.JSON(http.StatusOK, analyses)
}
