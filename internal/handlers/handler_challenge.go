package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// challengeHandler handles HTTP requests for daily challenges.
type challengeHandler struct {
	challengeService portssvc.ChallengeSvcFacade
}

func newChallengeHandler(cs portssvc.ChallengeSvcFacade) *challengeHandler {
	return &challengeHandler{challengeService: cs}
}

// registerChallengeRoutes registers daily challenge routes.
func registerChallengeRoutes(rg *gin.RouterGroup, challengeService portssvc.ChallengeSvcFacade) {
	h := newChallengeHandler(challengeService)

	challenges := rg.Group("/challenges")
	{
		challenges.GET("/today", h.listToday)
		challenges.GET("/stats", h.getStats)
		challenges.POST("/:challengeId/complete", h.complete)
	}
}

// listToday godoc
// @Summary List today's challenges
// @Description Retrieves today's non-expired challenges sorted by priority
// @Tags challenges
// @Produce json
// @Success 200 {array} dto.ChallengeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /challenges/today [get]
func (h *challengeHandler) listToday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	challenges, err := h.challengeService.ListTodaysChallenges(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list today's challenges", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve challenges"})
		return
	}

	c.JSON(http.StatusOK, challenges)
}

// getStats godoc
// @Summary Get challenge statistics
// @Description Returns completion counters for today, this week and this month plus the month-to-date reward total
// @Tags challenges
// @Produce json
// @Success 200 {object} dto.ChallengeStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /challenges/stats [get]
func (h *challengeHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.challengeService.GetStats(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get challenge stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve challenge stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// complete godoc
// @Summary Complete a challenge
// @Description Marks an active challenge completed, records the reward as income and deposits it into the rewards jar
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Param completion body dto.CompleteChallengeRequest false "Optional completion details"
// @Success 200 {object} dto.CompleteChallengeResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Challenge not found"
// @Failure 409 {object} map[string]string "Challenge is not active"
// @Security BearerAuth
// @Router /challenges/{challengeId}/complete [post]
func (h *challengeHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	challengeID := c.Param("challengeId")

	var req dto.CompleteChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.challengeService.CompleteChallenge(c.Request.Context(), userID, challengeID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Challenge is not active"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to complete challenge", slog.String("challengeId", challengeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete challenge"})
		return
	}

	c.JSON(http.StatusOK, result)
}
