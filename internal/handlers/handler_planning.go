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

// planningHandler handles HTTP requests for savings goals and life events.
type planningHandler struct {
	goalService      portssvc.GoalSvcFacade
	lifeEventService portssvc.LifeEventSvcFacade
}

func newPlanningHandler(gs portssvc.GoalSvcFacade, les portssvc.LifeEventSvcFacade) *planningHandler {
	return &planningHandler{goalService: gs, lifeEventService: les}
}

// registerPlanningRoutes registers goal and life event routes.
func registerPlanningRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade, lifeEventService portssvc.LifeEventSvcFacade) {
	h := newPlanningHandler(goalService, lifeEventService)

	goals := rg.Group("/goals")
	{
		goals.GET("", h.listGoals)
		goals.POST("", h.createGoal)
		goals.PUT("/:goalId", h.updateGoal)
	}

	events := rg.Group("/life-events")
	{
		events.GET("", h.listLifeEvents)
		events.POST("", h.createLifeEvent)
	}
}

// listGoals godoc
// @Summary List savings goals
// @Description Retrieves the user's goals, newest first
// @Tags planning
// @Produce json
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /goals [get]
func (h *planningHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list goals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags planning
// @Accept json
// @Produce json
// @Param goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /goals [post]
func (h *planningHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create goal", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// updateGoal godoc
// @Summary Update a savings goal
// @Description Applies partial changes to a goal, keeping derived amounts consistent
// @Tags planning
// @Accept json
// @Produce json
// @Param goalId path string true "Goal ID"
// @Param goal body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{goalId} [put]
func (h *planningHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	goalID := c.Param("goalId")

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update goal", slog.String("goalId", goalID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

// listLifeEvents godoc
// @Summary List life events
// @Description Retrieves the user's upcoming life events, soonest first
// @Tags planning
// @Produce json
// @Success 200 {array} dto.LifeEventResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /life-events [get]
func (h *planningHandler) listLifeEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	events, err := h.lifeEventService.ListLifeEvents(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list life events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve life events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// createLifeEvent godoc
// @Summary Create a life event
// @Tags planning
// @Accept json
// @Produce json
// @Param event body dto.CreateLifeEventRequest true "Event details"
// @Success 201 {object} dto.LifeEventResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /life-events [post]
func (h *planningHandler) createLifeEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateLifeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := h.lifeEventService.CreateLifeEvent(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create life event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create life event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}
