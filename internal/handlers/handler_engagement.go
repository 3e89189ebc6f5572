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

// engagementHandler handles notifications, the money story and the
// captured message inbox.
type engagementHandler struct {
	notificationService portssvc.NotificationSvcFacade
	storyService        portssvc.StorySvcFacade
	messageService      portssvc.InboundMessageSvcFacade
}

func newEngagementHandler(ns portssvc.NotificationSvcFacade, ss portssvc.StorySvcFacade, ms portssvc.InboundMessageSvcFacade) *engagementHandler {
	return &engagementHandler{notificationService: ns, storyService: ss, messageService: ms}
}

// registerEngagementRoutes registers notification, story and message routes.
func registerEngagementRoutes(rg *gin.RouterGroup, ns portssvc.NotificationSvcFacade, ss portssvc.StorySvcFacade, ms portssvc.InboundMessageSvcFacade) {
	h := newEngagementHandler(ns, ss, ms)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("", h.createNotification)
		notifications.PUT("/read-all", h.markAllRead)
	}

	rg.GET("/story/latest", h.getLatestStory)

	messages := rg.Group("/messages")
	{
		messages.GET("", h.listMessages)
		messages.POST("", h.captureMessage)
		messages.GET("/:messageId", h.getMessage)
		messages.PUT("/:messageId", h.updateMessage)
		messages.DELETE("/:messageId", h.deleteMessage)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Retrieves the latest notifications, newest first
// @Tags engagement
// @Produce json
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications [get]
func (h *engagementHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list notifications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// createNotification godoc
// @Summary Create a notification
// @Tags engagement
// @Accept json
// @Produce json
// @Param notification body dto.CreateNotificationRequest true "Notification details"
// @Success 201 {object} dto.NotificationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications [post]
func (h *engagementHandler) createNotification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create notification", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// markAllRead godoc
// @Summary Mark all notifications read
// @Tags engagement
// @Produce json
// @Success 200 {object} dto.MarkAllReadResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (h *engagementHandler) markAllRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to mark notifications read", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getLatestStory godoc
// @Summary Get the latest money story
// @Description Retrieves the newest story with current and previous monthly summaries and month-over-month metrics
// @Tags engagement
// @Produce json
// @Success 200 {object} dto.StoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No story available"
// @Security BearerAuth
// @Router /story/latest [get]
func (h *engagementHandler) getLatestStory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	story, err := h.storyService.GetLatestStory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No story available"})
			return
		}
		logger.Error("Failed to get latest story", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve story"})
		return
	}

	c.JSON(http.StatusOK, story)
}

// listMessages godoc
// @Summary List captured messages
// @Description Retrieves a page of captured device messages, newest first
// @Tags engagement
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.InboundMessageResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /messages [get]
func (h *engagementHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Offset must be a non-negative integer"})
		return
	}

	messages, err := h.messageService.ListMessages(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list messages", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// captureMessage godoc
// @Summary Capture a device message
// @Tags engagement
// @Accept json
// @Produce json
// @Param message body dto.CreateInboundMessageRequest true "Raw message"
// @Success 201 {object} dto.InboundMessageResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /messages [post]
func (h *engagementHandler) captureMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateInboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message, err := h.messageService.CaptureMessage(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to capture message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// getMessage godoc
// @Summary Get a captured message
// @Tags engagement
// @Produce json
// @Param messageId path string true "Message ID"
// @Success 200 {object} dto.InboundMessageResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /messages/{messageId} [get]
func (h *engagementHandler) getMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	messageID := c.Param("messageId")

	message, err := h.messageService.GetMessage(c.Request.Context(), userID, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		logger.Error("Failed to get message", slog.String("messageId", messageID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		return
	}

	c.JSON(http.StatusOK, message)
}

// updateMessage godoc
// @Summary Update a captured message
// @Description Reclassifies or annotates a captured message
// @Tags engagement
// @Accept json
// @Produce json
// @Param messageId path string true "Message ID"
// @Param message body dto.UpdateInboundMessageRequest true "Fields to change"
// @Success 200 {object} dto.InboundMessageResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /messages/{messageId} [put]
func (h *engagementHandler) updateMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	messageID := c.Param("messageId")

	var req dto.UpdateInboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message, err := h.messageService.UpdateMessage(c.Request.Context(), userID, messageID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update message", slog.String("messageId", messageID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, message)
}

// deleteMessage godoc
// @Summary Delete a captured message
// @Tags engagement
// @Produce json
// @Param messageId path string true "Message ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /messages/{messageId} [delete]
func (h *engagementHandler) deleteMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	messageID := c.Param("messageId")

	if err := h.messageService.DeleteMessage(c.Request.Context(), userID, messageID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		logger.Error("Failed to delete message", slog.String("messageId", messageID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.Status(http.StatusNoContent)
}
