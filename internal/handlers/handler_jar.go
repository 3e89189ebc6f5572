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

// jarHandler handles HTTP requests related to savings jars.
type jarHandler struct {
	jarService portssvc.JarSvcFacade
}

func newJarHandler(js portssvc.JarSvcFacade) *jarHandler {
	return &jarHandler{jarService: js}
}

// registerJarRoutes registers savings jar routes.
func registerJarRoutes(rg *gin.RouterGroup, jarService portssvc.JarSvcFacade) {
	h := newJarHandler(jarService)

	jars := rg.Group("/jars")
	{
		jars.GET("", h.listJars)
		jars.POST("", h.createJar)
		jars.GET("/:jarId", h.getJar)
		jars.POST("/:jarId/deposits", h.deposit)
		jars.DELETE("/:jarId", h.archiveJar)
	}
}

// listJars godoc
// @Summary List active jars
// @Description Retrieves the user's active savings jars sorted by deadline, pacing fields computed on read
// @Tags jars
// @Produce json
// @Success 200 {array} dto.JarResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /jars [get]
func (h *jarHandler) listJars(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jars, err := h.jarService.ListJars(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list jars", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jars"})
		return
	}

	c.JSON(http.StatusOK, jars)
}

// createJar godoc
// @Summary Create a savings jar
// @Description Creates a new jar with defaulted icon and styling when omitted
// @Tags jars
// @Accept json
// @Produce json
// @Param jar body dto.CreateJarRequest true "Jar details"
// @Success 201 {object} dto.JarResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /jars [post]
func (h *jarHandler) createJar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	jar, err := h.jarService.CreateJar(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create jar", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create jar"})
		return
	}

	c.JSON(http.StatusCreated, jar)
}

// getJar godoc
// @Summary Get a jar
// @Description Retrieves one jar with its deposit history
// @Tags jars
// @Produce json
// @Param jarId path string true "Jar ID"
// @Success 200 {object} dto.JarResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Jar not found"
// @Security BearerAuth
// @Router /jars/{jarId} [get]
func (h *jarHandler) getJar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jarID := c.Param("jarId")

	jar, err := h.jarService.GetJarByID(c.Request.Context(), userID, jarID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Jar not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get jar", slog.String("jarId", jarID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jar"})
		return
	}

	c.JSON(http.StatusOK, jar)
}

// deposit godoc
// @Summary Deposit into a jar
// @Description Adds a deposit after checking it against the user's unallocated cash. Crossing the target completes the jar.
// @Tags jars
// @Accept json
// @Produce json
// @Param jarId path string true "Jar ID"
// @Param deposit body dto.DepositRequest true "Deposit amount in rupees"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} map[string]string "Validation error or deposit exceeds unallocated cash"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Jar not found"
// @Security BearerAuth
// @Router /jars/{jarId}/deposits [post]
func (h *jarHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jarID := c.Param("jarId")

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.jarService.Deposit(c.Request.Context(), userID, jarID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Jar not found"})
			return
		}
		logger.Error("Failed to deposit into jar", slog.String("jarId", jarID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record deposit"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// archiveJar godoc
// @Summary Archive a jar
// @Description Marks a jar archived so it no longer appears in the active list
// @Tags jars
// @Produce json
// @Param jarId path string true "Jar ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Jar not found"
// @Security BearerAuth
// @Router /jars/{jarId} [delete]
func (h *jarHandler) archiveJar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jarID := c.Param("jarId")

	if err := h.jarService.ArchiveJar(c.Request.Context(), userID, jarID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Jar not found"})
			return
		}
		logger.Error("Failed to archive jar", slog.String("jarId", jarID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive jar"})
		return
	}

	c.Status(http.StatusNoContent)
}
