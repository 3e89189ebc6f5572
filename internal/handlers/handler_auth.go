package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
	"github.com/gigpaisa/gigpaisa_backend/pkg/config"
)

// authHandler handles the phone OTP login flow.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{authService: as, userService: us}
}

// registerAuthRoutes registers the public registration and login routes. The
// OTP endpoints sit behind a per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.User)

	rate, err := limiter.NewRateFromFormatted(cfg.OTPRateLimit)
	if err != nil {
		// Fall back to a conservative limit rather than starting unthrottled.
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	otpLimiter := limiter.New(limitermem.NewStore(), rate)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/otp/send", middleware.RateLimit(otpLimiter), h.sendOTP)
		auth.POST("/otp/verify", middleware.RateLimit(otpLimiter), h.verifyOTP)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates an account for a phone number so it can receive OTP logins
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Phone already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, user)
}

// sendOTP godoc
// @Summary Request a login code
// @Description Issues a short-lived one-time code to a registered phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Registered phone number"
// @Success 200 {object} dto.SendOTPResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No account for this phone"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/otp/send [post]
func (h *authHandler) sendOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.SendOTP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this phone number"})
		} else {
			logger.Error("Failed to send OTP", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// verifyOTP godoc
// @Summary Exchange a login code for a token
// @Description Verifies a one-time code and issues a JWT; the code is single-use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Wrong or expired code"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/otp/verify [post]
func (h *authHandler) verifyOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong or expired code"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this phone number"})
		} else {
			logger.Error("Failed to verify OTP", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		}
		return
	}

	logger.Info("OTP login succeeded", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}
