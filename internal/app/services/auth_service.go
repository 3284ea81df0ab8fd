package services

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/authtoken"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpLength = 6

// AuthService issues phone OTPs and exchanges verified codes for bearer tokens.
// Codes are logged rather than delivered.
type AuthService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	limiter        ratelimit.RateLimiter
	tokens         *authtoken.Service
	userService    *UserService
	otpTTL         time.Duration
	resendInterval time.Duration
}

func NewAuthService(db *gorm.DB, validator *infrastructures.Validator, limiter ratelimit.RateLimiter, tokens *authtoken.Service, userService *UserService, cfg *infrastructures.AppConfig) *AuthService {
	return &AuthService{
		db:             db,
		validator:      validator,
		limiter:        limiter,
		tokens:         tokens,
		userService:    userService,
		otpTTL:         cfg.OTPTTL,
		resendInterval: cfg.OTPResendInterval,
	}
}

func (s *AuthService) RequestOTP(ctx context.Context, req *models.OtpRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	allowed, info := s.limiter.Allow("otp:"+req.Phone, ratelimit.Rate{Requests: 1, Window: s.resendInterval})
	if !allowed {
		return errors.NewTooManyRequestsError("Please wait before requesting another OTP", info.Limit, info.Reset.Unix())
	}

	code, err := pkg.RandomNumberString(otpLength)
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to generate OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to generate OTP")
	}

	otp := &models.Otp{
		Phone:     req.Phone,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.db.WithContext(ctx).Create(otp).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to store OTP")
	}

	logrus.WithFields(logrus.Fields{
		"phone": req.Phone,
		"otp":   code,
	}).Info("otp issued")

	return nil
}

// VerifyOTP checks the newest unexpired code for the phone. A phone registered
// as a dealer signs in as that dealer, anything else as a mason.
func (s *AuthService) VerifyOTP(ctx context.Context, req *models.OtpVerifyRequest) (*models.AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var principal models.Principal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp models.Otp
		err := tx.Where("phone = ? AND verified = ? AND expires_at > ?", req.Phone, false, time.Now()).
			Order("created_at DESC").
			First(&otp).Error
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewUnauthorizedError("OTP not found or expired")
			}
			return errors.NewInternalServerError(err, "Failed to verify OTP")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(req.Code)); err != nil {
			return errors.NewUnauthorizedError("Incorrect OTP")
		}

		if err := tx.Model(&models.Otp{}).Where("id = ?", otp.ID).Update("verified", true).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to verify OTP")
		}

		var dealer models.Dealer
		err = tx.Where("phone = ?", req.Phone).First(&dealer).Error
		if err == nil {
			principal = models.Principal{ID: dealer.ID, Phone: dealer.Phone, Role: models.RoleDealer}
			return nil
		}
		if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewInternalServerError(err, "Failed to verify OTP")
		}

		user, err := s.userService.FindOrCreateByPhone(tx, req.Phone)
		if err != nil {
			return err
		}
		principal = models.Principal{ID: user.ID, Phone: user.Phone, Role: models.RoleMason}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err, "Failed to verify OTP")
	}

	token, err := s.tokens.Generate(principal.ID, principal.Phone, string(principal.Role))
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to issue token")
	}

	return &models.AuthResponse{Token: token, Principal: principal}, nil
}

// Authenticate resolves a bearer token into the calling principal.
func (s *AuthService) Authenticate(token string) (*models.Principal, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if stdErrors.Is(err, authtoken.ErrExpiredToken) {
			return nil, errors.NewUnauthorizedError("Token expired")
		}
		return nil, errors.NewUnauthorizedError("Invalid token")
	}

	return principalFromClaims(claims)
}
