package deliveries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caceasy/caceasy-core/internal/app/middlewares"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/app/services"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/caceasy/caceasy-core/pkg/authtoken"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminKey = "test_admin_key_0123456789"

type testServer struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *authtoken.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	cfg := &infrastructures.AppConfig{
		AdminAPIKey:       testAdminKey,
		AdminRateLimit:    100,
		OTPTTL:            5 * time.Minute,
		OTPResendInterval: time.Minute,
		RedeemLockTimeout: 10 * time.Second,
		PointValueINR:     decimal.NewFromInt(1),
	}
	validator := infrastructures.NewValidator()
	metrics := infrastructures.NewMetrics()
	limiter := ratelimit.NewMemoryRateLimiter()
	tokens := authtoken.NewService("test-secret", time.Hour)

	userService := services.NewUserService(db)
	dealerService := services.NewDealerService(db, validator)
	auditService := services.NewAuditService(db)
	walletService := services.NewWalletService(db, metrics, cfg)
	redemptionService := services.NewRedemptionService(db, services.NewCreditingPolicy(userService), metrics, cfg)
	payoutService := services.NewPayoutService(db, validator, auditService, metrics)
	couponService := services.NewCouponService(db, validator, auditService)
	authService := services.NewAuthService(db, validator, limiter, tokens, userService, cfg)

	authMiddleware := middlewares.NewAuthMiddleware(authService)
	rateLimitMiddleware := middlewares.NewRateLimitMiddleware(limiter)
	adminKeyMiddleware := middlewares.NewAdminKeyMiddleware(cfg, limiter)

	app := fiber.New(fiber.Config{ErrorHandler: pkg.ErrorResponse})
	NewHealthHandler(cfg).RegisterRoutes(app)
	NewAuthHandler(authService, rateLimitMiddleware).RegisterRoutes(app)
	NewScanHandler(redemptionService, walletService, validator, authMiddleware, rateLimitMiddleware).RegisterRoutes(app)
	NewUserHandler(walletService, userService, validator, authMiddleware).RegisterRoutes(app)
	NewDealerHandler(dealerService, walletService, validator, authMiddleware).RegisterRoutes(app)
	NewCouponHandler(couponService, adminKeyMiddleware).RegisterRoutes(app)
	NewAdminHandler(payoutService, couponService, auditService, adminKeyMiddleware).RegisterRoutes(app)

	return &testServer{app: app, db: db, tokens: tokens}
}

func (s *testServer) mason(t *testing.T, phone string) (*models.User, string) {
	t.Helper()
	user := &models.User{Phone: phone}
	require.NoError(t, s.db.Create(user).Error)
	token, err := s.tokens.Generate(user.ID, user.Phone, string(models.RoleMason))
	require.NoError(t, err)
	return user, token
}

func (s *testServer) dealer(t *testing.T, phone string) (*models.Dealer, string) {
	t.Helper()
	dealer := &models.Dealer{Name: "Dealer " + phone, Phone: phone}
	require.NoError(t, s.db.Create(dealer).Error)
	token, err := s.tokens.Generate(dealer.ID, dealer.Phone, string(models.RoleDealer))
	require.NoError(t, err)
	return dealer, token
}

func (s *testServer) coupon(t *testing.T, token string, points int64) {
	t.Helper()
	batch := &models.Batch{Name: "batch-" + token, PointsPerCoupon: points, Quantity: 1}
	require.NoError(t, s.db.Create(batch).Error)
	require.NoError(t, s.db.Create(&models.Coupon{
		Token:   token,
		BatchID: batch.ID,
		Points:  points,
		Status:  models.CouponStatusIssued,
	}).Error)
}

// do sends a JSON request and decodes the response envelope.
func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}, headers ...string) (int, models.WebResponse[json.RawMessage]) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope models.WebResponse[json.RawMessage]
	if resp.StatusCode != http.StatusNoContent {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if len(raw) > 0 && raw[0] == '{' {
			require.NoError(t, json.Unmarshal(raw, &envelope))
		}
	}
	return resp.StatusCode, envelope
}
