package services

import (
	"context"
	"testing"
	"time"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/pkg/authtoken"
	"github.com/caceasy/caceasy-core/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.db, env.validator, ratelimit.NewMemoryRateLimiter(), authtoken.NewService("test-secret", time.Hour), env.users, env.cfg)
}

// seedOtp stores a known code so verification can be exercised without reading logs.
func (e *testEnv) seedOtp(t *testing.T, phone, code string, expiresAt time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.db.Create(&models.Otp{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: expiresAt,
	}).Error)
}

func TestRequestOTPStoresHashedCode(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)

	require.NoError(t, auth.RequestOTP(context.Background(), &models.OtpRequest{Phone: "+919400000001"}))

	var otp models.Otp
	require.NoError(t, env.db.Where("phone = ?", "+919400000001").First(&otp).Error)
	assert.NotEmpty(t, otp.CodeHash)
	assert.False(t, otp.Verified)
	assert.True(t, otp.ExpiresAt.After(time.Now()))
}

func TestRequestOTPThrottlesResend(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)
	ctx := context.Background()

	require.NoError(t, auth.RequestOTP(ctx, &models.OtpRequest{Phone: "+919400000002"}))

	err := auth.RequestOTP(ctx, &models.OtpRequest{Phone: "+919400000002"})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTooManyRequests))

	// other phones are not affected
	require.NoError(t, auth.RequestOTP(ctx, &models.OtpRequest{Phone: "+919400000003"}))
	assert.Equal(t, int64(2), env.count(t, &models.Otp{}, "1 = 1"))
}

func TestRequestOTPRejectsBadPhone(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)

	err := auth.RequestOTP(context.Background(), &models.OtpRequest{Phone: "not-a-phone"})
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
}

func TestVerifyOTPCreatesMason(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)
	phone := "+919400000004"
	env.seedOtp(t, phone, "123456", time.Now().Add(time.Minute))

	res, err := auth.VerifyOTP(context.Background(), &models.OtpVerifyRequest{Phone: phone, Code: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleMason, res.Principal.Role)
	assert.Equal(t, phone, res.Principal.Phone)
	assert.Equal(t, int64(1), env.count(t, &models.User{}, "phone = ?", phone))

	principal, err := auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Principal.ID, principal.ID)
	assert.Equal(t, models.RoleMason, principal.Role)

	// a verified code cannot be replayed
	_, err = auth.VerifyOTP(context.Background(), &models.OtpVerifyRequest{Phone: phone, Code: "123456"})
	assert.True(t, errors.IsKind(err, errors.KindUnauthorized))
}

func TestVerifyOTPSignsInDealer(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)
	dealer := env.seedDealer(t, "+918400000001")
	env.seedOtp(t, dealer.Phone, "654321", time.Now().Add(time.Minute))

	res, err := auth.VerifyOTP(context.Background(), &models.OtpVerifyRequest{Phone: dealer.Phone, Code: "654321"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDealer, res.Principal.Role)
	assert.Equal(t, dealer.ID, res.Principal.ID)
	assert.Equal(t, int64(0), env.count(t, &models.User{}, "phone = ?", dealer.Phone))
}

func TestVerifyOTPRejectsWrongOrExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)
	ctx := context.Background()

	env.seedOtp(t, "+919400000005", "111111", time.Now().Add(time.Minute))
	_, err := auth.VerifyOTP(ctx, &models.OtpVerifyRequest{Phone: "+919400000005", Code: "222222"})
	assert.True(t, errors.IsKind(err, errors.KindUnauthorized))

	env.seedOtp(t, "+919400000006", "333333", time.Now().Add(-time.Minute))
	_, err = auth.VerifyOTP(ctx, &models.OtpVerifyRequest{Phone: "+919400000006", Code: "333333"})
	assert.True(t, errors.IsKind(err, errors.KindUnauthorized))

	assert.Equal(t, int64(0), env.count(t, &models.User{}, "1 = 1"))
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuthService(env)

	other := authtoken.NewService("other-secret", time.Hour)
	token, err := other.Generate(env.seedUser(t, "+919400000007").ID, "+919400000007", string(models.RoleMason))
	require.NoError(t, err)

	_, err = auth.Authenticate(token)
	assert.True(t, errors.IsKind(err, errors.KindUnauthorized))
}
