package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	cfg          *infrastructures.AppConfig
	users        *UserService
	dealers      *DealerService
	audit        *AuditService
	redemption   *RedemptionService
	wallet       *WalletService
	payouts      *PayoutService
	coupons      *CouponService
	validator    *infrastructures.Validator
	metrics      *infrastructures.Metrics
	creditPolicy *CreditingPolicy
}

// newTestDB opens a private in-memory sqlite database. A single connection
// makes concurrent transactions queue behind each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	cfg := &infrastructures.AppConfig{
		RedeemLockTimeout: 10 * time.Second,
		PointValueINR:     decimal.NewFromInt(1),
		OTPTTL:            5 * time.Minute,
		OTPResendInterval: time.Minute,
	}
	validator := infrastructures.NewValidator()
	metrics := infrastructures.NewMetrics()

	users := NewUserService(db)
	audit := NewAuditService(db)
	policy := NewCreditingPolicy(users)

	return &testEnv{
		db:           db,
		cfg:          cfg,
		users:        users,
		dealers:      NewDealerService(db, validator),
		audit:        audit,
		redemption:   NewRedemptionService(db, policy, metrics, cfg),
		wallet:       NewWalletService(db, metrics, cfg),
		payouts:      NewPayoutService(db, validator, audit, metrics),
		coupons:      NewCouponService(db, validator, audit),
		validator:    validator,
		metrics:      metrics,
		creditPolicy: policy,
	}
}

func (e *testEnv) seedUser(t *testing.T, phone string) *models.User {
	t.Helper()
	user := &models.User{Phone: phone}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedDealer(t *testing.T, phone string) *models.Dealer {
	t.Helper()
	dealer := &models.Dealer{Name: "Dealer " + phone, Phone: phone}
	require.NoError(t, e.db.Create(dealer).Error)
	return dealer
}

func (e *testEnv) seedCoupon(t *testing.T, token string, points int64) *models.Coupon {
	t.Helper()
	batch := &models.Batch{Name: "batch-" + token, PointsPerCoupon: points, Quantity: 1}
	require.NoError(t, e.db.Create(batch).Error)

	coupon := &models.Coupon{Token: token, BatchID: batch.ID, Points: points, Status: models.CouponStatusIssued}
	require.NoError(t, e.db.Create(coupon).Error)
	return coupon
}

func (e *testEnv) creditUser(t *testing.T, userID uuid.UUID, amount int64) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.Transaction{
		UserID: userID,
		Amount: amount,
		Type:   models.TransactionTypeRedemption,
	}).Error)
}

func (e *testEnv) creditDealer(t *testing.T, dealerID uuid.UUID, amount int64) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.DealerTransaction{
		DealerID: dealerID,
		Type:     models.DealerTransactionTypeCredit,
		Amount:   amount,
	}).Error)
}

func (e *testEnv) coupon(t *testing.T, token string) models.Coupon {
	t.Helper()
	var coupon models.Coupon
	require.NoError(t, e.db.Where("token = ?", token).First(&coupon).Error)
	return coupon
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

// afterQuery runs fn after every SELECT issued through the query callbacks
// until the test ends.
func (e *testEnv) afterQuery(t *testing.T, name string, fn func(tx *gorm.DB)) {
	t.Helper()
	require.NoError(t, e.db.Callback().Query().After("gorm:query").Register(name, fn))
	t.Cleanup(func() { _ = e.db.Callback().Query().Remove(name) })
}

// afterRow is afterQuery for Row/Scan reads such as balance sums.
func (e *testEnv) afterRow(t *testing.T, name string, fn func(tx *gorm.DB)) {
	t.Helper()
	require.NoError(t, e.db.Callback().Row().After("gorm:row").Register(name, fn))
	t.Cleanup(func() { _ = e.db.Callback().Row().Remove(name) })
}

// lockedForUpdate reports whether the statement carries a FOR UPDATE clause.
// sqlite drops the clause from the SQL, the statement still records it.
func lockedForUpdate(tx *gorm.DB) bool {
	c, ok := tx.Statement.Clauses["FOR"]
	if !ok {
		return false
	}
	locking, ok := c.Expression.(clause.Locking)
	return ok && locking.Strength == "UPDATE"
}
