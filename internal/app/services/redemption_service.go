package services

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RedemptionService is the coupon state machine. A token moves issued ->
// redeemed at most once, together with its Scan row and ledger credit.
type RedemptionService struct {
	db          *gorm.DB
	policy      *CreditingPolicy
	metrics     *infrastructures.Metrics
	lockTimeout time.Duration
}

func NewRedemptionService(db *gorm.DB, policy *CreditingPolicy, metrics *infrastructures.Metrics, cfg *infrastructures.AppConfig) *RedemptionService {
	return &RedemptionService{
		db:          db,
		policy:      policy,
		metrics:     metrics,
		lockTimeout: cfg.RedeemLockTimeout,
	}
}

func (s *RedemptionService) Redeem(ctx context.Context, token string, actor models.Actor, scanCtx models.ScanContext) (*models.RedemptionResult, error) {
	started := time.Now()
	path := string(actor.Kind)

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.NewBadRequestError("Token is required")
	}

	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	var result *models.RedemptionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setLockTimeout(tx, s.lockTimeout); err != nil {
			return errors.NewInternalServerError(err, "Failed to redeem coupon")
		}

		var coupon models.Coupon
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&coupon).Error
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFoundError("Token not found")
			}
			return errors.NewInternalServerError(err, "Failed to redeem coupon")
		}

		if coupon.Status != models.CouponStatusIssued {
			return errors.NewAlreadyRedeemedError(token)
		}

		// Guarded by status as well as the row lock, so the transition holds on
		// stores that ignore FOR UPDATE.
		now := time.Now()
		res := tx.Model(&models.Coupon{}).
			Where("token = ? AND status = ?", token, models.CouponStatusIssued).
			Updates(map[string]interface{}{
				"status":      models.CouponStatusRedeemed,
				"redeemed_at": now,
			})
		if res.Error != nil {
			return errors.NewInternalServerError(res.Error, "Failed to redeem coupon")
		}
		if res.RowsAffected != 1 {
			return errors.NewAlreadyRedeemedError(token)
		}

		scan := newScan(token, scanCtx)
		credit, err := s.policy.Apply(tx, actor, &coupon, scan)
		if err != nil {
			return err
		}

		if err := tx.Create(scan).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to record scan")
		}

		result = &models.RedemptionResult{
			Token:            token,
			ScanID:           scan.ID,
			PointsCredited:   coupon.Points,
			CreditedUserID:   credit.UserID,
			CreditedDealerID: credit.DealerID,
		}
		return nil
	})
	if err != nil {
		appErr := errors.AsAppError(err, "Failed to redeem coupon")
		s.metrics.ObserveRedemption(path, strings.ToLower(string(appErr.Kind)), started)
		logrus.WithFields(logrus.Fields{
			"token":     token,
			"actor":     actor.Kind,
			"user_id":   actor.UserID,
			"dealer_id": actor.DealerID,
			"kind":      appErr.Kind,
		}).Info("redemption refused")
		return nil, appErr
	}

	s.metrics.ObserveRedemption(path, "success", started)
	switch {
	case result.CreditedUserID != nil:
		s.metrics.AddPointsCredited(string(models.PartyTypeUser), result.PointsCredited)
	case result.CreditedDealerID != nil:
		s.metrics.AddPointsCredited(string(models.PartyTypeDealer), result.PointsCredited)
	}

	logrus.WithFields(logrus.Fields{
		"token":              token,
		"scan_id":            result.ScanID,
		"points":             result.PointsCredited,
		"credited_user_id":   result.CreditedUserID,
		"credited_dealer_id": result.CreditedDealerID,
	}).Info("coupon redeemed")

	return result, nil
}

func newScan(token string, scanCtx models.ScanContext) *models.Scan {
	scan := &models.Scan{
		ID:         uuid.New(),
		Token:      token,
		DeviceID:   scanCtx.DeviceID,
		ClientTime: scanCtx.ClientTime,
		Success:    true,
	}
	if len(scanCtx.GPS) > 0 && string(scanCtx.GPS) != "null" {
		gps := string(scanCtx.GPS)
		scan.GPS = &gps
	}
	return scan
}

// setLockTimeout bounds row-lock waits on postgres. Other dialects rely on the
// context deadline alone.
func setLockTimeout(tx *gorm.DB, timeout time.Duration) error {
	if timeout <= 0 || tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())).Error
}
