package services

import (
	"context"
	stdErrors "errors"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const couponInsertBatchSize = 500

type CouponService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewCouponService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *CouponService {
	return &CouponService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *CouponService) CreateBatch(ctx context.Context, adminIdentifier string, req *models.BatchCreateRequest) (*models.Batch, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	sku := req.SKU
	batch := &models.Batch{
		Name:            req.Name,
		SKU:             &sku,
		PointsPerCoupon: req.PointsPerCoupon,
		Quantity:        req.Quantity,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create batch")
		}
		return s.auditService.Log(tx, adminIdentifier, models.AuditActionBatchCreated, map[string]interface{}{
			"batch_id":        batch.ID,
			"name":            batch.Name,
			"sku":             sku,
			"points_per_scan": batch.PointsPerCoupon,
		})
	})
	if err != nil {
		return nil, errors.AsAppError(err, "Failed to create batch")
	}

	return batch, nil
}

// GenerateCoupons bulk-inserts issued coupons for a batch. Points default to
// the batch's points_per_coupon.
func (s *CouponService) GenerateCoupons(ctx context.Context, adminIdentifier string, req *models.CouponGenerateRequest) (*models.CouponGenerateResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid batch ID format")
	}

	var response *models.CouponGenerateResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.Batch
		if err := tx.Where("id = ?", batchID).First(&batch).Error; err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFoundError("Batch not found")
			}
			return errors.NewInternalServerError(err, "Failed to get batch")
		}

		points := batch.PointsPerCoupon
		if req.Points != nil {
			points = *req.Points
		}

		coupons := make([]models.Coupon, req.Quantity)
		tokens := make([]string, req.Quantity)
		for i := range coupons {
			token := uuid.NewString()
			if req.Prefix != nil && *req.Prefix != "" {
				token = *req.Prefix + "-" + token
			}
			tokens[i] = token
			coupons[i] = models.Coupon{
				Token:   token,
				BatchID: batch.ID,
				Points:  points,
				Status:  models.CouponStatusIssued,
			}
		}

		if err := tx.CreateInBatches(coupons, couponInsertBatchSize).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to generate coupons")
		}

		response = &models.CouponGenerateResponse{
			BatchID: batch.ID,
			Count:   len(tokens),
			Tokens:  tokens,
		}

		return s.auditService.Log(tx, adminIdentifier, models.AuditActionCouponsGenerated, map[string]interface{}{
			"batch_id": batch.ID,
			"quantity": req.Quantity,
			"points":   points,
		})
	})
	if err != nil {
		return nil, errors.AsAppError(err, "Failed to generate coupons")
	}

	logrus.WithFields(logrus.Fields{
		"batch_id": response.BatchID,
		"count":    response.Count,
	}).Info("coupons generated")

	return response, nil
}

func (s *CouponService) GetCoupon(ctx context.Context, token string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&coupon).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Coupon not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get coupon")
	}
	return &coupon, nil
}

// ListBatches reports every batch with issued/redeemed/pending counts computed
// from its coupons.
func (s *CouponService) ListBatches(ctx context.Context) ([]models.BatchSummary, error) {
	batches := []models.BatchSummary{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			b.id, b.name, b.sku, b.points_per_coupon, b.quantity, b.created_at,
			COUNT(c.token) AS issued,
			COALESCE(SUM(CASE WHEN c.status = ? THEN 1 ELSE 0 END), 0) AS redeemed,
			COALESCE(SUM(CASE WHEN c.status = ? THEN 1 ELSE 0 END), 0) AS pending
		FROM batches b
		LEFT JOIN coupons c ON c.batch_id = b.id
		GROUP BY b.id, b.name, b.sku, b.points_per_coupon, b.quantity, b.created_at
		ORDER BY b.created_at DESC`,
		models.CouponStatusRedeemed, models.CouponStatusIssued,
	).Scan(&batches).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get batches")
	}
	return batches, nil
}
