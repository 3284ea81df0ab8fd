package services

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutService handles admin review of withdrawal requests. Review is terminal:
// only pending payouts can be approved or rejected.
type PayoutService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
	metrics      *infrastructures.Metrics
}

func NewPayoutService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService, metrics *infrastructures.Metrics) *PayoutService {
	return &PayoutService{
		db:           db,
		validator:    validator,
		auditService: auditService,
		metrics:      metrics,
	}
}

// ListPayouts returns payouts newest first, optionally filtered by status and party type.
func (s *PayoutService) ListPayouts(ctx context.Context, status *models.PayoutStatus, partyType *models.PartyType) ([]models.PayoutListItem, error) {
	query := s.db.WithContext(ctx).
		Table("payouts AS p").
		Select("p.*, u.phone AS user_phone, d.name AS dealer_name, d.phone AS dealer_phone, d.gst AS dealer_gst").
		Joins("LEFT JOIN users u ON p.user_id = u.id").
		Joins("LEFT JOIN dealers d ON p.dealer_id = d.id")

	if status != nil {
		query = query.Where("p.status = ?", *status)
	}
	if partyType != nil {
		query = query.Where("p.type = ?", *partyType)
	}

	payouts := []models.PayoutListItem{}
	if err := query.Order("p.created_at DESC").Scan(&payouts).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get payouts")
	}
	return payouts, nil
}

// Approve settles a pending payout of any party type.
func (s *PayoutService) Approve(ctx context.Context, payoutID uuid.UUID, adminIdentifier string, req *models.PayoutApproveRequest) (*models.Payout, error) {
	return s.approve(ctx, payoutID, nil, models.AuditActionPayoutApproved, adminIdentifier, req)
}

// ApproveDealerPayout settles a pending dealer reimbursement.
func (s *PayoutService) ApproveDealerPayout(ctx context.Context, payoutID uuid.UUID, adminIdentifier string, req *models.PayoutApproveRequest) (*models.Payout, error) {
	dealer := models.PartyTypeDealer
	return s.approve(ctx, payoutID, &dealer, models.AuditActionDealerPayoutApproved, adminIdentifier, req)
}

func (s *PayoutService) approve(ctx context.Context, payoutID uuid.UUID, partyType *models.PartyType, action models.AuditAction, adminIdentifier string, req *models.PayoutApproveRequest) (*models.Payout, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var payout *models.Payout
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		payout, err = lockPendingPayout(tx, payoutID, partyType)
		if err != nil {
			return err
		}

		reference := req.Reference
		if err := transitionPayout(tx, payout, models.PayoutStatusApproved, map[string]interface{}{"reference": reference}); err != nil {
			return err
		}
		payout.Reference = &reference

		return s.auditService.Log(tx, adminIdentifier, action, map[string]interface{}{
			"payout_id": payout.ID,
			"reference": reference,
			"amount":    payout.Amount,
		})
	})
	if err != nil {
		return nil, errors.AsAppError(err, "Failed to approve payout")
	}

	s.metrics.ObservePayoutReview(string(models.PayoutStatusApproved))
	logrus.WithFields(logrus.Fields{
		"payout_id": payout.ID,
		"party":     payout.Type,
		"amount":    payout.Amount,
		"admin":     adminIdentifier,
	}).Info("payout approved")

	return payout, nil
}

// Reject closes a pending payout and returns the reserved amount to the
// party's ledger with a compensating entry.
func (s *PayoutService) Reject(ctx context.Context, payoutID uuid.UUID, adminIdentifier string, req *models.PayoutRejectRequest) (*models.Payout, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var payout *models.Payout
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		payout, err = lockPendingPayout(tx, payoutID, nil)
		if err != nil {
			return err
		}

		notes := req.Notes
		if err := transitionPayout(tx, payout, models.PayoutStatusRejected, map[string]interface{}{"notes": notes}); err != nil {
			return err
		}
		payout.Notes = &notes

		if err := reversePayout(tx, payout); err != nil {
			return err
		}

		return s.auditService.Log(tx, adminIdentifier, models.AuditActionPayoutRejected, map[string]interface{}{
			"payout_id": payout.ID,
			"notes":     notes,
			"amount":    payout.Amount,
		})
	})
	if err != nil {
		return nil, errors.AsAppError(err, "Failed to reject payout")
	}

	s.metrics.ObservePayoutReview(string(models.PayoutStatusRejected))
	logrus.WithFields(logrus.Fields{
		"payout_id": payout.ID,
		"party":     payout.Type,
		"amount":    payout.Amount,
		"admin":     adminIdentifier,
	}).Info("payout rejected")

	return payout, nil
}

// lockPendingPayout returns NotFound for unknown and already reviewed payouts alike.
func lockPendingPayout(tx *gorm.DB, payoutID uuid.UUID, partyType *models.PartyType) (*models.Payout, error) {
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND status = ?", payoutID, models.PayoutStatusPending)
	if partyType != nil {
		query = query.Where("type = ?", *partyType)
	}

	var payout models.Payout
	if err := query.First(&payout).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Payout not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get payout")
	}
	return &payout, nil
}

func transitionPayout(tx *gorm.DB, payout *models.Payout, status models.PayoutStatus, fields map[string]interface{}) error {
	fields["status"] = status
	res := tx.Model(&models.Payout{}).
		Where("id = ? AND status = ?", payout.ID, models.PayoutStatusPending).
		Updates(fields)
	if res.Error != nil {
		return errors.NewInternalServerError(res.Error, "Failed to update payout")
	}
	if res.RowsAffected != 1 {
		return errors.NewNotFoundError("Payout not found")
	}
	payout.Status = status
	return nil
}

func reversePayout(tx *gorm.DB, payout *models.Payout) error {
	switch payout.Type {
	case models.PartyTypeUser:
		if payout.UserID == nil {
			return errors.NewInternalServerError(fmt.Errorf("payout %s has no user", payout.ID), "Failed to reverse payout")
		}
		entry := &models.Transaction{
			UserID:      *payout.UserID,
			Amount:      payout.Amount,
			Type:        models.TransactionTypePayoutReversal,
			ReferenceID: &payout.ID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to reverse payout")
		}
	case models.PartyTypeDealer:
		if payout.DealerID == nil {
			return errors.NewInternalServerError(fmt.Errorf("payout %s has no dealer", payout.ID), "Failed to reverse payout")
		}
		note := fmt.Sprintf("Reversal of rejected payout %s", payout.ID)
		entry := &models.DealerTransaction{
			DealerID:    *payout.DealerID,
			Type:        models.DealerTransactionTypeCredit,
			Amount:      payout.Amount,
			Note:        &note,
			ReferenceID: &payout.ID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to reverse payout")
		}
	}
	return nil
}
