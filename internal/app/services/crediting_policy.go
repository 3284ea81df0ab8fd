package services

import (
	"fmt"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Credit describes who a redemption paid out to.
type Credit struct {
	UserID   *uuid.UUID
	DealerID *uuid.UUID
}

// CreditingPolicy writes the ledger entries for a redeemed coupon. It never
// opens its own transaction and applies at most one variant per call.
type CreditingPolicy struct {
	userService *UserService
}

func NewCreditingPolicy(userService *UserService) *CreditingPolicy {
	return &CreditingPolicy{userService: userService}
}

// Apply credits the coupon's points on tx and fills the scan's party columns.
// scan.ID must already be assigned so ledger rows can reference it.
func (p *CreditingPolicy) Apply(tx *gorm.DB, actor models.Actor, coupon *models.Coupon, scan *models.Scan) (*Credit, error) {
	switch actor.Kind {
	case models.ActorKindMason:
		return p.creditMason(tx, actor, coupon, scan)
	case models.ActorKindDealer:
		dealerID := actor.DealerID
		scan.DealerID = &dealerID

		switch {
		case actor.MasonPhone != nil && *actor.MasonPhone != "":
			return p.creditNamedMason(tx, actor, coupon, scan)
		case actor.CreditToDealer:
			return p.creditDealer(tx, actor, coupon, scan)
		default:
			logrus.WithFields(logrus.Fields{
				"token":     coupon.Token,
				"dealer_id": actor.DealerID,
			}).Warn("proxy redemption selected no credit target")
			return &Credit{}, nil
		}
	default:
		return nil, errors.NewBadRequestError(fmt.Sprintf("Unknown actor kind %q", actor.Kind))
	}
}

func (p *CreditingPolicy) creditMason(tx *gorm.DB, actor models.Actor, coupon *models.Coupon, scan *models.Scan) (*Credit, error) {
	userID := actor.UserID
	scan.UserID = &userID

	entry := &models.Transaction{
		UserID:      userID,
		Amount:      coupon.Points,
		Type:        models.TransactionTypeRedemption,
		ReferenceID: &scan.ID,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to credit mason")
	}

	return &Credit{UserID: &userID}, nil
}

func (p *CreditingPolicy) creditNamedMason(tx *gorm.DB, actor models.Actor, coupon *models.Coupon, scan *models.Scan) (*Credit, error) {
	user, err := p.userService.FindOrCreateByPhone(tx, *actor.MasonPhone)
	if err != nil {
		return nil, err
	}
	userID := user.ID
	dealerID := actor.DealerID
	scan.UserID = &userID

	entry := &models.Transaction{
		UserID:      userID,
		Amount:      coupon.Points,
		Type:        models.TransactionTypeRedemption,
		DealerID:    &dealerID,
		ReferenceID: &scan.ID,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to credit mason")
	}

	// the dealer fronted cash, track it as dealer debt
	if actor.CashPaid {
		note := fmt.Sprintf("Cash paid to mason %s for token %s", *actor.MasonPhone, coupon.Token)
		debit := &models.DealerTransaction{
			DealerID:    dealerID,
			Type:        models.DealerTransactionTypeDebit,
			Amount:      coupon.Points,
			Note:        &note,
			ReferenceID: &scan.ID,
		}
		if err := tx.Create(debit).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to record dealer cash payment")
		}
	}

	return &Credit{UserID: &userID}, nil
}

func (p *CreditingPolicy) creditDealer(tx *gorm.DB, actor models.Actor, coupon *models.Coupon, scan *models.Scan) (*Credit, error) {
	dealerID := actor.DealerID
	note := fmt.Sprintf("Direct redemption for token %s", coupon.Token)

	entry := &models.DealerTransaction{
		DealerID:    dealerID,
		Type:        models.DealerTransactionTypeCredit,
		Amount:      coupon.Points,
		Note:        &note,
		ReferenceID: &scan.ID,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to credit dealer")
	}

	return &Credit{DealerID: &dealerID}, nil
}
