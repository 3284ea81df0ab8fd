package services

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dealerDebitTypes reduce a dealer balance; credit is the only positive type.
var dealerDebitTypes = []models.DealerTransactionType{
	models.DealerTransactionTypeDebit,
	models.DealerTransactionTypePayout,
	models.DealerTransactionTypeReimbursementRequest,
}

// WalletService projects balances from the ledgers and gates withdrawals.
type WalletService struct {
	db         *gorm.DB
	metrics    *infrastructures.Metrics
	pointValue decimal.Decimal
}

func NewWalletService(db *gorm.DB, metrics *infrastructures.Metrics, cfg *infrastructures.AppConfig) *WalletService {
	return &WalletService{
		db:         db,
		metrics:    metrics,
		pointValue: cfg.PointValueINR,
	}
}

func (s *WalletService) Balance(ctx context.Context, partyID uuid.UUID, partyType models.PartyType) (int64, error) {
	return s.balanceTx(s.db.WithContext(ctx), partyID, partyType)
}

func (s *WalletService) balanceTx(tx *gorm.DB, partyID uuid.UUID, partyType models.PartyType) (int64, error) {
	var balance int64
	var err error

	switch partyType {
	case models.PartyTypeUser:
		err = tx.Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ?", partyID).
			Scan(&balance).Error
	case models.PartyTypeDealer:
		err = tx.Model(&models.DealerTransaction{}).
			Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) - COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE 0 END), 0)",
				models.DealerTransactionTypeCredit, dealerDebitTypes).
			Where("dealer_id = ?", partyID).
			Scan(&balance).Error
	default:
		return 0, errors.NewBadRequestError(fmt.Sprintf("Unknown party type %q", partyType))
	}
	if err != nil {
		return 0, errors.NewInternalServerError(err, "Failed to compute balance")
	}

	return balance, nil
}

// UserWallet returns a mason balance with its rupee equivalent.
func (s *WalletService) UserWallet(ctx context.Context, userID uuid.UUID) (*models.UserWalletResponse, error) {
	points, err := s.Balance(ctx, userID, models.PartyTypeUser)
	if err != nil {
		return nil, err
	}

	return &models.UserWalletResponse{
		UserID:          userID,
		Points:          points,
		RupeeEquivalent: decimal.NewFromInt(points).Mul(s.pointValue),
	}, nil
}

// DealerWallet returns a dealer balance and its 50 newest ledger entries.
func (s *WalletService) DealerWallet(ctx context.Context, dealerID uuid.UUID) (*models.DealerWalletResponse, error) {
	balance, err := s.Balance(ctx, dealerID, models.PartyTypeDealer)
	if err != nil {
		return nil, err
	}

	transactions := []models.DealerTransaction{}
	err = s.db.WithContext(ctx).
		Where("dealer_id = ?", dealerID).
		Order("created_at DESC").
		Limit(50).
		Find(&transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get dealer transactions")
	}

	return &models.DealerWalletResponse{
		DealerID:     dealerID,
		Balance:      balance,
		Transactions: transactions,
	}, nil
}

// RequestWithdrawal reserves amount against the party balance and opens a
// pending payout. The party row is locked so concurrent requests from the
// same party see each other's reservations.
func (s *WalletService) RequestWithdrawal(ctx context.Context, partyID uuid.UUID, partyType models.PartyType, amount int64, details models.PayoutDetails) (*models.Payout, error) {
	if amount < 1 {
		return nil, errors.NewBadRequestError("Amount must be at least 1")
	}

	var payout *models.Payout
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockParty(tx, partyID, partyType); err != nil {
			return err
		}

		balance, err := s.balanceTx(tx, partyID, partyType)
		if err != nil {
			return err
		}
		if amount > balance {
			return errors.NewInsufficientBalanceError(balance, amount)
		}

		payout = &models.Payout{
			Type:    partyType,
			Amount:  amount,
			Status:  models.PayoutStatusPending,
			Method:  details.Method,
			Account: details.Account,
		}

		switch partyType {
		case models.PartyTypeUser:
			payout.UserID = &partyID
			if err := tx.Create(payout).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to create payout")
			}
			reservation := &models.Transaction{
				UserID:      partyID,
				Amount:      -amount,
				Type:        models.TransactionTypePayout,
				ReferenceID: &payout.ID,
			}
			if err := tx.Create(reservation).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to reserve payout amount")
			}
		case models.PartyTypeDealer:
			reference := "Reimbursement Request"
			payout.DealerID = &partyID
			payout.Reference = &reference
			if err := tx.Create(payout).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to create payout")
			}
			note := fmt.Sprintf("Payout request %s", payout.ID)
			if details.Note != nil && *details.Note != "" {
				note = fmt.Sprintf("%s: %s", note, *details.Note)
			}
			reservation := &models.DealerTransaction{
				DealerID:    partyID,
				Type:        models.DealerTransactionTypeReimbursementRequest,
				Amount:      amount,
				Note:        &note,
				ReferenceID: &payout.ID,
			}
			if err := tx.Create(reservation).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to reserve payout amount")
			}
		}
		return nil
	})
	if err != nil {
		appErr := errors.AsAppError(err, "Failed to request withdrawal")
		if appErr.Kind == errors.KindInsufficientBalance {
			s.metrics.ObserveWithdrawal(string(partyType), "insufficient_balance")
		} else {
			s.metrics.ObserveWithdrawal(string(partyType), "error")
		}
		return nil, appErr
	}

	s.metrics.ObserveWithdrawal(string(partyType), "accepted")
	logrus.WithFields(logrus.Fields{
		"payout_id": payout.ID,
		"party":     partyType,
		"party_id":  partyID,
		"amount":    amount,
	}).Info("withdrawal requested")

	return payout, nil
}

// lockParty takes a row lock on the user or dealer owning a ledger.
func lockParty(tx *gorm.DB, partyID uuid.UUID, partyType models.PartyType) error {
	var target interface{}
	var label string
	switch partyType {
	case models.PartyTypeUser:
		target, label = &models.User{}, "User"
	case models.PartyTypeDealer:
		target, label = &models.Dealer{}, "Dealer"
	default:
		return errors.NewBadRequestError(fmt.Sprintf("Unknown party type %q", partyType))
	}

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", partyID).First(target).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewNotFoundError(label + " not found")
		}
		return errors.NewInternalServerError(err, "Failed to lock "+label)
	}
	return nil
}
