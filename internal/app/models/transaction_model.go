package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeRedemption     TransactionType = "redemption"
	TransactionTypePayout         TransactionType = "payout"
	TransactionTypePayoutReversal TransactionType = "payout_reversal"
)

// Transaction is an immutable mason ledger entry. Amount is signed.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount      int64           `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"type:varchar(32);not null" json:"type"`
	DealerID    *uuid.UUID      `gorm:"type:uuid" json:"dealer_id,omitempty"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

type DealerTransactionType string

const (
	DealerTransactionTypeCredit               DealerTransactionType = "credit"
	DealerTransactionTypeDebit                DealerTransactionType = "debit"
	DealerTransactionTypePayout               DealerTransactionType = "payout"
	DealerTransactionTypeReimbursementRequest DealerTransactionType = "reimbursement_request"
)

// DealerTransaction amounts are magnitudes; the sign comes from Type.
type DealerTransaction struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	DealerID    uuid.UUID             `gorm:"type:uuid;index;not null" json:"dealer_id"`
	Type        DealerTransactionType `gorm:"type:varchar(32);not null" json:"type"`
	Amount      int64                 `gorm:"not null" json:"amount"`
	Note        *string               `json:"note,omitempty"`
	ReferenceID *uuid.UUID            `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

func (t *DealerTransaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
