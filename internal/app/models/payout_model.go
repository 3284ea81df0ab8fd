package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartyType string

const (
	PartyTypeUser   PartyType = "user"
	PartyTypeDealer PartyType = "dealer"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
)

type Payout struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DealerID  *uuid.UUID   `gorm:"type:uuid;index" json:"dealer_id,omitempty"`
	Type      PartyType    `gorm:"type:varchar(16);not null" json:"type"`
	Amount    int64        `gorm:"not null" json:"amount"`
	Status    PayoutStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Method    *string      `json:"method,omitempty"`
	Account   *string      `json:"account,omitempty"`
	Reference *string      `json:"reference,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type WithdrawalRequest struct {
	Amount  int64  `json:"amount" validate:"required,min=1"`
	Method  string `json:"method" validate:"required,max=32"`
	Account string `json:"account" validate:"required,max=128"`
}

type PayoutApproveRequest struct {
	Reference string `json:"reference" validate:"required,max=128"`
}

type PayoutRejectRequest struct {
	Notes string `json:"notes" validate:"required,max=1000"`
}

type WithdrawalResponse struct {
	PayoutID uuid.UUID    `json:"payout_id"`
	Status   PayoutStatus `json:"status"`
}

// PayoutDetails is the optional settlement information on a withdrawal.
type PayoutDetails struct {
	Method  *string
	Account *string
	Note    *string
}

// PayoutListItem is a payout joined with the contact details of its party.
type PayoutListItem struct {
	Payout
	UserPhone   *string `json:"user_phone,omitempty"`
	DealerName  *string `json:"dealer_name,omitempty"`
	DealerPhone *string `json:"dealer_phone,omitempty"`
	DealerGST   *string `gorm:"column:dealer_gst" json:"dealer_gst,omitempty"`
}
