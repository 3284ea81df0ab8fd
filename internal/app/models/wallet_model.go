package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserWalletResponse struct {
	UserID          uuid.UUID       `json:"user_id"`
	Points          int64           `json:"points"`
	RupeeEquivalent decimal.Decimal `json:"rupeeEquivalent"`
}

type DealerWalletResponse struct {
	DealerID     uuid.UUID           `json:"dealer_id"`
	Balance      int64               `json:"balance"`
	Transactions []DealerTransaction `json:"transactions"`
}

type ReimburseRequest struct {
	Amount int64   `json:"amount" validate:"required,min=1"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type ReimburseResponse struct {
	Success  bool      `json:"success"`
	PayoutID uuid.UUID `json:"payoutId"`
}
