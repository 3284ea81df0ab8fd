package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponStatus string

const (
	CouponStatusIssued   CouponStatus = "issued"
	CouponStatusRedeemed CouponStatus = "redeemed"
)

type Batch struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	SKU             *string   `gorm:"column:sku" json:"sku,omitempty"`
	PointsPerCoupon int64     `gorm:"not null" json:"points_per_coupon"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// Coupon is keyed by its printed token. Status only ever moves issued -> redeemed.
type Coupon struct {
	Token      string       `gorm:"type:varchar(128);primaryKey" json:"token"`
	BatchID    uuid.UUID    `gorm:"type:uuid;index;not null" json:"batch_id"`
	Points     int64        `gorm:"not null" json:"points"`
	Status     CouponStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	RedeemedAt *time.Time   `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// BatchSummary is a batch with its coupon counts computed at read time.
type BatchSummary struct {
	Batch
	Issued   int64 `json:"issued"`
	Redeemed int64 `json:"redeemed"`
	Pending  int64 `json:"pending"`
}

type BatchCreateRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	SKU             string `json:"sku" validate:"required,max=64"`
	PointsPerCoupon int64  `json:"points_per_scan" validate:"required,min=1"`
	Quantity        int    `json:"quantity" validate:"min=0,max=1000000"`
}

type CouponGenerateRequest struct {
	BatchID  string  `json:"batch_id" validate:"required,uuid"`
	Quantity int     `json:"quantity" validate:"required,min=1,max=10000"`
	Points   *int64  `json:"points,omitempty" validate:"omitempty,min=1"`
	Prefix   *string `json:"prefix,omitempty" validate:"omitempty,max=32,alphanum"`
}

type CouponGenerateResponse struct {
	BatchID uuid.UUID `json:"batch_id"`
	Count   int       `json:"count"`
	Tokens  []string  `json:"tokens"`
}
