package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a mason: the end user who earns points by scanning coupons.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

type Dealer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	GST       *string   `gorm:"column:gst" json:"gst,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Dealer) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}

type DealerRegisterRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Phone string  `json:"phone" validate:"required,phone"`
	GST   *string `json:"gst,omitempty" validate:"omitempty,max=20"`
}
