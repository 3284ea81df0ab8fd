package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ActorKind string

const (
	ActorKindMason  ActorKind = "mason"
	ActorKindDealer ActorKind = "dealer"
)

// Actor identifies who is redeeming. A dealer actor may name a mason by phone
// or ask for the points to be credited to itself.
type Actor struct {
	Kind           ActorKind
	UserID         uuid.UUID
	DealerID       uuid.UUID
	MasonPhone     *string
	CashPaid       bool
	CreditToDealer bool
}

func MasonActor(userID uuid.UUID) Actor {
	return Actor{Kind: ActorKindMason, UserID: userID}
}

func DealerActor(dealerID uuid.UUID, masonPhone *string, cashPaid, creditToDealer bool) Actor {
	return Actor{
		Kind:           ActorKindDealer,
		DealerID:       dealerID,
		MasonPhone:     masonPhone,
		CashPaid:       cashPaid,
		CreditToDealer: creditToDealer,
	}
}

// ScanContext is opaque device metadata copied onto the Scan row.
type ScanContext struct {
	DeviceID   *string
	GPS        json.RawMessage
	ClientTime *time.Time
}

type RedemptionResult struct {
	Token            string     `json:"token"`
	ScanID           uuid.UUID  `json:"scan_id"`
	PointsCredited   int64      `json:"points_credited"`
	CreditedUserID   *uuid.UUID `json:"credited_user_id,omitempty"`
	CreditedDealerID *uuid.UUID `json:"credited_dealer_id,omitempty"`
}

type ScanRequest struct {
	Token      string          `json:"token" validate:"required,max=128"`
	DeviceID   *string         `json:"device_id,omitempty" validate:"omitempty,max=128"`
	GPS        json.RawMessage `json:"gps,omitempty"`
	ClientTime *time.Time      `json:"client_time,omitempty"`
}

type ProxyScanRequest struct {
	Token          string          `json:"token" validate:"required,max=128"`
	MasonPhone     *string         `json:"mason_phone,omitempty" validate:"omitempty,phone"`
	CashPaid       bool            `json:"cash_paid"`
	CreditToDealer bool            `json:"credit_to_dealer"`
	DeviceID       *string         `json:"device_id,omitempty" validate:"omitempty,max=128"`
	GPS            json.RawMessage `json:"gps,omitempty"`
	ClientTime     *time.Time      `json:"client_time,omitempty"`
}

type ScanResponse struct {
	Success         bool  `json:"success"`
	PointsCredited  int64 `json:"pointsCredited"`
	NewWalletPoints int64 `json:"newWalletPoints"`
}

type ProxyScanResponse struct {
	Success bool  `json:"success"`
	Points  int64 `json:"points"`
}
