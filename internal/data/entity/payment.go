package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCanceled  PaymentStatus = "canceled"
)

// Payment is the single source of truth for one checkout attempt.
// SessionID is the provider-issued correlation key and is unique.
type Payment struct {
	Base
	UserID          *uuid.UUID    `db:"user_id"` // nil for guest payments
	Email           *string       `db:"email"`
	Amount          int64         `db:"amount"` // smallest currency unit
	Currency        string        `db:"currency"`
	Status          PaymentStatus `db:"status"`
	SessionID       string        `db:"session_id"`
	PaymentIntentID *string       `db:"payment_intent_id"`
}
