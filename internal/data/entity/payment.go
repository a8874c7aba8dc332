package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentTransaction is one attempt to pay for a booking. A booking may have
// many attempts but at most one may reach success.
type PaymentTransaction struct {
	Base
	BookingID      uuid.UUID     `db:"booking_id"`
	Amount         int64         `db:"amount"`
	Currency       string        `db:"currency"`
	Provider       string        `db:"provider"` // momo, vnpay, paypal
	ProviderTxnID  string        `db:"provider_txn_id"`
	Status         PaymentStatus `db:"status"`
	FailureMessage *string       `db:"failure_message"`
}
