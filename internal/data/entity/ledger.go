package entity

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry is an append-only record of a balance-affecting event. The
// cached wallet balance is a projection: every write that changes balance
// appends an entry in the same transaction.
type LedgerEntry struct {
	BaseSimple
	UserID           uuid.UUID  `db:"user_id"`
	Delta            int64      `db:"delta"` // signed, smallest currency unit
	Reason           string     `db:"reason"`
	RelatedBookingID *uuid.UUID `db:"related_booking_id"`
}

const (
	LedgerReasonVoucherPurchase = "voucher_purchase"
	LedgerReasonLoyaltyAccrual  = "loyalty_accrual"
	LedgerReasonRefund          = "refund"
	LedgerReasonQuestReward     = "quest_reward"
)

type Wallet struct {
	UserID    uuid.UUID `db:"user_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}
