package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypeFixed   DiscountType = "fixed"
	DiscountTypePercent DiscountType = "percent"
)

// Voucher is a discount template. Users acquire instances of it (UserVoucher)
// either by wallet purchase or by grant.
type Voucher struct {
	Base
	Code          string           `db:"code"`
	DiscountType  DiscountType     `db:"discount_type"`
	DiscountValue int64            `db:"discount_value"` // amount in smallest unit, or percent
	MinSpend      int64            `db:"min_spend"`
	Category      *BookingCategory `db:"category"` // nil means any category
	Price         int64            `db:"price"`    // wallet price in smallest unit
	Purchasable   bool             `db:"purchasable"`
	Active        bool             `db:"active"`
	Stock         int              `db:"stock"`
	UsedCount     int              `db:"used_count"`
	PerUserLimit  int              `db:"per_user_limit"`
	ExpiresAt     *time.Time       `db:"expires_at"`
}

// DiscountFor computes the discount this voucher grants on the given total.
// Returns 0 when the total is below the minimum spend.
func (v *Voucher) DiscountFor(total int64) int64 {
	if total < v.MinSpend {
		return 0
	}
	var discount int64
	switch v.DiscountType {
	case DiscountTypePercent:
		discount = total * v.DiscountValue / 100
	default:
		discount = v.DiscountValue
	}
	if discount > total {
		discount = total
	}
	return discount
}

type UserVoucherStatus string

const (
	UserVoucherStatusAvailable UserVoucherStatus = "available"
	UserVoucherStatusUsed      UserVoucherStatus = "used"
	UserVoucherStatusExpired   UserVoucherStatus = "expired"
)

type UserVoucher struct {
	Base
	UserID    uuid.UUID         `db:"user_id"`
	VoucherID uuid.UUID         `db:"voucher_id"`
	Status    UserVoucherStatus `db:"status"`
	UsedAt    *time.Time        `db:"used_at"`
}
