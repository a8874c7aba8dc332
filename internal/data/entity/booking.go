package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingCategory string

const (
	CategoryHotel     BookingCategory = "hotel"
	CategoryFlight    BookingCategory = "flight"
	CategoryDining    BookingCategory = "dining"
	CategoryActivity  BookingCategory = "activity"
	CategoryEvent     BookingCategory = "event"
	CategoryWellness  BookingCategory = "wellness"
	CategoryBeauty    BookingCategory = "beauty"
	CategoryTransport BookingCategory = "transport"
	CategoryShop      BookingCategory = "shop"
)

// SlotBased reports whether bookings in this category occupy a capacity slot
// (a resource at a date/time). Shop and flight purchases carry no slot.
func (c BookingCategory) SlotBased() bool {
	switch c {
	case CategoryShop, CategoryFlight:
		return false
	}
	return true
}

type BookingStatus string

const (
	BookingStatusHeld           BookingStatus = "held"
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusExpired        BookingStatus = "expired"
)

// Terminal statuses never transition to anything else.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusExpired:
		return true
	}
	return false
}

type Booking struct {
	Base
	BookingCode    string          `db:"booking_code"`
	Category       BookingCategory `db:"category"`
	UserID         *uuid.UUID      `db:"user_id"` // nil for guest checkout
	Status         BookingStatus   `db:"status"`
	TotalAmount    int64           `db:"total_amount"` // smallest currency unit
	Currency       string          `db:"currency"`
	ResourceID     *uuid.UUID      `db:"resource_id"`
	SlotDate       *string         `db:"slot_date"` // YYYY-MM-DD
	SlotTime       *string         `db:"slot_time"` // HH:MM
	PartySize      int             `db:"party_size"`
	UserVoucherID  *uuid.UUID      `db:"user_voucher_id"`
	DiscountAmount int64           `db:"discount_amount"`
	GuestName      *string         `db:"guest_name"`
	GuestEmail     *string         `db:"guest_email"`
	GuestPhone     *string         `db:"guest_phone"`
	Metadata       []byte          `db:"metadata"` // category-specific payload, JSON
	ExpiresAt      *time.Time      `db:"expires_at"`
	CancelReason   *string         `db:"cancel_reason"`
	CancelledAt    *time.Time      `db:"cancelled_at"`
}

// SlotStart resolves the scheduled start of a slot-based booking.
func (b *Booking) SlotStart() (time.Time, bool) {
	if b.SlotDate == nil || b.SlotTime == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", *b.SlotDate+" "+*b.SlotTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
