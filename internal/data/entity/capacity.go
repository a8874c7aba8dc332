package entity

import (
	"github.com/google/uuid"
)

// Resource is a bookable unit of a venue: a restaurant's seating, a hotel's
// room block, a salon chair pool, a transport route.
type Resource struct {
	Base
	Category        BookingCategory `db:"category"`
	Name            string          `db:"name"`
	UnitPrice       int64           `db:"unit_price"` // per guest/seat, smallest unit
	Currency        string          `db:"currency"`
	DefaultCapacity int             `db:"default_capacity"`
	OpenTime        string          `db:"open_time"`  // HH:MM
	CloseTime       string          `db:"close_time"` // HH:MM
	Active          bool            `db:"active"`
}

// CapacitySlot tracks consumption against a (resource, date, time) key.
// Holds count toward consumed until they expire or convert.
type CapacitySlot struct {
	BaseSimple
	ResourceID    uuid.UUID `db:"resource_id"`
	SlotDate      string    `db:"slot_date"`
	SlotTime      string    `db:"slot_time"`
	TotalCapacity int       `db:"total_capacity"`
	Consumed      int       `db:"consumed"`
}

// ResourceBlackout closes a resource for a date range.
type ResourceBlackout struct {
	BaseSimple
	ResourceID uuid.UUID `db:"resource_id"`
	StartDate  string    `db:"start_date"`
	EndDate    string    `db:"end_date"`
	Reason     string    `db:"reason"`
}
