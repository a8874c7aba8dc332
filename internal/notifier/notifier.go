package notifier

import "travelo-booking/internal/data/entity"

// Notifier confirms bookings to users. Delivery is fire-and-forget: a failed
// notification never rolls back a settlement.
type Notifier interface {
	BookingConfirmed(booking *entity.Booking, email string)
}
