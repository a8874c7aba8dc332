package wire

import (
	"travelo-booking/internal/adaptor"
	"travelo-booking/pkg/middleware"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.Secret, log))

		// GET /api/bookings - View booking history (user's own bookings)
		r.Get("/api/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== OPTIONAL AUTH ROUTES ====================
	// Guests hold only the booking ID; knowing it grants access.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.Auth.Secret, log))

		// GET /api/bookings/{id} - View booking details
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// DELETE /api/bookings/{id} - Cancel a booking
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})
}
