package wire

import (
	"travelo-booking/internal/adaptor"
	"travelo-booking/pkg/middleware"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	// Guests check out with contact details; authenticated users get the
	// booking attached to their account.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.Auth.Secret, log))

		// POST /api/checkout - Hold capacity and create a booking
		r.Post("/api/checkout", checkoutHandler.Checkout)
	})
}
