package wire

import (
	"travelo-booking/internal/adaptor"
	"travelo-booking/pkg/middleware"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.Auth.Secret, log))

		// POST /api/payments/create - Create a payment intent for a booking
		r.Post("/api/payments/create", paymentHandler.CreateIntent)
	})

	// ==================== PUBLIC ROUTES ====================
	// Providers call back here; authenticity comes from the signature, not a
	// session.
	r.Post("/api/payments/webhooks/{provider}", paymentHandler.Webhook)
}
