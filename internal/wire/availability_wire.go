package wire

import (
	"travelo-booking/internal/adaptor"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability - Check slot availability before checkout
	r.Get("/api/availability", availabilityHandler.Check)
}
