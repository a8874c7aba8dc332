package adaptor

import (
	"encoding/json"
	"net/http"

	"travelo-booking/internal/dto/request"
	"travelo-booking/internal/usecase"
	"travelo-booking/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Checkout handles POST /api/checkout (optional auth)
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var identity usecase.Identity
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		email, _ := utils.GetUserEmailFromContext(r.Context())
		identity = usecase.AuthenticatedWithEmail(userID, email)
	} else {
		identity = usecase.Guest(usecase.GuestContact{
			Name:  req.GuestName,
			Email: req.GuestEmail,
			Phone: req.GuestPhone,
		})
	}

	booking, err := h.service.Checkout(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}
