package adaptor

import (
	"net/http"

	"travelo-booking/internal/usecase"
	"travelo-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// Check handles GET /api/availability (public)
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	resourceID, err := utils.ParseUUID(query.Get("resource_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid resource_id", nil)
		return
	}

	date := query.Get("date")
	slotTime := query.Get("time")
	if date == "" || slotTime == "" {
		utils.ResponseBadRequest(w, "date and time are required", nil)
		return
	}

	partySize := utils.ParseInt(query.Get("party_size"), 1)

	result, err := h.service.Check(r.Context(), resourceID, date, slotTime, partySize)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
