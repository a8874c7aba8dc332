package adaptor

import (
	"errors"
	"net/http"

	"travelo-booking/internal/usecase"
	"travelo-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Checkout     *CheckoutHandler
	Payment      *PaymentHandler
	Booking      *BookingHandler
	Voucher      *VoucherHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Voucher:      NewVoucherHandler(service.Voucher, log),
	}
}

// handleServiceError maps domain sentinels onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrSignature):
		log.Warn(operation+" failed - bad signature",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrAvailability),
		errors.Is(err, usecase.ErrBookingNotPayable),
		errors.Is(err, usecase.ErrInsufficientFunds),
		errors.Is(err, usecase.ErrNotCancellable):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
