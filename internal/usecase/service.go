package usecase

import (
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/notifier"
	"travelo-booking/internal/provider"

	"go.uber.org/zap"
)

// Service bundles every use case behind one value so wiring stays flat.
type Service struct {
	Availability AvailabilityService
	Checkout     CheckoutService
	Payment      PaymentService
	Settlement   SettlementService
	Booking      BookingService
	Voucher      VoucherService
}

func NewService(repo *repository.Repository, providers *provider.Registry, notify notifier.Notifier, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)
	settlement := NewSettlementService(repo, notify, log)

	return &Service{
		Availability: availability,
		Checkout:     NewCheckoutService(repo, availability, log),
		Payment:      NewPaymentService(repo, providers, settlement, log),
		Settlement:   settlement,
		Booking:      NewBookingService(repo, log),
		Voucher:      NewVoucherService(repo, log),
	}
}
