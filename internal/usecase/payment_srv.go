package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/dto/request"
	"travelo-booking/internal/dto/response"
	"travelo-booking/internal/provider"
	"travelo-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// CreateIntent registers a pending payment attempt and returns the
	// provider redirect URL. Repeated calls create repeated attempts; only
	// one can ever succeed.
	CreateIntent(ctx context.Context, req *request.CreatePaymentRequest, clientIP string) (*response.PaymentIntentResponse, error)

	// HandleWebhook verifies, deduplicates and applies a provider delivery.
	// Signature failure happens before any write.
	HandleWebhook(ctx context.Context, providerName string, r *http.Request, body []byte) error
}

type paymentService struct {
	repo       *repository.Repository
	providers  *provider.Registry
	settlement SettlementService
	log        *zap.Logger
	now        func() time.Time
}

func NewPaymentService(repo *repository.Repository, providers *provider.Registry, settlement SettlementService, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:       repo,
		providers:  providers,
		settlement: settlement,
		log:        log.With(zap.String("service", "payment")),
		now:        time.Now,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *request.CreatePaymentRequest, clientIP string) (*response.PaymentIntentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking_id", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
	}
	if booking.Status.Terminal() {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrBookingNotPayable, booking.BookingCode, booking.Status)
	}

	paid, err := s.repo.Payment.HasSuccessForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, fmt.Errorf("%w: booking %s is already paid", ErrBookingNotPayable, booking.BookingCode)
	}

	p, ok := s.providers.Get(req.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment provider %s", ErrValidation, req.Provider)
	}

	txnRef := utils.GeneratePaymentRef()
	txn := &entity.PaymentTransaction{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		},
		BookingID:     bookingID,
		Amount:        booking.TotalAmount,
		Currency:      booking.Currency,
		Provider:      req.Provider,
		ProviderTxnID: txnRef,
		Status:        entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, txn); err != nil {
		return nil, err
	}

	intent, err := p.CreateIntent(provider.IntentRequest{
		TxnRef:      txnRef,
		BookingCode: booking.BookingCode,
		Amount:      booking.TotalAmount,
		Currency:    booking.Currency,
		OrderInfo:   fmt.Sprintf("Payment for booking %s", booking.BookingCode),
		ReturnURL:   req.ReturnURL,
		ClientIP:    clientIP,
	})
	if err != nil {
		s.log.Error("Provider failed to create payment intent",
			zap.Error(err),
			zap.String("provider", req.Provider),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("create %s payment intent: %w", req.Provider, err)
	}

	s.log.Info("Payment intent created",
		zap.String("booking_id", bookingID.String()),
		zap.String("provider", req.Provider),
		zap.String("provider_txn_id", txnRef),
	)

	return &response.PaymentIntentResponse{
		PaymentURL:    intent.PaymentURL,
		ProviderTxnID: txnRef,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, providerName string, r *http.Request, body []byte) error {
	p, ok := s.providers.Get(providerName)
	if !ok {
		return fmt.Errorf("%w: unknown payment provider %s", ErrNotFound, providerName)
	}

	result, err := p.VerifyWebhook(r, body)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidSignature) {
			// Possible forgery. Nothing has been written.
			s.log.Warn("Webhook signature verification failed",
				zap.String("provider", providerName),
				zap.String("remote_addr", r.RemoteAddr),
			)
			return fmt.Errorf("%w: %s webhook", ErrSignature, providerName)
		}
		return err
	}

	txn, err := s.repo.Payment.FindByProviderTxnID(ctx, result.TxnRef)
	if err != nil {
		return err
	}
	if txn == nil {
		s.log.Warn("Webhook references unknown transaction",
			zap.String("provider", providerName),
			zap.String("provider_txn_id", result.TxnRef),
		)
		return fmt.Errorf("%w: payment transaction %s", ErrNotFound, result.TxnRef)
	}

	if !result.Succeeded {
		if err := s.repo.Payment.MarkFailed(ctx, result.TxnRef, result.Message); err != nil {
			return err
		}
		// The booking stays held; the user can retry or let the hold expire.
		s.log.Info("Payment declined by provider",
			zap.String("provider", providerName),
			zap.String("provider_txn_id", result.TxnRef),
			zap.String("result_code", result.ResultCode),
		)
		return nil
	}

	booking, err := s.repo.Booking.FindByID(ctx, txn.BookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %s for transaction %s", ErrNotFound, txn.BookingID.String(), result.TxnRef)
	}

	paid, err := s.repo.Payment.HasSuccessForBooking(ctx, txn.BookingID)
	if err != nil {
		return err
	}
	if paid {
		// A sibling attempt already paid this booking. The delivered
		// transaction stays as it is.
		s.log.Info("Duplicate webhook ignored, booking already paid",
			zap.String("provider", providerName),
			zap.String("provider_txn_id", result.TxnRef),
			zap.String("booking_id", txn.BookingID.String()),
		)
		return nil
	}

	applied, err := s.repo.Payment.MarkSuccessIfNotAlready(ctx, result.TxnRef)
	if err != nil {
		return err
	}
	if !applied {
		// Provider retry of an already-applied delivery, or a sibling
		// attempt won the race past the check above.
		s.log.Info("Duplicate webhook ignored",
			zap.String("provider", providerName),
			zap.String("provider_txn_id", result.TxnRef),
		)
		return nil
	}

	if booking.Status.Terminal() {
		// Money was captured for a booking that no longer exists to
		// confirm. Needs a manual refund.
		s.log.Error("RECONCILIATION: successful payment for a terminal booking",
			zap.String("provider", providerName),
			zap.String("provider_txn_id", result.TxnRef),
			zap.String("booking_id", txn.BookingID.String()),
			zap.String("booking_status", string(booking.Status)),
		)
		return nil
	}

	return s.settlement.Settle(ctx, booking)
}
