package usecase

import (
	"context"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/notifier"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Loyalty points accrue at one point per 100 smallest-currency units spent.
const loyaltyAccrualDivisor = 100

type SettlementService interface {
	// Settle applies the side effects of a confirmed payment: booking
	// confirmation, voucher consumption, loyalty accrual, notification.
	// Idempotent: a second call for the same booking is a no-op.
	Settle(ctx context.Context, booking *entity.Booking) error
}

type settlementService struct {
	repo     *repository.Repository
	notifier notifier.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewSettlementService(repo *repository.Repository, notify notifier.Notifier, log *zap.Logger) SettlementService {
	return &settlementService{
		repo:     repo,
		notifier: notify,
		log:      log.With(zap.String("service", "settlement")),
		now:      time.Now,
	}
}

func (s *settlementService) Settle(ctx context.Context, booking *entity.Booking) error {
	confirmed, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, entity.BookingStatusConfirmed,
		entity.BookingStatusHeld, entity.BookingStatusPendingPayment)
	if err != nil {
		return err
	}
	if !confirmed {
		// Already confirmed by a concurrent webhook, or the booking reached
		// a terminal state first. Either way the side effects below must not
		// run twice.
		s.log.Info("Settlement skipped, booking not in a settleable state",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return nil
	}

	if booking.UserVoucherID != nil {
		used, err := s.repo.UserVoucher.MarkUsed(ctx, *booking.UserVoucherID, s.now())
		if err != nil || !used {
			// The booking is confirmed but the voucher was not consumed.
			// Flag it for reconciliation instead of failing the settlement.
			s.log.Error("RECONCILIATION: confirmed booking with unconsumed voucher",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("user_voucher_id", booking.UserVoucherID.String()),
			)
		}
	}

	if booking.UserID != nil {
		points := booking.TotalAmount / loyaltyAccrualDivisor
		if points > 0 {
			entry := &entity.LedgerEntry{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: s.now(),
				},
				UserID:           *booking.UserID,
				Delta:            points,
				Reason:           entity.LedgerReasonLoyaltyAccrual,
				RelatedBookingID: &booking.ID,
			}
			if err := s.repo.Ledger.Append(ctx, entry); err != nil {
				s.log.Error("RECONCILIATION: confirmed booking without loyalty accrual",
					zap.Error(err),
					zap.String("booking_id", booking.ID.String()),
				)
			}
		}
	}

	email := ""
	if booking.GuestEmail != nil {
		email = *booking.GuestEmail
	}
	s.notifier.BookingConfirmed(booking, email)

	s.log.Info("Booking settled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	return nil
}
