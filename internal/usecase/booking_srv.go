package usecase

import (
	"context"
	"fmt"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/dto/request"
	"travelo-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Appointment-style bookings cannot be cancelled within this window of the
// scheduled slot.
const cancellationCutoff = 24 * time.Hour

type BookingService interface {
	GetByID(ctx context.Context, identity Identity, bookingID uuid.UUID) (*response.BookingResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error)

	// Cancel rejects terminal bookings and slot bookings inside the
	// cancellation window. Released capacity goes back to the slot.
	Cancel(ctx context.Context, identity Identity, bookingID uuid.UUID, reason string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) GetByID(ctx context.Context, identity Identity, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.loadOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	return response.BookingToResponse(booking), nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error) {
	offset := (req.Page - 1) * req.PerPage

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.PerPage, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return &response.PaginatedResponse[*response.BookingResponse]{
		Items:      items,
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalItems: total,
	}, nil
}

func (s *bookingService) Cancel(ctx context.Context, identity Identity, bookingID uuid.UUID, reason string) error {
	booking, err := s.loadOwned(ctx, identity, bookingID)
	if err != nil {
		return err
	}

	if booking.Status.Terminal() {
		return fmt.Errorf("%w: booking %s is already %s", ErrNotCancellable, booking.BookingCode, booking.Status)
	}

	if start, ok := booking.SlotStart(); ok {
		if s.now().Add(cancellationCutoff).After(start) {
			return fmt.Errorf("%w: bookings cannot be cancelled within %d hours of the appointment",
				ErrNotCancellable, int(cancellationCutoff.Hours()))
		}
	}

	cancelled, err := s.repo.Booking.Cancel(ctx, bookingID, reason, s.now())
	if err != nil {
		return err
	}
	if !cancelled {
		// Lost the race against a webhook confirmation or the reaper.
		return fmt.Errorf("%w: booking %s changed state concurrently", ErrNotCancellable, booking.BookingCode)
	}

	if booking.ResourceID != nil && booking.SlotDate != nil && booking.SlotTime != nil {
		if err := s.repo.Capacity.Release(ctx, *booking.ResourceID, *booking.SlotDate, *booking.SlotTime, booking.PartySize); err != nil {
			s.log.Error("Failed to release capacity after cancellation",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
			)
		}
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("reason", reason),
	)

	return nil
}

// loadOwned fetches the booking and checks the caller may see it. Guest
// bookings are reachable by their opaque ID; user bookings only by their
// owner.
func (s *bookingService) loadOwned(ctx context.Context, identity Identity, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}

	if booking.UserID != nil {
		userID, ok := identity.UserID()
		if !ok || userID != *booking.UserID {
			return nil, fmt.Errorf("%w: booking %s belongs to another user", ErrForbidden, bookingID.String())
		}
	}

	return booking, nil
}
