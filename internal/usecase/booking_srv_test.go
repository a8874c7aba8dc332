package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelo-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestBookingService(booking *mockBookingRepository, capacity *mockCapacityRepository) *bookingService {
	repos := newMockRepository()
	if booking != nil {
		repos.Booking = booking
	}
	if capacity != nil {
		repos.Capacity = capacity
	}
	return &bookingService{
		repo: repos,
		log:  zap.NewNop(),
		now:  time.Now,
	}
}

func slotBooking(id, userID uuid.UUID, start time.Time) *entity.Booking {
	resourceID := uuid.New()
	date := start.Format("2006-01-02")
	slotTime := start.Format("15:04")
	return &entity.Booking{
		Base:        entity.Base{ID: id},
		BookingCode: "DIN-20260915-190000-0001",
		Category:    entity.CategoryDining,
		UserID:      &userID,
		Status:      entity.BookingStatusConfirmed,
		TotalAmount: 500000,
		ResourceID:  &resourceID,
		SlotDate:    &date,
		SlotTime:    &slotTime,
		PartySize:   2,
	}
}

func TestCancel_OutsideWindow(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := now.Add(25 * time.Hour)
	released := false

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return slotBooking(bookingID, userID, start), nil
			},
		},
		&mockCapacityRepository{
			releaseFunc: func(ctx context.Context, rid uuid.UUID, date, slotTime string, qty int) error {
				released = true
				return nil
			},
		},
	)
	service.now = fixedTime(now)

	err := service.Cancel(context.Background(), Authenticated(userID), bookingID, "change of plans")
	if err != nil {
		t.Fatalf("cancellation 25h before the slot should succeed: %v", err)
	}
	if !released {
		t.Error("expected the slot capacity released")
	}
}

func TestCancel_InsideWindow(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := now.Add(23 * time.Hour)

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return slotBooking(bookingID, userID, start), nil
			},
		},
		nil,
	)
	service.now = fixedTime(now)

	err := service.Cancel(context.Background(), Authenticated(userID), bookingID, "too late")
	if !errors.Is(err, ErrNotCancellable) {
		t.Errorf("expected ErrNotCancellable 23h before the slot, got %v", err)
	}
}

func TestCancel_TerminalBooking(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				b := slotBooking(bookingID, userID, time.Now().Add(72*time.Hour))
				b.Status = entity.BookingStatusCancelled
				return b, nil
			},
		},
		nil,
	)

	err := service.Cancel(context.Background(), Authenticated(userID), bookingID, "again")
	if !errors.Is(err, ErrNotCancellable) {
		t.Errorf("expected ErrNotCancellable for already-cancelled booking, got %v", err)
	}
}

func TestCancel_LosesRaceToConcurrentTransition(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return slotBooking(bookingID, userID, time.Now().Add(72*time.Hour)), nil
			},
			cancelFunc: func(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error) {
				// A webhook confirmed or the reaper expired it in between.
				return false, nil
			},
		},
		nil,
	)

	err := service.Cancel(context.Background(), Authenticated(userID), bookingID, "racing")
	if !errors.Is(err, ErrNotCancellable) {
		t.Errorf("expected ErrNotCancellable on lost race, got %v", err)
	}
}

func TestCancel_NonSlotBookingHasNoWindow(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:        entity.Base{ID: bookingID},
					Category:    entity.CategoryShop,
					UserID:      &userID,
					Status:      entity.BookingStatusHeld,
					TotalAmount: 390000,
				}, nil
			},
		},
		nil,
	)

	if err := service.Cancel(context.Background(), Authenticated(userID), bookingID, "changed my mind"); err != nil {
		t.Errorf("shop bookings have no cancellation cutoff: %v", err)
	}
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	bookingID := uuid.New()
	ownerID := uuid.New()
	otherID := uuid.New()

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return slotBooking(bookingID, ownerID, time.Now().Add(48*time.Hour)), nil
			},
		},
		nil,
	)

	if _, err := service.GetByID(context.Background(), Authenticated(ownerID), bookingID); err != nil {
		t.Errorf("owner should read their booking: %v", err)
	}

	_, err := service.GetByID(context.Background(), Authenticated(otherID), bookingID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another user, got %v", err)
	}
}

func TestGetByID_GuestBookingByID(t *testing.T) {
	bookingID := uuid.New()
	name := "Linh Tran"
	email := "linh@example.com"

	service := newTestBookingService(
		&mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:        entity.Base{ID: bookingID},
					Category:    entity.CategoryDining,
					Status:      entity.BookingStatusHeld,
					TotalAmount: 500000,
					GuestName:   &name,
					GuestEmail:  &email,
				}, nil
			},
		},
		nil,
	)

	if _, err := service.GetByID(context.Background(), Guest(GuestContact{}), bookingID); err != nil {
		t.Errorf("guest bookings are reachable by ID: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	service := newTestBookingService(nil, nil)

	_, err := service.GetByID(context.Background(), Authenticated(uuid.New()), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
