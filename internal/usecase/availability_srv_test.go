package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"travelo-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testResource(id uuid.UUID, category entity.BookingCategory) *entity.Resource {
	return &entity.Resource{
		Base:            entity.Base{ID: id},
		Category:        category,
		Name:            "Test Venue",
		UnitPrice:       500000,
		Currency:        "VND",
		DefaultCapacity: 10,
		OpenTime:        "09:00",
		CloseTime:       "22:00",
		Active:          true,
	}
}

func newTestAvailabilityService(repo *mockResourceRepository, capacity *mockCapacityRepository, booking *mockBookingRepository) *availabilityService {
	repos := newMockRepository()
	if repo != nil {
		repos.Resource = repo
	}
	if capacity != nil {
		repos.Capacity = capacity
	}
	if booking != nil {
		repos.Booking = booking
	}
	return &availabilityService{
		repo: repos,
		log:  zap.NewNop(),
		now:  time.Now,
	}
}

func TestCheck_InsufficientCapacity(t *testing.T) {
	resourceID := uuid.New()

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryDining), nil
			},
		},
		&mockCapacityRepository{
			findSlotFunc: func(ctx context.Context, rid uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
				return &entity.CapacitySlot{
					ResourceID:    rid,
					SlotDate:      date,
					SlotTime:      slotTime,
					TotalCapacity: 10,
					Consumed:      8,
				}, nil
			},
		},
		nil,
	)

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "19:00", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Available {
		t.Error("expected slot with 2 remaining to reject a party of 4")
	}
	if !strings.Contains(result.Reason, "2 of 10 remaining") {
		t.Errorf("expected remaining capacity in reason, got %q", result.Reason)
	}
}

func TestCheck_CapacityExactlyFits(t *testing.T) {
	resourceID := uuid.New()

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryDining), nil
			},
		},
		&mockCapacityRepository{
			findSlotFunc: func(ctx context.Context, rid uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
				return &entity.CapacitySlot{TotalCapacity: 10, Consumed: 8}, nil
			},
		},
		nil,
	)

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "19:00", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Available {
		t.Errorf("party of 2 should fit into 2 remaining, got reason %q", result.Reason)
	}
}

func TestCheck_ExpiresOverdueHoldsFirst(t *testing.T) {
	resourceID := uuid.New()
	expireCalled := false

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryWellness), nil
			},
		},
		&mockCapacityRepository{
			findSlotFunc: func(ctx context.Context, rid uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
				if !expireCalled {
					t.Error("slot read before expiring overdue holds")
				}
				return &entity.CapacitySlot{TotalCapacity: 5, Consumed: 1}, nil
			},
		},
		&mockBookingRepository{
			expireDueFunc: func(ctx context.Context, now time.Time) (int64, error) {
				expireCalled = true
				return 2, nil
			},
		},
	)

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "10:00", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expireCalled {
		t.Error("expected overdue holds to be expired before reading capacity")
	}
	if !result.Available {
		t.Errorf("expected availability after stale holds released, got %q", result.Reason)
	}
}

func TestCheck_Blackout(t *testing.T) {
	resourceID := uuid.New()

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryHotel), nil
			},
			findBlackoutFunc: func(ctx context.Context, rid uuid.UUID, date string) (*entity.ResourceBlackout, error) {
				return &entity.ResourceBlackout{
					ResourceID: rid,
					StartDate:  "2026-09-10",
					EndDate:    "2026-09-20",
					Reason:     "renovation",
				}, nil
			},
		},
		nil,
		nil,
	)

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "19:00", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Available {
		t.Error("expected blackout date to be unavailable")
	}
	if !strings.Contains(result.Reason, "renovation") {
		t.Errorf("expected blackout reason to be surfaced, got %q", result.Reason)
	}
}

func TestCheck_OutsideOperatingHours(t *testing.T) {
	resourceID := uuid.New()

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryBeauty), nil
			},
		},
		nil,
		nil,
	)

	for _, slotTime := range []string{"08:00", "22:00", "23:30"} {
		result, err := service.Check(context.Background(), resourceID, "2026-09-15", slotTime, 1)
		if err != nil {
			t.Fatalf("slot %s: unexpected error: %v", slotTime, err)
		}
		if result.Available {
			t.Errorf("slot %s should be outside 09:00-22:00", slotTime)
		}
	}

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "09:00", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Available {
		t.Errorf("opening-time slot should be available, got %q", result.Reason)
	}
}

func TestCheck_UnknownOrInactiveResource(t *testing.T) {
	service := newTestAvailabilityService(nil, nil, nil)

	_, err := service.Check(context.Background(), uuid.New(), "2026-09-15", "10:00", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown resource, got %v", err)
	}

	inactive := testResource(uuid.New(), entity.CategoryDining)
	inactive.Active = false
	service = newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return inactive, nil
			},
		},
		nil,
		nil,
	)

	_, err = service.Check(context.Background(), inactive.ID, "2026-09-15", "10:00", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for inactive resource, got %v", err)
	}
}

func TestCheck_UnboundedSlotUsesDefaultCapacity(t *testing.T) {
	resourceID := uuid.New()

	service := newTestAvailabilityService(
		&mockResourceRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
				return testResource(resourceID, entity.CategoryActivity), nil
			},
		},
		&mockCapacityRepository{
			findSlotFunc: func(ctx context.Context, rid uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
				return nil, nil
			},
		},
		nil,
	)

	result, err := service.Check(context.Background(), resourceID, "2026-09-15", "10:00", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Available {
		t.Errorf("untouched slot should offer the full default capacity, got %q", result.Reason)
	}

	result, err = service.Check(context.Background(), resourceID, "2026-09-15", "10:00", 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Available {
		t.Error("party above default capacity should be rejected")
	}
}
