package usecase

import (
	"context"
	"fmt"
	"time"

	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// Check answers whether partySize units can be reserved at the given
	// slot. It expires overdue holds first so a stale hold never blocks a
	// slot; beyond that it mutates nothing and is safe to call repeatedly.
	Check(ctx context.Context, resourceID uuid.UUID, date, slotTime string, partySize int) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
		now:  time.Now,
	}
}

func (s *availabilityService) Check(ctx context.Context, resourceID uuid.UUID, date, slotTime string, partySize int) (*response.AvailabilityResponse, error) {
	resource, err := s.repo.Resource.FindByID(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("load resource: %w", err)
	}
	if resource == nil || !resource.Active {
		return nil, fmt.Errorf("%w: resource %s", ErrNotFound, resourceID.String())
	}

	// Expired holds must not count toward consumption. Releasing them here
	// keeps the capacity counter honest without a background dependency.
	if _, err := s.repo.Booking.ExpireDue(ctx, s.now()); err != nil {
		return nil, fmt.Errorf("expire due holds: %w", err)
	}

	blackout, err := s.repo.Resource.FindBlackout(ctx, resourceID, date)
	if err != nil {
		return nil, fmt.Errorf("check blackout: %w", err)
	}
	if blackout != nil {
		reason := fmt.Sprintf("Not available on %s", date)
		if blackout.Reason != "" {
			reason = fmt.Sprintf("Not available on %s: %s", date, blackout.Reason)
		}
		return &response.AvailabilityResponse{Available: false, Reason: reason}, nil
	}

	if !withinOperatingHours(slotTime, resource.OpenTime, resource.CloseTime) {
		return &response.AvailabilityResponse{
			Available: false,
			Reason:    fmt.Sprintf("Outside operating hours (%s - %s)", resource.OpenTime, resource.CloseTime),
		}, nil
	}

	slot, err := s.repo.Capacity.FindSlot(ctx, resourceID, date, slotTime)
	if err != nil {
		return nil, fmt.Errorf("load capacity slot: %w", err)
	}

	capacity := resource.DefaultCapacity
	consumed := 0
	if slot != nil {
		capacity = slot.TotalCapacity
		consumed = slot.Consumed
	}

	remaining := capacity - consumed
	if remaining < partySize {
		return &response.AvailabilityResponse{
			Available: false,
			Reason:    fmt.Sprintf("Insufficient capacity: %d of %d remaining", remaining, capacity),
		}, nil
	}

	return &response.AvailabilityResponse{Available: true}, nil
}

// withinOperatingHours compares HH:MM strings; slots at closing time are out.
func withinOperatingHours(slotTime, open, close string) bool {
	if open == "" || close == "" {
		return true
	}
	return slotTime >= open && slotTime < close
}
