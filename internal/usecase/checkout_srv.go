package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/dto/request"
	"travelo-booking/internal/dto/response"
	"travelo-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hold durations per category. Transport inventory moves faster, so its
// holds are shorter.
const (
	holdDurationDefault   = 10 * time.Minute
	holdDurationTransport = 8 * time.Minute
)

var bookingCodePrefix = map[entity.BookingCategory]string{
	entity.CategoryHotel:     "HTL",
	entity.CategoryFlight:    "FLT",
	entity.CategoryDining:    "DIN",
	entity.CategoryActivity:  "ACT",
	entity.CategoryEvent:     "EVT",
	entity.CategoryWellness:  "WEL",
	entity.CategoryBeauty:    "BEA",
	entity.CategoryTransport: "TRN",
	entity.CategoryShop:      "SHP",
}

type CheckoutService interface {
	// Checkout validates the payload, applies any voucher discount, holds
	// capacity and creates the booking in held state. It returns before any
	// payment happens.
	Checkout(ctx context.Context, identity Identity, req *request.CheckoutRequest) (*response.BookingResponse, error)
}

type checkoutService struct {
	repo         *repository.Repository
	availability AvailabilityService
	log          *zap.Logger
	now          func() time.Time
}

func NewCheckoutService(repo *repository.Repository, availability AvailabilityService, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "checkout")),
		now:          time.Now,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, identity Identity, req *request.CheckoutRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	category := entity.BookingCategory(req.Category)

	if identity.IsGuest() {
		contact := identity.Contact()
		if contact.Name == "" || contact.Email == "" {
			return nil, fmt.Errorf("%w: guest checkout requires guest_name and guest_email", ErrValidation)
		}
	}

	var (
		resource *entity.Resource
		total    int64
		currency string
		metadata []byte
	)

	if category.SlotBased() {
		if req.ResourceID == "" || req.Date == "" || req.Time == "" || req.PartySize < 1 {
			return nil, fmt.Errorf("%w: %s booking requires resource_id, date, time and party_size", ErrValidation, category)
		}

		resourceID, err := uuid.Parse(req.ResourceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid resource_id", ErrValidation)
		}

		resource, err = s.repo.Resource.FindByID(ctx, resourceID)
		if err != nil {
			return nil, fmt.Errorf("load resource: %w", err)
		}
		if resource == nil || !resource.Active {
			return nil, fmt.Errorf("%w: resource %s", ErrNotFound, req.ResourceID)
		}
		if resource.Category != category {
			return nil, fmt.Errorf("%w: resource %s is not a %s venue", ErrValidation, req.ResourceID, category)
		}

		total = resource.UnitPrice * int64(req.PartySize)
		currency = resource.Currency
	} else {
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: %s booking requires at least one item", ErrValidation, category)
		}
		for _, item := range req.Items {
			total += item.UnitPrice * int64(item.Quantity)
		}
		currency = req.Currency
		if currency == "" {
			currency = "VND"
		}

		var err error
		metadata, err = json.Marshal(map[string]any{"items": req.Items})
		if err != nil {
			return nil, fmt.Errorf("encode booking metadata: %w", err)
		}
	}

	// Voucher discount is applied now, but the instance is consumed only at
	// settlement. Cancellation or expiry before then leaves it available.
	var userVoucherID *uuid.UUID
	var discount int64
	if req.VoucherCode != "" {
		uv, d, err := s.applyVoucher(ctx, identity, req.VoucherCode, category, total)
		if err != nil {
			return nil, err
		}
		userVoucherID = &uv.ID
		discount = d
		total -= discount
		if total < 0 {
			total = 0
		}
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		},
		BookingCode:    utils.GenerateBookingCode(bookingCodePrefix[category]),
		Category:       category,
		Status:         entity.BookingStatusHeld,
		TotalAmount:    total,
		Currency:       currency,
		PartySize:      req.PartySize,
		UserVoucherID:  userVoucherID,
		DiscountAmount: discount,
		Metadata:       metadata,
	}

	if userID, ok := identity.UserID(); ok {
		booking.UserID = &userID
		// Confirmation email goes to the booking's contact email, whoever
		// the booker is. Registered users get theirs from the token claims.
		if email := identity.Email(); email != "" {
			booking.GuestEmail = &email
		}
	} else {
		contact := identity.Contact()
		booking.GuestName = &contact.Name
		booking.GuestEmail = &contact.Email
		if contact.Phone != "" {
			booking.GuestPhone = &contact.Phone
		}
	}

	duration := holdDurationDefault
	if category == entity.CategoryTransport {
		duration = holdDurationTransport
	}
	expiresAt := s.now().Add(duration)
	booking.ExpiresAt = &expiresAt

	if category.SlotBased() {
		avail, err := s.availability.Check(ctx, resource.ID, req.Date, req.Time, req.PartySize)
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			return nil, fmt.Errorf("%w: %s", ErrAvailability, avail.Reason)
		}

		// The conditional increment is the real gate: two checkouts passing
		// the check above race here and only one wins.
		held, err := s.repo.Capacity.Hold(ctx, resource.ID, req.Date, req.Time, req.PartySize, resource.DefaultCapacity)
		if err != nil {
			return nil, err
		}
		if !held {
			return nil, fmt.Errorf("%w: slot was taken by a concurrent booking", ErrAvailability)
		}

		booking.ResourceID = &resource.ID
		booking.SlotDate = &req.Date
		booking.SlotTime = &req.Time
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if category.SlotBased() {
			if relErr := s.repo.Capacity.Release(ctx, resource.ID, req.Date, req.Time, req.PartySize); relErr != nil {
				s.log.Error("Failed to release capacity after booking insert failure",
					zap.Error(relErr),
					zap.String("resource_id", resource.ID.String()),
				)
			}
		}
		return nil, err
	}

	s.log.Info("Booking held",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("category", string(category)),
		zap.Int64("total_amount", total),
		zap.Bool("guest", identity.IsGuest()),
	)

	return response.BookingToResponse(booking), nil
}

func (s *checkoutService) applyVoucher(ctx context.Context, identity Identity, code string, category entity.BookingCategory, total int64) (*entity.UserVoucher, int64, error) {
	userID, ok := identity.UserID()
	if !ok {
		return nil, 0, fmt.Errorf("%w: vouchers require an authenticated user", ErrValidation)
	}

	voucher, err := s.repo.Voucher.FindByCode(ctx, code)
	if err != nil {
		return nil, 0, fmt.Errorf("load voucher: %w", err)
	}
	if voucher == nil || !voucher.Active {
		return nil, 0, fmt.Errorf("%w: voucher %s not found", ErrValidation, code)
	}
	if voucher.ExpiresAt != nil && voucher.ExpiresAt.Before(s.now()) {
		return nil, 0, fmt.Errorf("%w: voucher %s has expired", ErrValidation, code)
	}
	if voucher.Category != nil && *voucher.Category != category {
		return nil, 0, fmt.Errorf("%w: voucher %s only applies to %s bookings", ErrValidation, code, *voucher.Category)
	}
	if total < voucher.MinSpend {
		return nil, 0, fmt.Errorf("%w: voucher %s requires a minimum spend of %d", ErrValidation, code, voucher.MinSpend)
	}

	if voucher.PerUserLimit > 0 {
		used, err := s.repo.UserVoucher.CountByUserAndVoucher(ctx, userID, voucher.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("count voucher usage: %w", err)
		}
		if used >= voucher.PerUserLimit {
			return nil, 0, fmt.Errorf("%w: voucher %s usage limit reached", ErrValidation, code)
		}
	}

	uv, err := s.repo.UserVoucher.FindAvailable(ctx, userID, voucher.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("load user voucher: %w", err)
	}
	if uv == nil {
		return nil, 0, fmt.Errorf("%w: no available voucher %s for this user", ErrValidation, code)
	}

	return uv, voucher.DiscountFor(total), nil
}
