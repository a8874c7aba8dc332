package response

import (
	"time"

	"travelo-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string                 `json:"id"`
	BookingCode    string                 `json:"booking_code"`
	Category       entity.BookingCategory `json:"category"`
	Status         entity.BookingStatus   `json:"status"`
	TotalAmount    int64                  `json:"total_amount"`
	Currency       string                 `json:"currency"`
	ResourceID     string                 `json:"resource_id,omitempty"`
	SlotDate       string                 `json:"slot_date,omitempty"`
	SlotTime       string                 `json:"slot_time,omitempty"`
	PartySize      int                    `json:"party_size,omitempty"`
	DiscountAmount int64                  `json:"discount_amount,omitempty"`
	ExpiresAt      *time.Time             `json:"expires_at,omitempty"`
	CancelReason   string                 `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID.String(),
		BookingCode:    b.BookingCode,
		Category:       b.Category,
		Status:         b.Status,
		TotalAmount:    b.TotalAmount,
		Currency:       b.Currency,
		PartySize:      b.PartySize,
		DiscountAmount: b.DiscountAmount,
		ExpiresAt:      b.ExpiresAt,
		CreatedAt:      b.CreatedAt,
	}
	if b.ResourceID != nil {
		resp.ResourceID = b.ResourceID.String()
	}
	if b.SlotDate != nil {
		resp.SlotDate = *b.SlotDate
	}
	if b.SlotTime != nil {
		resp.SlotTime = *b.SlotTime
	}
	if b.CancelReason != nil {
		resp.CancelReason = *b.CancelReason
	}
	return resp
}

type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
}
