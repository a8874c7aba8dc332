package response

import (
	"time"

	"travelo-booking/internal/data/entity"
)

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type PaymentIntentResponse struct {
	PaymentURL    string `json:"payment_url"`
	ProviderTxnID string `json:"provider_txn_id"`
}

type UserVoucherResponse struct {
	ID        string                   `json:"id"`
	VoucherID string                   `json:"voucher_id"`
	Status    entity.UserVoucherStatus `json:"status"`
	UsedAt    *time.Time               `json:"used_at,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

func UserVoucherToResponse(uv *entity.UserVoucher) *UserVoucherResponse {
	return &UserVoucherResponse{
		ID:        uv.ID.String(),
		VoucherID: uv.VoucherID.String(),
		Status:    uv.Status,
		UsedAt:    uv.UsedAt,
		CreatedAt: uv.CreatedAt,
	}
}

type VoucherResponse struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	DiscountType  entity.DiscountType `json:"discount_type"`
	DiscountValue int64               `json:"discount_value"`
	MinSpend      int64               `json:"min_spend"`
	Category      string              `json:"category,omitempty"`
	Price         int64               `json:"price"`
	Stock         int                 `json:"stock"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
}

func VoucherToResponse(v *entity.Voucher) *VoucherResponse {
	resp := &VoucherResponse{
		ID:            v.ID.String(),
		Code:          v.Code,
		DiscountType:  v.DiscountType,
		DiscountValue: v.DiscountValue,
		MinSpend:      v.MinSpend,
		Price:         v.Price,
		Stock:         v.Stock,
		ExpiresAt:     v.ExpiresAt,
	}
	if v.Category != nil {
		resp.Category = string(*v.Category)
	}
	return resp
}

type LedgerEntryResponse struct {
	ID               string    `json:"id"`
	Delta            int64     `json:"delta"`
	Reason           string    `json:"reason"`
	RelatedBookingID string    `json:"related_booking_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type WalletResponse struct {
	Balance int64                 `json:"balance"`
	Entries []LedgerEntryResponse `json:"entries"`
}

func LedgerEntryToResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:        e.ID.String(),
		Delta:     e.Delta,
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	}
	if e.RelatedBookingID != nil {
		resp.RelatedBookingID = e.RelatedBookingID.String()
	}
	return resp
}
