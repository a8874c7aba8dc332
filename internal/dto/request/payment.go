package request

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Provider  string `json:"provider" validate:"required,oneof=momo vnpay paypal"`
	ReturnURL string `json:"return_url" validate:"required,url"`
}

type RedeemVoucherRequest struct {
	TemplateID string `json:"template_id" validate:"required,uuid4"`
}
