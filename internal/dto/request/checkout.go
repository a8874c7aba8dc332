package request

type CheckoutItem struct {
	Name      string `json:"name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	UnitPrice int64  `json:"unit_price" validate:"min=0"`
}

type CheckoutRequest struct {
	Category    string         `json:"category" validate:"required,oneof=hotel flight dining activity event wellness beauty transport shop"`
	ResourceID  string         `json:"resource_id" validate:"omitempty,uuid4"`
	Date        string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string         `json:"time" validate:"omitempty,datetime=15:04"`
	PartySize   int            `json:"party_size" validate:"omitempty,min=1"`
	Items       []CheckoutItem `json:"items" validate:"omitempty,dive"`
	Currency    string         `json:"currency" validate:"omitempty,len=3"`
	VoucherCode string         `json:"voucher_code" validate:"omitempty"`

	// Guest contact, required when no authenticated identity is present.
	GuestName  string `json:"guest_name" validate:"omitempty"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	GuestPhone string `json:"guest_phone" validate:"omitempty"`
}

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}
