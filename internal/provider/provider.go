package provider

import (
	"errors"
	"net/http"
)

// ErrInvalidSignature is returned by VerifyWebhook when the payload cannot be
// authenticated. No state may be mutated after seeing it.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// IntentRequest carries everything a provider needs to build a redirect URL.
type IntentRequest struct {
	TxnRef      string // our provider_txn_id
	BookingCode string
	Amount      int64 // smallest currency unit
	Currency    string
	OrderInfo   string
	ReturnURL   string
	ClientIP    string
}

type Intent struct {
	PaymentURL string
}

// WebhookResult is the provider-neutral outcome of a verified webhook.
type WebhookResult struct {
	TxnRef     string
	Succeeded  bool
	ResultCode string
	Message    string
}

// PaymentProvider is one external payment integration. Each provider defines
// its own redirect URL shape and webhook signature scheme.
type PaymentProvider interface {
	Name() string
	CreateIntent(req IntentRequest) (*Intent, error)

	// VerifyWebhook authenticates the delivery before parsing its outcome.
	// Must return ErrInvalidSignature without side effects on a bad payload.
	VerifyWebhook(r *http.Request, body []byte) (*WebhookResult, error)
}

// Registry resolves providers by the name tag carried on the webhook route.
type Registry struct {
	providers map[string]PaymentProvider
}

func NewRegistry(providers ...PaymentProvider) *Registry {
	m := make(map[string]PaymentProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Get(name string) (PaymentProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}
