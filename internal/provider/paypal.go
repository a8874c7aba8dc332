package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"net/http"
	"net/url"

	"travelo-booking/pkg/utils"
)

// PayPal transmits the signature in headers rather than the body: the
// transmission id, timestamp, webhook id and a CRC of the body form the
// signed message. Custom IDs round-trip our transaction reference.
type PayPal struct {
	config utils.PayPalConfig
}

func NewPayPal(config utils.PayPalConfig) *PayPal {
	return &PayPal{config: config}
}

func (p *PayPal) Name() string { return "paypal" }

func (p *PayPal) CreateIntent(req IntentRequest) (*Intent, error) {
	params := url.Values{}
	params.Add("client_id", p.config.ClientID)
	params.Add("custom_id", req.TxnRef)
	params.Add("amount", fmt.Sprintf("%d.%02d", req.Amount/100, req.Amount%100))
	params.Add("currency_code", req.Currency)
	params.Add("description", req.OrderInfo)
	params.Add("return_url", req.ReturnURL)

	return &Intent{PaymentURL: p.config.PayURL + "?" + params.Encode()}, nil
}

type paypalWebhook struct {
	EventType string `json:"event_type"`
	Summary   string `json:"summary"`
	Resource  struct {
		ID       string `json:"id"`
		CustomID string `json:"custom_id"`
		Status   string `json:"status"`
	} `json:"resource"`
}

func (p *PayPal) VerifyWebhook(r *http.Request, body []byte) (*WebhookResult, error) {
	transmissionID := r.Header.Get("Paypal-Transmission-Id")
	timestamp := r.Header.Get("Paypal-Transmission-Time")
	signature := r.Header.Get("Paypal-Transmission-Sig")
	if transmissionID == "" || timestamp == "" || signature == "" {
		return nil, ErrInvalidSignature
	}

	message := fmt.Sprintf("%s|%s|%s|%d", transmissionID, timestamp, p.config.WebhookID, crc32.ChecksumIEEE(body))
	h := hmac.New(sha256.New, []byte(p.config.Secret))
	h.Write([]byte(message))
	expected := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var payload paypalWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrInvalidSignature
	}

	return &WebhookResult{
		TxnRef:     payload.Resource.CustomID,
		Succeeded:  payload.EventType == "PAYMENT.CAPTURE.COMPLETED",
		ResultCode: payload.Resource.Status,
		Message:    payload.Summary,
	}, nil
}
