package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travelo-booking/pkg/utils"
)

// MoMo signs a canonical ampersand-joined parameter string with HMAC-SHA256.
// Webhooks arrive as JSON with the signature inside the body; resultCode 0
// means the charge succeeded.
type MoMo struct {
	config utils.MoMoConfig
	ipnURL string
}

func NewMoMo(config utils.MoMoConfig, baseURL string) *MoMo {
	return &MoMo{
		config: config,
		ipnURL: baseURL + "/api/payments/webhooks/momo",
	}
}

func (m *MoMo) Name() string { return "momo" }

func (m *MoMo) CreateIntent(req IntentRequest) (*Intent, error) {
	raw := fmt.Sprintf("accessKey=%s&amount=%d&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s",
		m.config.AccessKey, req.Amount, m.ipnURL, req.TxnRef, req.OrderInfo,
		m.config.PartnerCode, req.ReturnURL, req.TxnRef)
	signature := m.sign(raw)

	params := url.Values{}
	params.Add("partnerCode", m.config.PartnerCode)
	params.Add("orderId", req.TxnRef)
	params.Add("requestId", req.TxnRef)
	params.Add("amount", strconv.FormatInt(req.Amount, 10))
	params.Add("orderInfo", req.OrderInfo)
	params.Add("redirectUrl", req.ReturnURL)
	params.Add("ipnUrl", m.ipnURL)
	params.Add("signature", signature)

	return &Intent{PaymentURL: m.config.PayURL + "?" + params.Encode()}, nil
}

type momoWebhook struct {
	PartnerCode string `json:"partnerCode"`
	OrderID     string `json:"orderId"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderInfo   string `json:"orderInfo"`
	OrderType   string `json:"orderType"`
	TransID     int64  `json:"transId"`
	ResultCode  int    `json:"resultCode"`
	Message     string `json:"message"`
	PayType     string `json:"payType"`
	ExtraData   string `json:"extraData"`
	Signature   string `json:"signature"`
}

func (m *MoMo) VerifyWebhook(r *http.Request, body []byte) (*WebhookResult, error) {
	var payload momoWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrInvalidSignature
	}

	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&resultCode=%d&transId=%d",
		m.config.AccessKey, payload.Amount, payload.ExtraData, payload.Message,
		payload.OrderID, payload.OrderInfo, payload.OrderType, payload.PartnerCode,
		payload.PayType, payload.RequestID, payload.ResultCode, payload.TransID)

	expected := m.sign(raw)
	if payload.Signature == "" || !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return nil, ErrInvalidSignature
	}

	return &WebhookResult{
		TxnRef:     payload.OrderID,
		Succeeded:  payload.ResultCode == 0,
		ResultCode: strconv.Itoa(payload.ResultCode),
		Message:    payload.Message,
	}, nil
}

func (m *MoMo) sign(data string) string {
	h := hmac.New(sha256.New, []byte(m.config.SecretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
