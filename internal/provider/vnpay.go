package provider

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"travelo-booking/pkg/utils"
)

// VNPay signs the sorted, URL-encoded parameter string with HMAC-SHA512 and
// carries the digest in vnp_SecureHash. IPN deliveries POST the same
// parameter set as a form body.
type VNPay struct {
	config utils.VNPayConfig
	ipnURL string
}

func NewVNPay(config utils.VNPayConfig, baseURL string) *VNPay {
	return &VNPay{
		config: config,
		ipnURL: baseURL + "/api/payments/webhooks/vnpay",
	}
}

func (v *VNPay) Name() string { return "vnpay" }

func (v *VNPay) CreateIntent(req IntentRequest) (*Intent, error) {
	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.config.TmnCode)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Add("vnp_CreateDate", time.Now().Format("20060102150405"))
	params.Add("vnp_CurrCode", req.Currency)
	params.Add("vnp_IpAddr", req.ClientIP)
	params.Add("vnp_Locale", "vn")
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", "other")
	params.Add("vnp_ReturnUrl", req.ReturnURL)
	params.Add("vnp_IpnUrl", v.ipnURL)
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_ExpireDate", time.Now().Add(15*time.Minute).Format("20060102150405"))

	// url.Values.Encode sorts keys, which is exactly the canonical order
	// VNPay hashes over.
	query := params.Encode()
	fullQuery := query + "&vnp_SecureHash=" + v.sign(query)

	return &Intent{PaymentURL: v.config.PayURL + "?" + fullQuery}, nil
}

func (v *VNPay) VerifyWebhook(r *http.Request, body []byte) (*WebhookResult, error) {
	query, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(query) == 0 {
		query = r.URL.Query()
	}

	secureHash := query.Get("vnp_SecureHash")
	query.Del("vnp_SecureHash")
	query.Del("vnp_SecureHashType")

	expected := v.sign(query.Encode())
	if secureHash == "" || !hmac.Equal([]byte(expected), []byte(secureHash)) {
		return nil, ErrInvalidSignature
	}

	code := query.Get("vnp_ResponseCode")
	return &WebhookResult{
		TxnRef:     query.Get("vnp_TxnRef"),
		Succeeded:  code == "00",
		ResultCode: code,
		Message:    query.Get("vnp_OrderInfo"),
	}, nil
}

func (v *VNPay) sign(data string) string {
	h := hmac.New(sha512.New, []byte(v.config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
