package adaptor

import (
	"encoding/json"
	"net/http"

	"travelo-booking/internal/dto/request"
	"travelo-booking/internal/usecase"
	"travelo-booking/pkg/utils"

	"go.uber.org/zap"
)

type VoucherHandler struct {
	service usecase.VoucherService
	log     *zap.Logger
}

func NewVoucherHandler(service usecase.VoucherService, log *zap.Logger) *VoucherHandler {
	return &VoucherHandler{
		service: service,
		log:     log.With(zap.String("handler", "voucher")),
	}
}

// Redeem handles POST /api/vouchers/redeem (protected)
func (h *VoucherHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RedeemVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	templateID, err := utils.ParseUUID(req.TemplateID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid template ID", nil)
		return
	}

	voucher, err := h.service.Redeem(r.Context(), userID, templateID)
	if err != nil {
		handleServiceError(w, h.log, err, "redeem voucher")
		return
	}

	utils.ResponseCreated(w, "success", voucher)
}

// ListPurchasable handles GET /api/vouchers (public)
func (h *VoucherHandler) ListPurchasable(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.ListPurchasable(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list vouchers")
		return
	}

	utils.ResponseSuccess(w, "success", vouchers)
}

// GetWallet handles GET /api/wallet (protected)
func (h *VoucherHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	wallet, err := h.service.Wallet(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet")
		return
	}

	utils.ResponseSuccess(w, "success", wallet)
}
