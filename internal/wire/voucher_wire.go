package wire

import (
	"travelo-booking/internal/adaptor"
	"travelo-booking/pkg/middleware"
	"travelo-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVoucher(
	r chi.Router,
	voucherHandler *adaptor.VoucherHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/vouchers - List purchasable voucher templates
	r.Get("/api/vouchers", voucherHandler.ListPurchasable)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.Secret, log))

		// POST /api/vouchers/redeem - Buy a voucher with wallet balance
		r.Post("/api/vouchers/redeem", voucherHandler.Redeem)

		// GET /api/wallet - Wallet balance and recent ledger entries
		r.Get("/api/wallet", voucherHandler.GetWallet)
	})
}
