package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VoucherService interface {
	// Redeem buys a voucher template with wallet balance. Debit, ledger
	// entry and voucher creation land together or not at all.
	Redeem(ctx context.Context, userID, templateID uuid.UUID) (*response.UserVoucherResponse, error)

	ListPurchasable(ctx context.Context) ([]*response.VoucherResponse, error)
	Wallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error)
}

type voucherService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewVoucherService(repo *repository.Repository, log *zap.Logger) VoucherService {
	return &voucherService{
		repo: repo,
		log:  log.With(zap.String("service", "voucher")),
		now:  time.Now,
	}
}

func (s *voucherService) Redeem(ctx context.Context, userID, templateID uuid.UUID) (*response.UserVoucherResponse, error) {
	voucher, err := s.repo.Voucher.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, fmt.Errorf("%w: voucher template %s", ErrNotFound, templateID.String())
	}
	if !voucher.Active || !voucher.Purchasable {
		return nil, fmt.Errorf("%w: voucher %s is not purchasable", ErrAvailability, voucher.Code)
	}
	if voucher.ExpiresAt != nil && voucher.ExpiresAt.Before(s.now()) {
		return nil, fmt.Errorf("%w: voucher %s has expired", ErrAvailability, voucher.Code)
	}
	if voucher.Stock <= 0 {
		return nil, fmt.Errorf("%w: voucher %s is out of stock", ErrAvailability, voucher.Code)
	}

	uv := &entity.UserVoucher{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		},
		UserID:    userID,
		VoucherID: voucher.ID,
		Status:    entity.UserVoucherStatusAvailable,
	}

	if err := s.repo.UserVoucher.Purchase(ctx, uv, voucher.Price); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientBalance):
			return nil, fmt.Errorf("%w: balance below voucher price %d", ErrInsufficientFunds, voucher.Price)
		case errors.Is(err, repository.ErrOutOfStock):
			return nil, fmt.Errorf("%w: voucher %s is out of stock", ErrAvailability, voucher.Code)
		}
		return nil, err
	}

	s.log.Info("Voucher redeemed",
		zap.String("user_id", userID.String()),
		zap.String("voucher_id", voucher.ID.String()),
		zap.Int64("price", voucher.Price),
	)

	return response.UserVoucherToResponse(uv), nil
}

func (s *voucherService) ListPurchasable(ctx context.Context) ([]*response.VoucherResponse, error) {
	vouchers, err := s.repo.Voucher.ListPurchasable(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*response.VoucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		items = append(items, response.VoucherToResponse(v))
	}
	return items, nil
}

func (s *voucherService) Wallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error) {
	wallet, err := s.repo.Ledger.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var balance int64
	if wallet != nil {
		balance = wallet.Balance
	}

	entries, err := s.repo.Ledger.ListByUser(ctx, userID, 20, 0)
	if err != nil {
		return nil, err
	}

	resp := &response.WalletResponse{Balance: balance, Entries: make([]response.LedgerEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, response.LedgerEntryToResponse(e))
	}
	return resp, nil
}
