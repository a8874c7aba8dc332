package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func purchasableVoucher(id uuid.UUID) *entity.Voucher {
	return &entity.Voucher{
		Base:          entity.Base{ID: id},
		Code:          "WELCOME50",
		DiscountType:  entity.DiscountTypeFixed,
		DiscountValue: 50000,
		Price:         20000,
		Purchasable:   true,
		Active:        true,
		Stock:         10,
	}
}

func newTestVoucherService(voucher *mockVoucherRepository, userVoucher *mockUserVoucherRepository, ledger *mockLedgerRepository) *voucherService {
	repos := newMockRepository()
	if voucher != nil {
		repos.Voucher = voucher
	}
	if userVoucher != nil {
		repos.UserVoucher = userVoucher
	}
	if ledger != nil {
		repos.Ledger = ledger
	}
	return &voucherService{
		repo: repos,
		log:  zap.NewNop(),
		now:  time.Now,
	}
}

func TestRedeem_Success(t *testing.T) {
	userID := uuid.New()
	templateID := uuid.New()
	var purchased *entity.UserVoucher

	service := newTestVoucherService(
		&mockVoucherRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
				return purchasableVoucher(templateID), nil
			},
		},
		&mockUserVoucherRepository{
			purchaseFunc: func(ctx context.Context, uv *entity.UserVoucher, price int64) error {
				if price != 20000 {
					t.Errorf("expected purchase at template price 20000, got %d", price)
				}
				purchased = uv
				return nil
			},
		},
		nil,
	)

	resp, err := service.Redeem(context.Background(), userID, templateID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purchased == nil {
		t.Fatal("expected a voucher instance purchased")
	}
	if purchased.UserID != userID {
		t.Error("expected instance owned by the redeeming user")
	}
	if purchased.Status != entity.UserVoucherStatusAvailable {
		t.Errorf("expected available status, got %s", purchased.Status)
	}
	if resp.Status != entity.UserVoucherStatusAvailable {
		t.Errorf("expected available status in response, got %s", resp.Status)
	}
}

func TestRedeem_InsufficientBalance(t *testing.T) {
	templateID := uuid.New()

	service := newTestVoucherService(
		&mockVoucherRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
				return purchasableVoucher(templateID), nil
			},
		},
		&mockUserVoucherRepository{
			purchaseFunc: func(ctx context.Context, uv *entity.UserVoucher, price int64) error {
				return repository.ErrInsufficientBalance
			},
		},
		nil,
	)

	_, err := service.Redeem(context.Background(), uuid.New(), templateID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestRedeem_OutOfStockAtWrite(t *testing.T) {
	templateID := uuid.New()

	service := newTestVoucherService(
		&mockVoucherRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
				// Stock looks fine on the read; the conditional decrement
				// loses to a concurrent purchase.
				return purchasableVoucher(templateID), nil
			},
		},
		&mockUserVoucherRepository{
			purchaseFunc: func(ctx context.Context, uv *entity.UserVoucher, price int64) error {
				return repository.ErrOutOfStock
			},
		},
		nil,
	)

	_, err := service.Redeem(context.Background(), uuid.New(), templateID)
	if !errors.Is(err, ErrAvailability) {
		t.Errorf("expected ErrAvailability when stock runs out, got %v", err)
	}
}

func TestRedeem_RejectsInactiveExpiredOrEmpty(t *testing.T) {
	templateID := uuid.New()
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name   string
		mutate func(v *entity.Voucher)
	}{
		{"inactive", func(v *entity.Voucher) { v.Active = false }},
		{"not purchasable", func(v *entity.Voucher) { v.Purchasable = false }},
		{"expired", func(v *entity.Voucher) { v.ExpiresAt = &past }},
		{"zero stock", func(v *entity.Voucher) { v.Stock = 0 }},
	}

	for _, tc := range cases {
		v := purchasableVoucher(templateID)
		tc.mutate(v)

		service := newTestVoucherService(
			&mockVoucherRepository{
				findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
					return v, nil
				},
			},
			&mockUserVoucherRepository{
				purchaseFunc: func(ctx context.Context, uv *entity.UserVoucher, price int64) error {
					t.Errorf("%s: purchase must not be attempted", tc.name)
					return nil
				},
			},
			nil,
		)

		_, err := service.Redeem(context.Background(), uuid.New(), templateID)
		if !errors.Is(err, ErrAvailability) {
			t.Errorf("%s: expected ErrAvailability, got %v", tc.name, err)
		}
	}
}

func TestRedeem_UnknownTemplate(t *testing.T) {
	service := newTestVoucherService(nil, nil, nil)

	_, err := service.Redeem(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWallet_ZeroBalanceWithoutRow(t *testing.T) {
	service := newTestVoucherService(nil, nil, nil)

	wallet, err := service.Wallet(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.Balance != 0 {
		t.Errorf("untouched wallet reads as zero, got %d", wallet.Balance)
	}
	if wallet.Entries == nil {
		t.Error("expected an empty entries slice, not nil")
	}
}

func TestWallet_BalanceAndEntries(t *testing.T) {
	userID := uuid.New()

	service := newTestVoucherService(nil, nil, &mockLedgerRepository{
		getWalletFunc: func(ctx context.Context, id uuid.UUID) (*entity.Wallet, error) {
			return &entity.Wallet{UserID: id, Balance: 45000}, nil
		},
		listByUserFunc: func(ctx context.Context, id uuid.UUID, limit, offset int) ([]*entity.LedgerEntry, error) {
			return []*entity.LedgerEntry{
				{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: id, Delta: 65000, Reason: entity.LedgerReasonQuestReward},
				{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: id, Delta: -20000, Reason: entity.LedgerReasonVoucherPurchase},
			}, nil
		},
	})

	wallet, err := service.Wallet(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.Balance != 45000 {
		t.Errorf("expected balance 45000, got %d", wallet.Balance)
	}
	if len(wallet.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(wallet.Entries))
	}
	if wallet.Entries[1].Delta != -20000 {
		t.Errorf("expected debit entry preserved, got %d", wallet.Entries[1].Delta)
	}
}
