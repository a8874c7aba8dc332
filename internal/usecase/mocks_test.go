package usecase

import (
	"context"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/internal/data/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockResourceRepository struct {
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	findBlackoutFunc func(ctx context.Context, resourceID uuid.UUID, date string) (*entity.ResourceBlackout, error)
}

func (m *mockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockResourceRepository) FindBlackout(ctx context.Context, resourceID uuid.UUID, date string) (*entity.ResourceBlackout, error) {
	if m.findBlackoutFunc != nil {
		return m.findBlackoutFunc(ctx, resourceID, date)
	}
	return nil, nil
}

type mockCapacityRepository struct {
	findSlotFunc func(ctx context.Context, resourceID uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error)
	holdFunc     func(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty, totalCapacity int) (bool, error)
	releaseFunc  func(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty int) error
}

func (m *mockCapacityRepository) FindSlot(ctx context.Context, resourceID uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
	if m.findSlotFunc != nil {
		return m.findSlotFunc(ctx, resourceID, date, slotTime)
	}
	return nil, nil
}

func (m *mockCapacityRepository) Hold(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty, totalCapacity int) (bool, error) {
	if m.holdFunc != nil {
		return m.holdFunc(ctx, resourceID, date, slotTime, qty, totalCapacity)
	}
	return true, nil
}

func (m *mockCapacityRepository) Release(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty int) error {
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, resourceID, date, slotTime, qty)
	}
	return nil
}

type mockBookingRepository struct {
	createFunc         func(ctx context.Context, booking *entity.Booking) error
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByCodeFunc     func(ctx context.Context, code string) (*entity.Booking, error)
	findByUserIDFunc   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	countByUserIDFunc  func(ctx context.Context, userID uuid.UUID) (int64, error)
	updateStatusIfFunc func(ctx context.Context, bookingID uuid.UUID, to entity.BookingStatus, from ...entity.BookingStatus) (bool, error)
	cancelFunc         func(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) (bool, error)
	expireDueFunc      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID, limit, offset)
	}
	return []*entity.Booking{}, nil
}

func (m *mockBookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.countByUserIDFunc != nil {
		return m.countByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, to entity.BookingStatus, from ...entity.BookingStatus) (bool, error) {
	if m.updateStatusIfFunc != nil {
		return m.updateStatusIfFunc(ctx, bookingID, to, from...)
	}
	return true, nil
}

func (m *mockBookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) (bool, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, bookingID, reason, at)
	}
	return true, nil
}

func (m *mockBookingRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	if m.expireDueFunc != nil {
		return m.expireDueFunc(ctx, now)
	}
	return 0, nil
}

type mockPaymentRepository struct {
	createFunc                  func(ctx context.Context, txn *entity.PaymentTransaction) error
	findByProviderTxnIDFunc     func(ctx context.Context, providerTxnID string) (*entity.PaymentTransaction, error)
	findByBookingIDFunc         func(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentTransaction, error)
	hasSuccessForBookingFunc    func(ctx context.Context, bookingID uuid.UUID) (bool, error)
	markSuccessIfNotAlreadyFunc func(ctx context.Context, providerTxnID string) (bool, error)
	markFailedFunc              func(ctx context.Context, providerTxnID, message string) error
}

func (m *mockPaymentRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, txn)
	}
	return nil
}

func (m *mockPaymentRepository) FindByProviderTxnID(ctx context.Context, providerTxnID string) (*entity.PaymentTransaction, error) {
	if m.findByProviderTxnIDFunc != nil {
		return m.findByProviderTxnIDFunc(ctx, providerTxnID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentTransaction, error) {
	if m.findByBookingIDFunc != nil {
		return m.findByBookingIDFunc(ctx, bookingID)
	}
	return []*entity.PaymentTransaction{}, nil
}

func (m *mockPaymentRepository) HasSuccessForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	if m.hasSuccessForBookingFunc != nil {
		return m.hasSuccessForBookingFunc(ctx, bookingID)
	}
	return false, nil
}

func (m *mockPaymentRepository) MarkSuccessIfNotAlready(ctx context.Context, providerTxnID string) (bool, error) {
	if m.markSuccessIfNotAlreadyFunc != nil {
		return m.markSuccessIfNotAlreadyFunc(ctx, providerTxnID)
	}
	return true, nil
}

func (m *mockPaymentRepository) MarkFailed(ctx context.Context, providerTxnID, message string) error {
	if m.markFailedFunc != nil {
		return m.markFailedFunc(ctx, providerTxnID, message)
	}
	return nil
}

type mockVoucherRepository struct {
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	findByCodeFunc      func(ctx context.Context, code string) (*entity.Voucher, error)
	listPurchasableFunc func(ctx context.Context) ([]*entity.Voucher, error)
}

func (m *mockVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockVoucherRepository) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockVoucherRepository) ListPurchasable(ctx context.Context) ([]*entity.Voucher, error) {
	if m.listPurchasableFunc != nil {
		return m.listPurchasableFunc(ctx)
	}
	return []*entity.Voucher{}, nil
}

type mockUserVoucherRepository struct {
	findByIDFunc              func(ctx context.Context, id uuid.UUID) (*entity.UserVoucher, error)
	findAvailableFunc         func(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error)
	countByUserAndVoucherFunc func(ctx context.Context, userID, voucherID uuid.UUID) (int, error)
	purchaseFunc              func(ctx context.Context, uv *entity.UserVoucher, price int64) error
	markUsedFunc              func(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error)
}

func (m *mockUserVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserVoucher, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserVoucherRepository) FindAvailable(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	if m.findAvailableFunc != nil {
		return m.findAvailableFunc(ctx, userID, voucherID)
	}
	return nil, nil
}

func (m *mockUserVoucherRepository) CountByUserAndVoucher(ctx context.Context, userID, voucherID uuid.UUID) (int, error) {
	if m.countByUserAndVoucherFunc != nil {
		return m.countByUserAndVoucherFunc(ctx, userID, voucherID)
	}
	return 0, nil
}

func (m *mockUserVoucherRepository) Purchase(ctx context.Context, uv *entity.UserVoucher, price int64) error {
	if m.purchaseFunc != nil {
		return m.purchaseFunc(ctx, uv, price)
	}
	return nil
}

func (m *mockUserVoucherRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	if m.markUsedFunc != nil {
		return m.markUsedFunc(ctx, id, usedAt)
	}
	return true, nil
}

type mockLedgerRepository struct {
	appendFunc     func(ctx context.Context, entry *entity.LedgerEntry) error
	getWalletFunc  func(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	listByUserFunc func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LedgerEntry, error)
}

func (m *mockLedgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	return nil
}

func (m *mockLedgerRepository) GetWallet(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	if m.getWalletFunc != nil {
		return m.getWalletFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockLedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LedgerEntry, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return []*entity.LedgerEntry{}, nil
}

// newMockRepository returns a Repository where every call succeeds with zero
// values. Tests override the fields they care about.
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		Resource:    &mockResourceRepository{},
		Capacity:    &mockCapacityRepository{},
		Booking:     &mockBookingRepository{},
		Payment:     &mockPaymentRepository{},
		Voucher:     &mockVoucherRepository{},
		UserVoucher: &mockUserVoucherRepository{},
		Ledger:      &mockLedgerRepository{},
	}
}

type mockNotifier struct {
	bookingConfirmedFunc func(booking *entity.Booking, email string)
}

func (m *mockNotifier) BookingConfirmed(booking *entity.Booking, email string) {
	if m.bookingConfirmedFunc != nil {
		m.bookingConfirmedFunc(booking, email)
	}
}

func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
