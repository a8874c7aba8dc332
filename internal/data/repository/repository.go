package repository

import (
	"travelo-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Resource    ResourceRepository
	Capacity    CapacityRepository
	Booking     BookingRepository
	Payment     PaymentRepository
	Voucher     VoucherRepository
	UserVoucher UserVoucherRepository
	Ledger      LedgerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Resource:    NewResourceRepository(db, log),
		Capacity:    NewCapacityRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Voucher:     NewVoucherRepository(db, log),
		UserVoucher: NewUserVoucherRepository(db, log),
		Ledger:      NewLedgerRepository(db, log),
	}
}
