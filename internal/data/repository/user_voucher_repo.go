package repository

import (
	"context"
	"fmt"
	"time"

	"travelo-booking/internal/data/entity"
	"travelo-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserVoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserVoucher, error)
	FindAvailable(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error)
	CountByUserAndVoucher(ctx context.Context, userID, voucherID uuid.UUID) (int, error)

	// Purchase debits the wallet, appends the ledger entry, decrements stock
	// and creates the user voucher in one transaction. Returns
	// ErrInsufficientBalance or ErrOutOfStock when a conditional write
	// affects zero rows; nothing persists in that case.
	Purchase(ctx context.Context, uv *entity.UserVoucher, price int64) error

	// MarkUsed consumes the voucher instance exactly once.
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error)
}

type userVoucherRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserVoucherRepository(db database.PgxIface, log *zap.Logger) UserVoucherRepository {
	return &userVoucherRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_voucher")),
	}
}

const userVoucherColumns = `id, user_id, voucher_id, status, used_at, created_at, updated_at`

func scanUserVoucher(row pgx.Row) (*entity.UserVoucher, error) {
	var uv entity.UserVoucher
	err := row.Scan(
		&uv.ID,
		&uv.UserID,
		&uv.VoucherID,
		&uv.Status,
		&uv.UsedAt,
		&uv.CreatedAt,
		&uv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &uv, nil
}

func (r *userVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserVoucher, error) {
	query := `SELECT ` + userVoucherColumns + ` FROM user_vouchers WHERE id = $1`

	uv, err := scanUserVoucher(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user voucher by ID",
			zap.Error(err),
			zap.String("user_voucher_id", id.String()),
		)
		return nil, fmt.Errorf("find user voucher by ID %s: %w", id.String(), err)
	}

	return uv, nil
}

func (r *userVoucherRepository) FindAvailable(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	query := `
		SELECT ` + userVoucherColumns + `
		FROM user_vouchers
		WHERE user_id = $1 AND voucher_id = $2 AND status = $3
		ORDER BY created_at
		LIMIT 1
	`

	uv, err := scanUserVoucher(r.db.QueryRow(ctx, query, userID, voucherID, entity.UserVoucherStatusAvailable))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find available user voucher",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("voucher_id", voucherID.String()),
		)
		return nil, fmt.Errorf("find available user voucher for user %s: %w", userID.String(), err)
	}

	return uv, nil
}

func (r *userVoucherRepository) CountByUserAndVoucher(ctx context.Context, userID, voucherID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM user_vouchers WHERE user_id = $1 AND voucher_id = $2 AND status = $3`

	var count int
	err := r.db.QueryRow(ctx, query, userID, voucherID, entity.UserVoucherStatusUsed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count used vouchers",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("voucher_id", voucherID.String()),
		)
		return 0, fmt.Errorf("count used vouchers for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *userVoucherRepository) Purchase(ctx context.Context, uv *entity.UserVoucher, price int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purchase transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional debit of the cached balance. Zero rows means the wallet is
	// missing or short.
	debit, err := tx.Exec(ctx, `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
	`, uv.UserID, price)
	if err != nil {
		r.log.Error("Failed to debit wallet",
			zap.Error(err),
			zap.String("user_id", uv.UserID.String()),
			zap.Int64("price", price),
		)
		return fmt.Errorf("debit wallet for user %s: %w", uv.UserID.String(), err)
	}
	if debit.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	// The ledger entry rides the same transaction so the projection never
	// drifts from the log.
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (id, user_id, delta, reason, related_booking_id, created_at)
		VALUES ($1, $2, $3, $4, NULL, NOW())
	`, uuid.New(), uv.UserID, -price, entity.LedgerReasonVoucherPurchase)
	if err != nil {
		return fmt.Errorf("append purchase ledger entry for user %s: %w", uv.UserID.String(), err)
	}

	stock, err := tx.Exec(ctx, `
		UPDATE vouchers
		SET stock = stock - 1, updated_at = NOW()
		WHERE id = $1 AND stock > 0
	`, uv.VoucherID)
	if err != nil {
		return fmt.Errorf("decrement voucher stock %s: %w", uv.VoucherID.String(), err)
	}
	if stock.RowsAffected() == 0 {
		return ErrOutOfStock
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_vouchers (`+userVoucherColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uv.ID, uv.UserID, uv.VoucherID, uv.Status, uv.UsedAt, uv.CreatedAt, uv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user voucher for user %s: %w", uv.UserID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase transaction: %w", err)
	}

	return nil
}

func (r *userVoucherRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	query := `
		UPDATE user_vouchers
		SET status = $2, used_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, id, entity.UserVoucherStatusUsed, usedAt, entity.UserVoucherStatusAvailable)
	if err != nil {
		r.log.Error("Failed to mark user voucher used",
			zap.Error(err),
			zap.String("user_voucher_id", id.String()),
		)
		return false, fmt.Errorf("mark user voucher %s used: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
