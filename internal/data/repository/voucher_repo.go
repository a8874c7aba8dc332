package repository

import (
	"context"
	"fmt"

	"travelo-booking/internal/data/entity"
	"travelo-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	FindByCode(ctx context.Context, code string) (*entity.Voucher, error)
	ListPurchasable(ctx context.Context) ([]*entity.Voucher, error)
}

type voucherRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVoucherRepository(db database.PgxIface, log *zap.Logger) VoucherRepository {
	return &voucherRepository{
		db:  db,
		log: log.With(zap.String("repository", "voucher")),
	}
}

const voucherColumns = `id, code, discount_type, discount_value, min_spend, category, price,
	purchasable, active, stock, used_count, per_user_limit, expires_at, created_at, updated_at`

func scanVoucher(row pgx.Row) (*entity.Voucher, error) {
	var v entity.Voucher
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.DiscountType,
		&v.DiscountValue,
		&v.MinSpend,
		&v.Category,
		&v.Price,
		&v.Purchasable,
		&v.Active,
		&v.Stock,
		&v.UsedCount,
		&v.PerUserLimit,
		&v.ExpiresAt,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	voucher, err := scanVoucher(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find voucher by ID",
			zap.Error(err),
			zap.String("voucher_id", id.String()),
		)
		return nil, fmt.Errorf("find voucher by ID %s: %w", id.String(), err)
	}

	return voucher, nil
}

func (r *voucherRepository) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE code = $1`

	voucher, err := scanVoucher(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find voucher by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find voucher by code %s: %w", code, err)
	}

	return voucher, nil
}

func (r *voucherRepository) ListPurchasable(ctx context.Context) ([]*entity.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE active IS TRUE AND purchasable IS TRUE AND stock > 0
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list purchasable vouchers", zap.Error(err))
		return nil, fmt.Errorf("list purchasable vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*entity.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			r.log.Error("Failed to scan voucher row", zap.Error(err))
			return nil, fmt.Errorf("scan voucher row: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, nil
}
