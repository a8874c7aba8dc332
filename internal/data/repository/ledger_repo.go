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

type LedgerRepository interface {
	// Append writes the entry and applies its delta to the cached wallet
	// balance in the same transaction. The wallet row is created on first
	// touch.
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	GetWallet(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LedgerEntry, error)
}

type ledgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLedgerRepository(db database.PgxIface, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

func (r *ledgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (id, user_id, delta, reason, related_booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.UserID, entry.Delta, entry.Reason, entry.RelatedBookingID, entry.CreatedAt)
	if err != nil {
		r.log.Error("Failed to append ledger entry",
			zap.Error(err),
			zap.String("user_id", entry.UserID.String()),
			zap.Int64("delta", entry.Delta),
			zap.String("reason", entry.Reason),
		)
		return fmt.Errorf("append ledger entry for user %s: %w", entry.UserID.String(), err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
	`, entry.UserID, entry.Delta)
	if err != nil {
		r.log.Error("Failed to apply delta to wallet",
			zap.Error(err),
			zap.String("user_id", entry.UserID.String()),
		)
		return fmt.Errorf("apply ledger delta to wallet %s: %w", entry.UserID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	return nil
}

func (r *ledgerRepository) GetWallet(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	query := `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`

	var wallet entity.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.Balance,
		&wallet.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get wallet",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get wallet for user %s: %w", userID.String(), err)
	}

	return &wallet, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, user_id, delta, reason, related_booking_id, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list ledger entries",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list ledger entries for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Delta,
			&e.Reason,
			&e.RelatedBookingID,
			&e.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ledger row", zap.Error(err))
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}
