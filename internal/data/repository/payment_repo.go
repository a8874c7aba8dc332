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

type PaymentRepository interface {
	Create(ctx context.Context, txn *entity.PaymentTransaction) error
	FindByProviderTxnID(ctx context.Context, providerTxnID string) (*entity.PaymentTransaction, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentTransaction, error)
	HasSuccessForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// MarkSuccessIfNotAlready flips the transaction to success unless it, or
	// any sibling attempt for the same booking, already succeeded. Returns
	// false on zero rows affected: the delivery is a repeat (same ref or a
	// second intent) and must be a no-op.
	MarkSuccessIfNotAlready(ctx context.Context, providerTxnID string) (bool, error)
	MarkFailed(ctx context.Context, providerTxnID, message string) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount, currency, provider, provider_txn_id, status, failure_message, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.PaymentTransaction, error) {
	var p entity.PaymentTransaction
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Currency,
		&p.Provider,
		&p.ProviderTxnID,
		&p.Status,
		&p.FailureMessage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.BookingID,
		txn.Amount,
		txn.Currency,
		txn.Provider,
		txn.ProviderTxnID,
		txn.Status,
		txn.FailureMessage,
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment transaction",
			zap.Error(err),
			zap.String("booking_id", txn.BookingID.String()),
			zap.String("provider", txn.Provider),
		)
		return fmt.Errorf("create payment transaction for booking %s: %w", txn.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByProviderTxnID(ctx context.Context, providerTxnID string) (*entity.PaymentTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE provider_txn_id = $1`

	txn, err := scanPayment(r.db.QueryRow(ctx, query, providerTxnID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by provider txn ID",
			zap.Error(err),
			zap.String("provider_txn_id", providerTxnID),
		)
		return nil, fmt.Errorf("find payment by provider txn ID %s: %w", providerTxnID, err)
	}

	return txn, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentTransaction, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_transactions
		WHERE booking_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var txns []*entity.PaymentTransaction
	for rows.Next() {
		txn, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		txns = append(txns, txn)
	}

	return txns, nil
}

func (r *paymentRepository) HasSuccessForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payment_transactions WHERE booking_id = $1 AND status = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, bookingID, entity.PaymentStatusSuccess).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check successful payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("check successful payment for booking %s: %w", bookingID.String(), err)
	}

	return exists, nil
}

func (r *paymentRepository) MarkSuccessIfNotAlready(ctx context.Context, providerTxnID string) (bool, error) {
	// The NOT EXISTS clause scopes the guard to the whole booking: once any
	// attempt succeeded, a success delivery for a sibling attempt affects
	// zero rows. One success per booking, even across concurrent webhooks.
	query := `
		UPDATE payment_transactions
		SET status = $2, updated_at = NOW()
		WHERE provider_txn_id = $1 AND status <> $2
		  AND NOT EXISTS (
			SELECT 1 FROM payment_transactions p2
			WHERE p2.booking_id = payment_transactions.booking_id AND p2.status = $2
		  )
	`

	result, err := r.db.Exec(ctx, query, providerTxnID, entity.PaymentStatusSuccess)
	if err != nil {
		r.log.Error("Failed to mark payment success",
			zap.Error(err),
			zap.String("provider_txn_id", providerTxnID),
		)
		return false, fmt.Errorf("mark payment %s success: %w", providerTxnID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, providerTxnID, message string) error {
	query := `
		UPDATE payment_transactions
		SET status = $2, failure_message = $3, updated_at = NOW()
		WHERE provider_txn_id = $1 AND status = $4
	`

	_, err := r.db.Exec(ctx, query, providerTxnID, entity.PaymentStatusFailed, message, entity.PaymentStatusPending)
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("provider_txn_id", providerTxnID),
		)
		return fmt.Errorf("mark payment %s failed: %w", providerTxnID, err)
	}

	return nil
}
