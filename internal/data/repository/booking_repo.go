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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// UpdateStatusIf transitions the booking to the given status only while it
	// is in one of the expected states. Returns false when no row matched,
	// which callers treat as "someone else got there first".
	UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, to entity.BookingStatus, from ...entity.BookingStatus) (bool, error)

	// Cancel is UpdateStatusIf specialised for cancellation: records reason
	// and timestamp in the same statement.
	Cancel(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) (bool, error)

	// ExpireDue flips every overdue held booking to expired and releases the
	// capacity each one occupied, in one transaction. Safe to call from both
	// the availability read path and the periodic reaper.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, category, user_id, status, total_amount, currency,
	resource_id, slot_date, slot_time, party_size, user_voucher_id, discount_amount,
	guest_name, guest_email, guest_phone, metadata, expires_at, cancel_reason, cancelled_at,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.Category,
		&b.UserID,
		&b.Status,
		&b.TotalAmount,
		&b.Currency,
		&b.ResourceID,
		&b.SlotDate,
		&b.SlotTime,
		&b.PartySize,
		&b.UserVoucherID,
		&b.DiscountAmount,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.Metadata,
		&b.ExpiresAt,
		&b.CancelReason,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.Category,
		booking.UserID,
		booking.Status,
		booking.TotalAmount,
		booking.Currency,
		booking.ResourceID,
		booking.SlotDate,
		booking.SlotTime,
		booking.PartySize,
		booking.UserVoucherID,
		booking.DiscountAmount,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.Metadata,
		booking.ExpiresAt,
		booking.CancelReason,
		booking.CancelledAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("category", string(booking.Category)),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, to entity.BookingStatus, from ...entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = ANY($3)`

	fromStates := make([]string, len(from))
	for i, s := range from {
		fromStates[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, bookingID, to, fromStates)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, cancel_reason = $3, cancelled_at = $4, updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('cancelled', 'completed', 'expired')
	`

	result, err := r.db.Exec(ctx, query, bookingID, entity.BookingStatusCancelled, reason, at)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin expire transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND expires_at IS NOT NULL AND expires_at <= $3
		RETURNING id, resource_id, slot_date, slot_time, party_size
	`, entity.BookingStatusExpired, entity.BookingStatusHeld, now)
	if err != nil {
		r.log.Error("Failed to expire due holds", zap.Error(err))
		return 0, fmt.Errorf("expire due holds: %w", err)
	}

	type releasedSlot struct {
		resourceID uuid.UUID
		slotDate   string
		slotTime   string
		partySize  int
	}

	var released []releasedSlot
	var expired int64
	for rows.Next() {
		var id uuid.UUID
		var resourceID *uuid.UUID
		var slotDate, slotTime *string
		var partySize int
		if err := rows.Scan(&id, &resourceID, &slotDate, &slotTime, &partySize); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan expired booking: %w", err)
		}
		expired++
		if resourceID != nil && slotDate != nil && slotTime != nil {
			released = append(released, releasedSlot{*resourceID, *slotDate, *slotTime, partySize})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate expired bookings: %w", err)
	}

	for _, s := range released {
		_, err := tx.Exec(ctx, `
			UPDATE capacity_slots
			SET consumed = GREATEST(consumed - $4, 0)
			WHERE resource_id = $1 AND slot_date = $2 AND slot_time = $3
		`, s.resourceID, s.slotDate, s.slotTime, s.partySize)
		if err != nil {
			r.log.Error("Failed to release capacity for expired hold",
				zap.Error(err),
				zap.String("resource_id", s.resourceID.String()),
			)
			return 0, fmt.Errorf("release capacity for expired hold: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit expire transaction: %w", err)
	}

	if expired > 0 {
		r.log.Info("Expired overdue holds", zap.Int64("count", expired))
	}

	return expired, nil
}
