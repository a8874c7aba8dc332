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

type CapacityRepository interface {
	FindSlot(ctx context.Context, resourceID uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error)

	// Hold consumes qty units of the slot in a single conditional statement.
	// The slot row is created lazily with the resource's capacity. Returns
	// false when the remaining capacity cannot cover qty, which closes the
	// check-then-insert race between concurrent checkouts.
	Hold(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty, totalCapacity int) (bool, error)

	// Release gives back qty units, floored at zero.
	Release(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty int) error
}

type capacityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCapacityRepository(db database.PgxIface, log *zap.Logger) CapacityRepository {
	return &capacityRepository{
		db:  db,
		log: log.With(zap.String("repository", "capacity")),
	}
}

func (r *capacityRepository) FindSlot(ctx context.Context, resourceID uuid.UUID, date, slotTime string) (*entity.CapacitySlot, error) {
	query := `
		SELECT id, resource_id, slot_date, slot_time, total_capacity, consumed, created_at
		FROM capacity_slots
		WHERE resource_id = $1 AND slot_date = $2 AND slot_time = $3
	`

	var slot entity.CapacitySlot
	err := r.db.QueryRow(ctx, query, resourceID, date, slotTime).Scan(
		&slot.ID,
		&slot.ResourceID,
		&slot.SlotDate,
		&slot.SlotTime,
		&slot.TotalCapacity,
		&slot.Consumed,
		&slot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find capacity slot",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
			zap.String("slot_date", date),
			zap.String("slot_time", slotTime),
		)
		return nil, fmt.Errorf("find capacity slot %s %s %s: %w", resourceID.String(), date, slotTime, err)
	}

	return &slot, nil
}

func (r *capacityRepository) Hold(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty, totalCapacity int) (bool, error) {
	// Single statement: insert the slot if missing, otherwise increment
	// consumed only while it stays within total_capacity. Zero rows affected
	// means the slot is full.
	query := `
		INSERT INTO capacity_slots (id, resource_id, slot_date, slot_time, total_capacity, consumed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (resource_id, slot_date, slot_time)
		DO UPDATE SET consumed = capacity_slots.consumed + EXCLUDED.consumed
		WHERE capacity_slots.consumed + EXCLUDED.consumed <= capacity_slots.total_capacity
	`

	result, err := r.db.Exec(ctx, query, uuid.New(), resourceID, date, slotTime, totalCapacity, qty)
	if err != nil {
		r.log.Error("Failed to hold capacity",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
			zap.String("slot_date", date),
			zap.String("slot_time", slotTime),
			zap.Int("qty", qty),
		)
		return false, fmt.Errorf("hold capacity %s %s %s: %w", resourceID.String(), date, slotTime, err)
	}

	if qty > totalCapacity {
		// The insert branch above cannot enforce this for a fresh slot.
		if result.RowsAffected() > 0 {
			if err := r.Release(ctx, resourceID, date, slotTime, qty); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	return result.RowsAffected() > 0, nil
}

func (r *capacityRepository) Release(ctx context.Context, resourceID uuid.UUID, date, slotTime string, qty int) error {
	query := `
		UPDATE capacity_slots
		SET consumed = GREATEST(consumed - $4, 0)
		WHERE resource_id = $1 AND slot_date = $2 AND slot_time = $3
	`

	_, err := r.db.Exec(ctx, query, resourceID, date, slotTime, qty)
	if err != nil {
		r.log.Error("Failed to release capacity",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
			zap.String("slot_date", date),
			zap.String("slot_time", slotTime),
			zap.Int("qty", qty),
		)
		return fmt.Errorf("release capacity %s %s %s: %w", resourceID.String(), date, slotTime, err)
	}

	return nil
}
