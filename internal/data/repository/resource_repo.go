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

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	FindBlackout(ctx context.Context, resourceID uuid.UUID, date string) (*entity.ResourceBlackout, error)
}

type resourceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResourceRepository(db database.PgxIface, log *zap.Logger) ResourceRepository {
	return &resourceRepository{
		db:  db,
		log: log.With(zap.String("repository", "resource")),
	}
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	query := `
		SELECT id, category, name, unit_price, currency, default_capacity, open_time, close_time, active, created_at, updated_at
		FROM resources
		WHERE id = $1
	`

	var res entity.Resource
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.Category,
		&res.Name,
		&res.UnitPrice,
		&res.Currency,
		&res.DefaultCapacity,
		&res.OpenTime,
		&res.CloseTime,
		&res.Active,
		&res.CreatedAt,
		&res.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource by ID",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return nil, fmt.Errorf("find resource by ID %s: %w", id.String(), err)
	}

	return &res, nil
}

func (r *resourceRepository) FindBlackout(ctx context.Context, resourceID uuid.UUID, date string) (*entity.ResourceBlackout, error) {
	query := `
		SELECT id, resource_id, start_date, end_date, reason, created_at
		FROM resource_blackouts
		WHERE resource_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1
	`

	var blackout entity.ResourceBlackout
	err := r.db.QueryRow(ctx, query, resourceID, date).Scan(
		&blackout.ID,
		&blackout.ResourceID,
		&blackout.StartDate,
		&blackout.EndDate,
		&blackout.Reason,
		&blackout.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource blackout",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find blackout for resource %s on %s: %w", resourceID.String(), date, err)
	}

	return &blackout, nil
}
