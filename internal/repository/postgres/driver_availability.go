package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const driverAvailabilityTable = "driver_availability"

var driverAvailabilityColumns = []string{
	"id", "driver_id", "origin", "destination", "available_from", "available_until", "seats", "price_per_seat", "created_at",
}

type driverAvailabilityRepository struct {
	db DB
}

// NewDriverAvailabilityRepository создает PostgreSQL репозиторий доступности водителей
func NewDriverAvailabilityRepository(db DB) repository.DriverAvailabilityRepository {
	return &driverAvailabilityRepository{db: db}
}

func (r *driverAvailabilityRepository) Create(ctx context.Context, a *domain.DriverAvailability) error {
	query, args, err := psql.Insert(driverAvailabilityTable).
		Columns("driver_id", "origin", "destination", "available_from", "available_until", "seats", "price_per_seat").
		Values(a.DriverID, a.Origin, a.Destination, a.AvailableFrom, a.AvailableUntil, a.Seats, a.PricePerSeat).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert driver availability: %w", err)
	}

	return nil
}

func (r *driverAvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DriverAvailability, error) {
	query, args, err := psql.Select(driverAvailabilityColumns...).
		From(driverAvailabilityTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	a := &domain.DriverAvailability{}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID,
		&a.DriverID,
		&a.Origin,
		&a.Destination,
		&a.AvailableFrom,
		&a.AvailableUntil,
		&a.Seats,
		&a.PricePerSeat,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverAvailabilityNotFound
		}
		return nil, err
	}

	return a, nil
}

func (r *driverAvailabilityRepository) GetDriverID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query, args, err := psql.Select("driver_id").
		From(driverAvailabilityTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var driverID uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&driverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrDriverAvailabilityNotFound
		}
		return uuid.Nil, err
	}

	return driverID, nil
}
