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

const passengerIntentsTable = "passenger_intents"

var passengerIntentColumns = []string{
	"id", "passenger_id", "origin", "destination", "desired_pickup_time", "seats", "max_price", "created_at",
}

type passengerIntentRepository struct {
	db DB
}

// NewPassengerIntentRepository создает PostgreSQL репозиторий заявок пассажиров
func NewPassengerIntentRepository(db DB) repository.PassengerIntentRepository {
	return &passengerIntentRepository{db: db}
}

func (r *passengerIntentRepository) Create(ctx context.Context, intent *domain.PassengerIntent) error {
	query, args, err := psql.Insert(passengerIntentsTable).
		Columns("passenger_id", "origin", "destination", "desired_pickup_time", "seats", "max_price").
		Values(intent.PassengerID, intent.Origin, intent.Destination, intent.DesiredPickupTime, intent.Seats, intent.MaxPrice).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&intent.ID, &intent.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert passenger intent: %w", err)
	}

	return nil
}

func (r *passengerIntentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PassengerIntent, error) {
	query, args, err := psql.Select(passengerIntentColumns...).
		From(passengerIntentsTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	intent := &domain.PassengerIntent{}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&intent.ID,
		&intent.PassengerID,
		&intent.Origin,
		&intent.Destination,
		&intent.DesiredPickupTime,
		&intent.Seats,
		&intent.MaxPrice,
		&intent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassengerIntentNotFound
		}
		return nil, err
	}

	return intent, nil
}

func (r *passengerIntentRepository) GetPassengerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query, args, err := psql.Select("passenger_id").
		From(passengerIntentsTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var passengerID uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&passengerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrPassengerIntentNotFound
		}
		return uuid.Nil, err
	}

	return passengerID, nil
}
