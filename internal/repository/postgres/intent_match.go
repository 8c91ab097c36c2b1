package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const intentMatchesTable = "intent_matches"

var intentMatchColumns = []string{
	"id", "passenger_intent_id", "driver_availability_id", "match_score", "agreed_price",
	"pickup_time", "pickup_location", "status", "created_at", "updated_at",
}

type intentMatchRepository struct {
	db DB
}

// NewIntentMatchRepository создает PostgreSQL репозиторий матчей
func NewIntentMatchRepository(db DB) repository.IntentMatchRepository {
	return &intentMatchRepository{db: db}
}

func (r *intentMatchRepository) Create(ctx context.Context, in *domain.NewIntentMatch) (*domain.IntentMatch, error) {
	query, args, err := psql.Insert(intentMatchesTable).
		Columns("passenger_intent_id", "driver_availability_id", "match_score", "agreed_price", "pickup_time", "pickup_location", "status").
		Values(
			in.PassengerIntentID,
			in.DriverAvailabilityID,
			in.MatchScore,
			in.AgreedPrice,
			sq.Expr("?::timestamptz", in.PickupTime),
			in.PickupLocation,
			in.Status,
		).
		Suffix("RETURNING " + strings.Join(intentMatchColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	m := &domain.IntentMatch{}
	if err := scanIntentMatch(r.db.QueryRow(ctx, query, args...), m); err != nil {
		return nil, fmt.Errorf("failed to insert intent match: %w", err)
	}

	return m, nil
}

func (r *intentMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntentMatch, error) {
	query, args, err := psql.Select(intentMatchColumns...).
		From(intentMatchesTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	m := &domain.IntentMatch{}
	if err := scanIntentMatch(r.db.QueryRow(ctx, query, args...), m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}

	return m, nil
}

// scanIntentMatch читает строку в порядке intentMatchColumns
func scanIntentMatch(row pgx.Row, m *domain.IntentMatch) error {
	return row.Scan(
		&m.ID,
		&m.PassengerIntentID,
		&m.DriverAvailabilityID,
		&m.MatchScore,
		&m.AgreedPrice,
		&m.PickupTime,
		&m.PickupLocation,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}
