package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/google/uuid"
)

// CreateMatchRequest - тело запроса на создание матча.
// Кроме структурного разбора JSON поля не валидируются: отсутствующие
// значения уходят в БД как NULL, pickup_time разбирает сама БД.
// ID, которые не разбираются как UUID, считаются несуществующими.
type CreateMatchRequest struct {
	PassengerIntentID    string   `json:"passenger_intent_id"`
	DriverAvailabilityID string   `json:"driver_availability_id"`
	MatchScore           *float64 `json:"match_score"`
	AgreedPrice          *float64 `json:"agreed_price"`
	PickupTime           *string  `json:"pickup_time"`
	PickupLocation       *string  `json:"pickup_location"`
}

// Service содержит бизнес-логику создания и чтения матчей
type Service struct {
	intentRepo       repository.PassengerIntentRepository
	availabilityRepo repository.DriverAvailabilityRepository
	matchRepo        repository.IntentMatchRepository
	logger           logger.Logger
}

// NewService создает новый экземпляр MatchService
func NewService(
	intentRepo repository.PassengerIntentRepository,
	availabilityRepo repository.DriverAvailabilityRepository,
	matchRepo repository.IntentMatchRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		intentRepo:       intentRepo,
		availabilityRepo: availabilityRepo,
		matchRepo:        matchRepo,
		logger:           logger,
	}
}

// CreateMatch создает матч со статусом pending.
//
// Ошибки:
//   - domain.ErrInvalidMatchParties - заявка или доступность не найдены;
//   - domain.ErrForbidden - вызывающий не пассажир заявки и не водитель доступности;
//   - любая другая - сбой хранилища.
//
// До вставки никаких изменений не делается. Повторный вызов с теми же
// данными создает еще один матч.
func (s *Service) CreateMatch(ctx context.Context, callerID uuid.UUID, req *CreateMatchRequest) (*domain.IntentMatch, error) {
	intentID, err := parseID(req.PassengerIntentID, domain.ErrPassengerIntentNotFound)
	if err != nil {
		return nil, err
	}
	passengerID, err := s.passengerOf(ctx, intentID)
	if err != nil {
		return nil, err
	}

	availabilityID, err := parseID(req.DriverAvailabilityID, domain.ErrDriverAvailabilityNotFound)
	if err != nil {
		return nil, err
	}
	driverID, err := s.driverOf(ctx, availabilityID)
	if err != nil {
		return nil, err
	}

	parties := domain.MatchParties{PassengerID: passengerID, DriverID: driverID}
	if !parties.Includes(callerID) {
		return nil, domain.ErrForbidden
	}

	m, err := s.matchRepo.Create(ctx, &domain.NewIntentMatch{
		PassengerIntentID:    intentID,
		DriverAvailabilityID: availabilityID,
		MatchScore:           req.MatchScore,
		AgreedPrice:          req.AgreedPrice,
		PickupTime:           req.PickupTime,
		PickupLocation:       req.PickupLocation,
		Status:               domain.MatchStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.Info("Intent match created", map[string]interface{}{
		"match_id":               m.ID,
		"passenger_intent_id":    m.PassengerIntentID,
		"driver_availability_id": m.DriverAvailabilityID,
		"caller_id":              callerID,
	})

	return m, nil
}

// GetMatch возвращает матч, если вызывающий - одна из его сторон
func (s *Service) GetMatch(ctx context.Context, callerID, matchID uuid.UUID) (*domain.IntentMatch, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	passengerID, err := s.passengerOf(ctx, m.PassengerIntentID)
	if err != nil {
		return nil, err
	}
	driverID, err := s.driverOf(ctx, m.DriverAvailabilityID)
	if err != nil {
		return nil, err
	}

	parties := domain.MatchParties{PassengerID: passengerID, DriverID: driverID}
	if !parties.Includes(callerID) {
		return nil, domain.ErrForbidden
	}

	return m, nil
}

// parseID разбирает ID из запроса. Строка, которая не является UUID,
// не может ссылаться ни на одну строку и дает тот же результат, что и
// отсутствующая запись.
func parseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrInvalidMatchParties, notFound)
	}
	return id, nil
}

// passengerOf возвращает владельца заявки.
// Отсутствие строки превращается в domain.ErrInvalidMatchParties.
func (s *Service) passengerOf(ctx context.Context, intentID uuid.UUID) (uuid.UUID, error) {
	passengerID, err := s.intentRepo.GetPassengerID(ctx, intentID)
	if err != nil {
		if errors.Is(err, domain.ErrPassengerIntentNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrInvalidMatchParties, err)
		}
		return uuid.Nil, fmt.Errorf("failed to get passenger intent: %w", err)
	}
	return passengerID, nil
}

func (s *Service) driverOf(ctx context.Context, availabilityID uuid.UUID) (uuid.UUID, error) {
	driverID, err := s.availabilityRepo.GetDriverID(ctx, availabilityID)
	if err != nil {
		if errors.Is(err, domain.ErrDriverAvailabilityNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrInvalidMatchParties, err)
		}
		return uuid.Nil, fmt.Errorf("failed to get driver availability: %w", err)
	}
	return driverID, nil
}
