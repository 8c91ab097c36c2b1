package intent

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/google/uuid"
)

// CreateIntentRequest - запрос на создание заявки пассажира
type CreateIntentRequest struct {
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DesiredPickupTime time.Time `json:"desired_pickup_time"`
	Seats             int       `json:"seats,omitempty"`
	MaxPrice          *float64  `json:"max_price,omitempty"`
}

// Service содержит бизнес-логику заявок пассажиров
type Service struct {
	intentRepo repository.PassengerIntentRepository
	logger     logger.Logger
}

// NewService создает новый экземпляр IntentService
func NewService(intentRepo repository.PassengerIntentRepository, logger logger.Logger) *Service {
	return &Service{
		intentRepo: intentRepo,
		logger:     logger,
	}
}

// CreateIntent создает заявку от имени пассажира
func (s *Service) CreateIntent(ctx context.Context, passengerID uuid.UUID, req *CreateIntentRequest) (*domain.PassengerIntent, error) {
	intent := &domain.PassengerIntent{
		PassengerID:       passengerID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		DesiredPickupTime: req.DesiredPickupTime,
		Seats:             req.Seats,
		MaxPrice:          req.MaxPrice,
	}

	// По умолчанию одно место
	if intent.Seats == 0 {
		intent.Seats = 1
	}

	if err := intent.Validate(); err != nil {
		return nil, err
	}

	if err := s.intentRepo.Create(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to create passenger intent: %w", err)
	}

	s.logger.Info("Passenger intent created", map[string]interface{}{
		"intent_id":    intent.ID,
		"passenger_id": passengerID,
	})

	return intent, nil
}

// GetIntent возвращает заявку по ID
func (s *Service) GetIntent(ctx context.Context, id uuid.UUID) (*domain.PassengerIntent, error) {
	return s.intentRepo.GetByID(ctx, id)
}
