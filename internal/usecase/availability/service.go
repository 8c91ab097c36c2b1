package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/google/uuid"
)

// CreateAvailabilityRequest - запрос на публикацию доступности водителя
type CreateAvailabilityRequest struct {
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	AvailableFrom  time.Time `json:"available_from"`
	AvailableUntil time.Time `json:"available_until"`
	Seats          int       `json:"seats"`
	PricePerSeat   *float64  `json:"price_per_seat,omitempty"`
}

// Service содержит бизнес-логику доступности водителей
type Service struct {
	availabilityRepo repository.DriverAvailabilityRepository
	logger           logger.Logger
}

// NewService создает новый экземпляр AvailabilityService
func NewService(availabilityRepo repository.DriverAvailabilityRepository, logger logger.Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// CreateAvailability публикует доступность от имени водителя
func (s *Service) CreateAvailability(ctx context.Context, driverID uuid.UUID, req *CreateAvailabilityRequest) (*domain.DriverAvailability, error) {
	a := &domain.DriverAvailability{
		DriverID:       driverID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		AvailableFrom:  req.AvailableFrom,
		AvailableUntil: req.AvailableUntil,
		Seats:          req.Seats,
		PricePerSeat:   req.PricePerSeat,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create driver availability: %w", err)
	}

	s.logger.Info("Driver availability created", map[string]interface{}{
		"availability_id": a.ID,
		"driver_id":       driverID,
	})

	return a, nil
}

// GetAvailability возвращает доступность по ID
func (s *Service) GetAvailability(ctx context.Context, id uuid.UUID) (*domain.DriverAvailability, error) {
	return s.availabilityRepo.GetByID(ctx, id)
}
