package repository

import (
	"context"
	"time"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя, заполняя ID и временные метки
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenRepository определяет методы для работы с refresh токенами
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// PassengerIntentRepository определяет методы для работы с заявками пассажиров
type PassengerIntentRepository interface {
	Create(ctx context.Context, intent *domain.PassengerIntent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PassengerIntent, error)

	// GetPassengerID возвращает только владельца заявки
	GetPassengerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// DriverAvailabilityRepository определяет методы для работы с доступностью водителей
type DriverAvailabilityRepository interface {
	Create(ctx context.Context, availability *domain.DriverAvailability) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DriverAvailability, error)

	// GetDriverID возвращает только владельца предложения
	GetDriverID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// IntentMatchRepository определяет методы для работы с матчами
type IntentMatchRepository interface {
	// Create вставляет матч и возвращает строку, которую вернула БД
	// (сгенерированный ID, created_at, updated_at)
	Create(ctx context.Context, match *domain.NewIntentMatch) (*domain.IntentMatch, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.IntentMatch, error)
}

// TokenDenylist хранит отозванные access токены до истечения их срока
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
