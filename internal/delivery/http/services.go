package http

import (
	"context"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/jwt"
	"github.com/frontandrew/ridematch/internal/usecase/auth"
	"github.com/frontandrew/ridematch/internal/usecase/availability"
	"github.com/frontandrew/ridematch/internal/usecase/intent"
	"github.com/frontandrew/ridematch/internal/usecase/match"
	"github.com/google/uuid"
)

// Интерфейсы сервисов, от которых зависят handlers

type MatchService interface {
	CreateMatch(ctx context.Context, callerID uuid.UUID, req *match.CreateMatchRequest) (*domain.IntentMatch, error)
	GetMatch(ctx context.Context, callerID, matchID uuid.UUID) (*domain.IntentMatch, error)
}

type IntentService interface {
	CreateIntent(ctx context.Context, passengerID uuid.UUID, req *intent.CreateIntentRequest) (*domain.PassengerIntent, error)
	GetIntent(ctx context.Context, id uuid.UUID) (*domain.PassengerIntent, error)
}

type AvailabilityService interface {
	CreateAvailability(ctx context.Context, driverID uuid.UUID, req *availability.CreateAvailabilityRequest) (*domain.DriverAvailability, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*domain.DriverAvailability, error)
}

type AuthService interface {
	Register(ctx context.Context, req *auth.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error)
	RefreshToken(ctx context.Context, req *auth.RefreshTokenRequest) (*auth.LoginResponse, error)
	Logout(ctx context.Context, accessClaims *jwt.Claims, req *auth.LogoutRequest) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
