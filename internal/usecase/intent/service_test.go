package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIntentRepo struct {
	mock.Mock
}

func (m *MockIntentRepo) Create(ctx context.Context, intent *domain.PassengerIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *MockIntentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PassengerIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PassengerIntent), args.Error(1)
}

func (m *MockIntentRepo) GetPassengerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func TestService_CreateIntent(t *testing.T) {
	passengerID := uuid.New()
	repo := new(MockIntentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.PassengerIntent) bool {
		return i.PassengerID == passengerID && i.Seats == 1 && i.Origin == "Airport"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.PassengerIntent).ID = uuid.New()
	}).Return(nil)

	service := NewService(repo, logger.NewNoop())

	created, err := service.CreateIntent(context.Background(), passengerID, &CreateIntentRequest{
		Origin:            " Airport ",
		Destination:       "Downtown",
		DesiredPickupTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, created.Seats)
	repo.AssertExpectations(t)
}

func TestService_CreateIntent_Invalid(t *testing.T) {
	repo := new(MockIntentRepo)
	service := NewService(repo, logger.NewNoop())

	_, err := service.CreateIntent(context.Background(), uuid.New(), &CreateIntentRequest{Origin: "Airport"})

	assert.ErrorIs(t, err, domain.ErrInvalidIntentData)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateIntent_StoreError(t *testing.T) {
	repo := new(MockIntentRepo)
	dbErr := errors.New("connection refused")
	repo.On("Create", mock.Anything, mock.Anything).Return(dbErr)
	service := NewService(repo, logger.NewNoop())

	_, err := service.CreateIntent(context.Background(), uuid.New(), &CreateIntentRequest{Origin: "A", Destination: "B"})

	assert.ErrorIs(t, err, dbErr)
}
