package match

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

type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) Create(ctx context.Context, a *domain.DriverAvailability) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAvailabilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DriverAvailability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverAvailability), args.Error(1)
}

func (m *MockAvailabilityRepo) GetDriverID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockMatchRepo struct {
	mock.Mock
}

func (m *MockMatchRepo) Create(ctx context.Context, match *domain.NewIntentMatch) (*domain.IntentMatch, error) {
	args := m.Called(ctx, match)
	if fn, ok := args.Get(0).(func(context.Context, *domain.NewIntentMatch) (*domain.IntentMatch, error)); ok {
		return fn(ctx, match)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntentMatch), args.Error(1)
}

func (m *MockMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntentMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntentMatch), args.Error(1)
}

// fixture - пассажир U1 владеет заявкой I1, водитель U2 владеет доступностью A1
type fixture struct {
	passengerID    uuid.UUID
	driverID       uuid.UUID
	intentID       uuid.UUID
	availabilityID uuid.UUID

	intents        *MockIntentRepo
	availabilities *MockAvailabilityRepo
	matches        *MockMatchRepo
	service        *Service
}

func newFixture() *fixture {
	f := &fixture{
		passengerID:    uuid.New(),
		driverID:       uuid.New(),
		intentID:       uuid.New(),
		availabilityID: uuid.New(),
		intents:        new(MockIntentRepo),
		availabilities: new(MockAvailabilityRepo),
		matches:        new(MockMatchRepo),
	}
	f.service = NewService(f.intents, f.availabilities, f.matches, logger.NewNoop())
	return f
}

func (f *fixture) ownersExist() {
	f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(f.passengerID, nil)
	f.availabilities.On("GetDriverID", mock.Anything, f.availabilityID).Return(f.driverID, nil)
}

// insertAssignsID имитирует БД: каждая вставка получает новый id и временные метки
func (f *fixture) insertAssignsID() {
	f.matches.On("Create", mock.Anything, mock.AnythingOfType("*domain.NewIntentMatch")).
		Return(func(ctx context.Context, in *domain.NewIntentMatch) (*domain.IntentMatch, error) {
			now := time.Now()
			return &domain.IntentMatch{
				ID:                   uuid.New(),
				PassengerIntentID:    in.PassengerIntentID,
				DriverAvailabilityID: in.DriverAvailabilityID,
				MatchScore:           in.MatchScore,
				AgreedPrice:          in.AgreedPrice,
				PickupLocation:       in.PickupLocation,
				Status:               in.Status,
				CreatedAt:            now,
				UpdatedAt:            now,
			}, nil
		})
}

func (f *fixture) request() *CreateMatchRequest {
	score, price := 0.9, 12.5
	pickup := "2024-01-01T08:00:00Z"
	location := "Main St"
	return &CreateMatchRequest{
		PassengerIntentID:    f.intentID.String(),
		DriverAvailabilityID: f.availabilityID.String(),
		MatchScore:           &score,
		AgreedPrice:          &price,
		PickupTime:           &pickup,
		PickupLocation:       &location,
	}
}

func TestService_CreateMatch_ByPassenger(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	f.insertAssignsID()

	m, err := f.service.CreateMatch(context.Background(), f.passengerID, f.request())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, domain.MatchStatusPending, m.Status)
	assert.Equal(t, f.intentID, m.PassengerIntentID)
	assert.Equal(t, f.availabilityID, m.DriverAvailabilityID)
	assert.Equal(t, 0.9, *m.MatchScore)
	assert.Equal(t, 12.5, *m.AgreedPrice)
	assert.Equal(t, "Main St", *m.PickupLocation)
	f.matches.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_CreateMatch_ByDriver(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	f.insertAssignsID()

	m, err := f.service.CreateMatch(context.Background(), f.driverID, f.request())

	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusPending, m.Status)
}

func TestService_CreateMatch_MissingFieldsPassedThrough(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	f.insertAssignsID()

	req := &CreateMatchRequest{PassengerIntentID: f.intentID.String(), DriverAvailabilityID: f.availabilityID.String()}
	m, err := f.service.CreateMatch(context.Background(), f.passengerID, req)

	require.NoError(t, err)
	assert.Nil(t, m.MatchScore)
	assert.Nil(t, m.AgreedPrice)
	assert.Nil(t, m.PickupTime)
	assert.Nil(t, m.PickupLocation)
}

func TestService_CreateMatch_PickupTimeReachesStore(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	f.insertAssignsID()

	req := f.request()
	pickup := "2024-01-01 08:00:00"
	req.PickupTime = &pickup

	_, err := f.service.CreateMatch(context.Background(), f.passengerID, req)

	require.NoError(t, err)
	f.matches.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(in *domain.NewIntentMatch) bool {
		return in.PickupTime != nil && *in.PickupTime == pickup
	}))
}

func TestService_CreateMatch_MalformedIDs(t *testing.T) {
	tests := []struct {
		name           string
		intentID       func(f *fixture) string
		availabilityID func(f *fixture) string
		lookupsIntent  bool
		wantUnderlying error
	}{
		{
			name:           "непрозрачный id заявки",
			intentID:       func(f *fixture) string { return "I1" },
			availabilityID: func(f *fixture) string { return f.availabilityID.String() },
			wantUnderlying: domain.ErrPassengerIntentNotFound,
		},
		{
			name:           "пустой id заявки",
			intentID:       func(f *fixture) string { return "" },
			availabilityID: func(f *fixture) string { return f.availabilityID.String() },
			wantUnderlying: domain.ErrPassengerIntentNotFound,
		},
		{
			name:           "непрозрачный id доступности",
			intentID:       func(f *fixture) string { return f.intentID.String() },
			availabilityID: func(f *fixture) string { return "A1" },
			lookupsIntent:  true,
			wantUnderlying: domain.ErrDriverAvailabilityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.lookupsIntent {
				f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(f.passengerID, nil)
			}

			req := f.request()
			req.PassengerIntentID = tt.intentID(f)
			req.DriverAvailabilityID = tt.availabilityID(f)

			m, err := f.service.CreateMatch(context.Background(), f.passengerID, req)

			assert.Nil(t, m)
			assert.ErrorIs(t, err, domain.ErrInvalidMatchParties)
			assert.ErrorIs(t, err, tt.wantUnderlying)
			f.intents.AssertExpectations(t)
			f.availabilities.AssertNotCalled(t, "GetDriverID", mock.Anything, mock.Anything)
			f.matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateMatch_Failures(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name    string
		caller  func(f *fixture) uuid.UUID
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:   "заявка не найдена",
			caller: func(f *fixture) uuid.UUID { return f.passengerID },
			setup: func(f *fixture) {
				f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(uuid.Nil, domain.ErrPassengerIntentNotFound)
			},
			wantErr: domain.ErrInvalidMatchParties,
		},
		{
			name:   "доступность не найдена",
			caller: func(f *fixture) uuid.UUID { return f.passengerID },
			setup: func(f *fixture) {
				f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(f.passengerID, nil)
				f.availabilities.On("GetDriverID", mock.Anything, f.availabilityID).Return(uuid.Nil, domain.ErrDriverAvailabilityNotFound)
			},
			wantErr: domain.ErrInvalidMatchParties,
		},
		{
			name:    "посторонний пользователь",
			caller:  func(f *fixture) uuid.UUID { return uuid.New() },
			setup:   func(f *fixture) { f.ownersExist() },
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "сбой БД при поиске заявки",
			caller: func(f *fixture) uuid.UUID { return f.passengerID },
			setup: func(f *fixture) {
				f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(uuid.Nil, dbErr)
			},
			wantErr: dbErr,
		},
		{
			name:   "сбой БД при вставке",
			caller: func(f *fixture) uuid.UUID { return f.driverID },
			setup: func(f *fixture) {
				f.ownersExist()
				f.matches.On("Create", mock.Anything, mock.Anything).Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			m, err := f.service.CreateMatch(context.Background(), tt.caller(f), f.request())

			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
			if !errors.Is(tt.wantErr, dbErr) {
				f.matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_CreateMatch_InfraErrorIsNotNotFound(t *testing.T) {
	f := newFixture()
	f.intents.On("GetPassengerID", mock.Anything, f.intentID).Return(f.passengerID, nil)
	f.availabilities.On("GetDriverID", mock.Anything, f.availabilityID).Return(uuid.Nil, errors.New("timeout"))

	_, err := f.service.CreateMatch(context.Background(), f.passengerID, f.request())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidMatchParties)
	f.matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateMatch_NotIdempotent(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	f.insertAssignsID()

	first, err := f.service.CreateMatch(context.Background(), f.passengerID, f.request())
	require.NoError(t, err)
	second, err := f.service.CreateMatch(context.Background(), f.passengerID, f.request())
	require.NoError(t, err)

	f.matches.AssertNumberOfCalls(t, "Create", 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.PassengerIntentID, second.PassengerIntentID)
	assert.Equal(t, first.DriverAvailabilityID, second.DriverAvailabilityID)
}

func TestService_GetMatch(t *testing.T) {
	f := newFixture()
	f.ownersExist()
	matchID := uuid.New()
	stored := &domain.IntentMatch{
		ID:                   matchID,
		PassengerIntentID:    f.intentID,
		DriverAvailabilityID: f.availabilityID,
		Status:               domain.MatchStatusPending,
	}
	f.matches.On("GetByID", mock.Anything, matchID).Return(stored, nil)

	m, err := f.service.GetMatch(context.Background(), f.driverID, matchID)
	require.NoError(t, err)
	assert.Equal(t, matchID, m.ID)

	_, err = f.service.GetMatch(context.Background(), uuid.New(), matchID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_GetMatch_NotFound(t *testing.T) {
	f := newFixture()
	matchID := uuid.New()
	f.matches.On("GetByID", mock.Anything, matchID).Return(nil, domain.ErrMatchNotFound)

	_, err := f.service.GetMatch(context.Background(), f.passengerID, matchID)

	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}
