package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/jwt"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/usecase/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService - мок для auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, req *auth.RefreshTokenRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessClaims *jwt.Claims, req *auth.LogoutRequest) error {
	args := m.Called(ctx, accessClaims, req)
	return args.Error(0)
}

// TestAuthHandler_Register тестирует регистрацию пользователя
func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешная регистрация водителя",
			requestBody: auth.RegisterRequest{
				Email:    "driver@example.com",
				Password: "password123",
				FullName: "Test Driver",
				Role:     domain.RoleDriver,
			},
			mockSetup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*auth.RegisterRequest")).
					Return(CreateTestUser(uuid.New(), "driver@example.com", domain.RoleDriver), nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				user := resp["user"].(map[string]interface{})
				assert.Equal(t, "driver@example.com", user["email"])
				assert.Equal(t, "driver", user["role"])
				assert.NotContains(t, user, "password_hash")
			},
		},
		{
			name: "пользователь уже существует",
			requestBody: auth.RegisterRequest{
				Email:    "existing@example.com",
				Password: "password123",
				FullName: "Existing User",
			},
			mockSetup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*auth.RegisterRequest")).
					Return(nil, domain.ErrUserAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Contains(t, resp["error"].(string), "already exists")
			},
		},
		{
			name: "короткий пароль",
			requestBody: auth.RegisterRequest{
				Email:    "new@example.com",
				Password: "short",
				FullName: "New User",
			},
			mockSetup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*auth.RegisterRequest")).
					Return(nil, domain.ErrInvalidPassword)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, domain.ErrInvalidPassword.Error(), resp["error"])
			},
		},
		{
			name:           "невалидный JSON",
			requestBody:    "invalid json",
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "Invalid request body", resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)

			handler := NewAuthHandler(mockService, logger.NewNoop())

			req := newJSONRequest(t, http.MethodPost, "/api/auth/register", tt.requestBody)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, decodeResponse(t, w))
			mockService.AssertExpectations(t)
		})
	}
}

// TestAuthHandler_Login тестирует вход пользователя
func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockAuthService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешный вход",
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("*auth.LoginRequest")).
					Return(&auth.LoginResponse{
						User:         CreateTestUser(uuid.New(), "test@example.com", domain.RolePassenger),
						AccessToken:  "access_token_here",
						RefreshToken: "refresh_token_here",
						ExpiresAt:    time.Now().Add(15 * time.Minute),
					}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "access_token_here", resp["access_token"])
				assert.Equal(t, "refresh_token_here", resp["refresh_token"])
			},
		},
		{
			name: "неверные учетные данные",
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("*auth.LoginRequest")).
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "Invalid credentials", resp["error"])
			},
		},
		{
			name: "неактивный пользователь",
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("*auth.LoginRequest")).
					Return(nil, domain.ErrUserInactive)
			},
			expectedStatus: http.StatusForbidden,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "User account is inactive", resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)

			handler := NewAuthHandler(mockService, logger.NewNoop())

			req := newJSONRequest(t, http.MethodPost, "/api/auth/login", auth.LoginRequest{
				Email:    "test@example.com",
				Password: "password123",
			})
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, decodeResponse(t, w))
			mockService.AssertExpectations(t)
		})
	}
}

// TestAuthHandler_RefreshToken тестирует обновление токена
func TestAuthHandler_RefreshToken(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "невалидный refresh token", err: domain.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "пользователь не найден", err: domain.ErrUserNotFound, expectedStatus: http.StatusUnauthorized},
		{name: "неактивный пользователь", err: domain.ErrUserInactive, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			mockService.On("RefreshToken", mock.Anything, mock.AnythingOfType("*auth.RefreshTokenRequest")).
				Return(nil, tt.err)

			handler := NewAuthHandler(mockService, logger.NewNoop())

			req := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", auth.RefreshTokenRequest{RefreshToken: "token"})
			w := httptest.NewRecorder()

			handler.RefreshToken(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestAuthHandler_Logout тестирует выход пользователя
func TestAuthHandler_Logout(t *testing.T) {
	userID := uuid.New()

	t.Run("успешный выход", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Logout", mock.Anything, mock.MatchedBy(func(c *jwt.Claims) bool {
			return c.UserID == userID
		}), &auth.LogoutRequest{RefreshToken: "valid_refresh_token"}).Return(nil)

		handler := NewAuthHandler(mockService, logger.NewNoop())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/logout", auth.LogoutRequest{RefreshToken: "valid_refresh_token"})
		req = req.WithContext(CreateAuthContext(t, userID, domain.RolePassenger))
		w := httptest.NewRecorder()

		handler.Logout(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logged out successfully", decodeResponse(t, w)["message"])
		mockService.AssertExpectations(t)
	})

	t.Run("без тела", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Logout", mock.Anything, mock.Anything, &auth.LogoutRequest{}).Return(nil)

		handler := NewAuthHandler(mockService, logger.NewNoop())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/logout", nil)
		req = req.WithContext(CreateAuthContext(t, userID, domain.RolePassenger))
		w := httptest.NewRecorder()

		handler.Logout(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

// TestAuthHandler_GetMe тестирует получение текущего пользователя
func TestAuthHandler_GetMe(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockAuthService)
	mockService.On("GetUserByID", mock.Anything, userID).
		Return(CreateTestUser(userID, "me@example.com", domain.RolePassenger), nil)

	handler := NewAuthHandler(mockService, logger.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(CreateAuthContext(t, userID, domain.RolePassenger))
	w := httptest.NewRecorder()

	handler.GetMe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeResponse(t, w)["user"].(map[string]interface{})
	assert.Equal(t, userID.String(), user["id"])
}
