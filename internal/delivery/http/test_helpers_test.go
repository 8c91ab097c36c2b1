package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/ridematch/internal/delivery/http/middleware"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateTestUser создает тестового пользователя
func CreateTestUser(id uuid.UUID, email string, role domain.UserRole) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    email,
		FullName: "Test User",
		Phone:    "+7 999 999 99 99",
		Role:     role,
		IsActive: true,
	}
}

// CreateAuthContext создает контекст с claims пользователя, как после AuthMiddleware
func CreateAuthContext(t *testing.T, userID uuid.UUID, role domain.UserRole) context.Context {
	t.Helper()
	claims := &jwt.Claims{UserID: userID, Role: role, TokenType: jwt.TokenTypeAccess}
	return middleware.WithUserClaims(context.Background(), claims)
}

// newJSONRequest собирает запрос с JSON телом; строка отправляется как есть
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeResponse разбирает JSON ответ в map
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
