package http

import (
	"errors"
	"net/http"

	"github.com/frontandrew/ridematch/internal/delivery/http/middleware"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/usecase/intent"
)

// IntentHandler обрабатывает запросы заявок пассажиров
type IntentHandler struct {
	intentService IntentService
	logger        logger.Logger
}

// NewIntentHandler создает новый handler
func NewIntentHandler(intentService IntentService, logger logger.Logger) *IntentHandler {
	return &IntentHandler{
		intentService: intentService,
		logger:        logger,
	}
}

// CreateIntent создает заявку от имени текущего пользователя
// POST /api/intents
func (h *IntentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req intent.CreateIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.intentService.CreateIntent(r.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIntentData) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create passenger intent", map[string]interface{}{
			"user_id": claims.UserID,
			"error":   err,
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"intent": created,
	})
}

// GetIntent возвращает заявку по ID
// GET /api/intents/{id}
func (h *IntentHandler) GetIntent(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "Intent not found")
		return
	}

	found, err := h.intentService.GetIntent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPassengerIntentNotFound) {
			respondError(w, http.StatusNotFound, "Intent not found")
			return
		}
		h.logger.Error("Failed to get passenger intent", map[string]interface{}{
			"intent_id": id,
			"error":     err,
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"intent": found,
	})
}
