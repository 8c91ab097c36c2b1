package http

import (
	"errors"
	"net/http"

	"github.com/frontandrew/ridematch/internal/delivery/http/middleware"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/usecase/availability"
)

// AvailabilityHandler обрабатывает запросы доступности водителей
type AvailabilityHandler struct {
	availabilityService AvailabilityService
	logger              logger.Logger
}

// NewAvailabilityHandler создает новый handler
func NewAvailabilityHandler(availabilityService AvailabilityService, logger logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		logger:              logger,
	}
}

// CreateAvailability публикует доступность текущего водителя
// POST /api/availability (только driver/admin)
func (h *AvailabilityHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req availability.CreateAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.availabilityService.CreateAvailability(r.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAvailabilityData) || errors.Is(err, domain.ErrInvalidDateRange) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create driver availability", map[string]interface{}{
			"user_id": claims.UserID,
			"error":   err,
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"availability": created,
	})
}

// GetAvailability возвращает доступность по ID
// GET /api/availability/{id}
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "Availability not found")
		return
	}

	found, err := h.availabilityService.GetAvailability(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDriverAvailabilityNotFound) {
			respondError(w, http.StatusNotFound, "Availability not found")
			return
		}
		h.logger.Error("Failed to get driver availability", map[string]interface{}{
			"availability_id": id,
			"error":           err,
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"availability": found,
	})
}
