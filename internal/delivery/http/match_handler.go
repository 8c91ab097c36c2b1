package http

import (
	"errors"
	"net/http"

	"github.com/frontandrew/ridematch/internal/delivery/http/middleware"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/pkg/metrics"
	"github.com/frontandrew/ridematch/internal/usecase/match"
)

// MatchHandler обрабатывает запросы матчей
type MatchHandler struct {
	matchService MatchService
	logger       logger.Logger
}

// NewMatchHandler создает новый handler
func NewMatchHandler(matchService MatchService, logger logger.Logger) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		logger:       logger,
	}
}

// CreateMatch создает матч между заявкой пассажира и доступностью водителя.
// POST /api/matches/create
//
// 401 - нет сессии; 404 - заявка или доступность не найдены;
// 403 - вызывающий не сторона матча; 500 - все остальное.
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		metrics.MatchCreateTotal.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req match.CreateMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.internalError(w, err)
		return
	}

	m, err := h.matchService.CreateMatch(r.Context(), claims.UserID, &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidMatchParties):
		metrics.MatchCreateTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		respondError(w, http.StatusNotFound, "Invalid intent or availability")
		return
	case errors.Is(err, domain.ErrForbidden):
		metrics.MatchCreateTotal.WithLabelValues(metrics.OutcomeForbidden).Inc()
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	default:
		h.internalError(w, err)
		return
	}

	metrics.MatchCreateTotal.WithLabelValues(metrics.OutcomeCreated).Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match": m,
	})
}

// GetMatch возвращает матч по ID
// GET /api/matches/{id}
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "Match not found")
		return
	}

	m, err := h.matchService.GetMatch(r.Context(), claims.UserID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMatchNotFound), errors.Is(err, domain.ErrInvalidMatchParties):
			respondError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Unauthorized")
		default:
			h.logger.Error("Error getting match", map[string]interface{}{
				"match_id": matchID,
				"error":    err,
			})
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match": m,
	})
}

func (h *MatchHandler) internalError(w http.ResponseWriter, err error) {
	metrics.MatchCreateTotal.WithLabelValues(metrics.OutcomeError).Inc()
	h.logger.Error("Error creating match", map[string]interface{}{
		"error": err,
	})
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
