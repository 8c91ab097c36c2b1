package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/frontandrew/ridematch/internal/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger - зависимость, доступность которой проверяет readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler отвечает на liveness и readiness проверки
type HealthHandler struct {
	dependencies map[string]Pinger
	logger       logger.Logger
}

// NewHealthHandler создает handler проверок; dependencies - имя -> зависимость
func NewHealthHandler(dependencies map[string]Pinger, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		dependencies: dependencies,
		logger:       logger,
	}
}

// Live - процесс жив
// GET /health
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready пингует все зависимости. 503, если хотя бы одна недоступна.
// GET /health/ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.dependencies[name].Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", map[string]interface{}{
				"dependency": name,
				"error":      err,
			})
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "unavailable"
	}

	respondJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}
