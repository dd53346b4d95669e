package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avisia/analytics-agent/internal/job"
	"github.com/avisia/analytics-agent/internal/pkg/logger"
)

// JobRunner executes one monthly reporting run.
type JobRunner interface {
	Run(ctx context.Context) (*job.Result, error)
}

// Handlers holds the dependencies of the HTTP endpoints.
type Handlers struct {
	runner JobRunner
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(runner JobRunner) *Handlers {
	return &Handlers{runner: runner}
}

// HealthCheck returns service liveness. It does not probe downstream
// dependencies; a healthy process with a broken bridge still answers.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "analytics-agent",
		"version": "1.0.0",
	})
}

// TriggerRun executes the monthly job synchronously and reports the
// outcome. The caller waits for the full sequence; there is no queue.
func (h *Handlers) TriggerRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.runner.Run(r.Context())
	if err != nil {
		logger.Error("triggered run failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
