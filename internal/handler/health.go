package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	AgentAvailable bool      `json:"agent_available"`
}

// HealthHandler handles GET /api/health. agentAvailable reports whether
// the model-backed extractor is wired (an API key was configured); the
// service still works without it using the static extractor.
func HealthHandler(version string, agentAvailable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		if !agentAvailable {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, healthResponse{
			Status:         status,
			Timestamp:      time.Now().UTC(),
			Version:        version,
			AgentAvailable: agentAvailable,
		})
	}
}
