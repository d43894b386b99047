package handlers

import (
	"net/http"

	"github.com/stock-analyzer/backend/internal/api/response"
)

// SystemHandler handles system-level HTTP requests
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports process liveness. There is no database or other local
// state to probe; provider reachability is intentionally not checked so
// a provider outage does not mark this service unhealthy.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HealthResponse{Status: "healthy"})
}
