package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthHandler answers liveness probes. It never touches the contract
// directories, so it stays green even when provisioning is broken.
type HealthHandler struct {
	service string
	version string
}

func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString("request_id"),
	})
}
