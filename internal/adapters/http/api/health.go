// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// HealthHandler answers liveness probes from the service metrics registry,
// so /healthz doubles as the load balancer check and the Prometheus scrape
// target.
type HealthHandler struct {
	scrape http.Handler
}

// NewHealthHandler builds the scrape handler once against the process-wide
// registry.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		scrape: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.scrape.ServeHTTP(w, r)
}
