// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatsProvider exposes the marketplace counters reported on /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler renders a point-in-time operational snapshot: shift, profile
// and assignment totals plus notification queue depth.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler backed by the given provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
