// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// dashboardHandler handles dashboard requests
type dashboardHandler struct{}

// newdashboardHandler creates a new dashboard handler
func newdashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests
// Returns an HTML page with JavaScript that polls /healthz and /stats and
// renders query and dataset metrics
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// Serve embedded dashboard page
	// http.ServeFileFS needs Go 1.22; serve the same file through
	// http.FileServer so the toolchain in use (1.21) can build this.
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/dashboard.html"
	http.FileServer(http.FS(dashboardFS)).ServeHTTP(w, r2)
}
