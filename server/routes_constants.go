package server

// Route path constants
const (
	// Login flow
	RouteAuthGoogle   = "/auth/google"
	RouteAuthCallback = "/auth/callback"

	// Session
	RouteAuthMe     = "/auth/me"
	RouteAuthLogout = "/auth/logout"

	// CORS preflight for every /auth route
	RouteAuthPreflight = "/auth/{path...}"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
