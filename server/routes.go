package server

import "net/http"

func (s *Server) initRoutes() {
	// Browser navigations: the redirect to Google and the return from it
	s.RegisterRouteHandler("GET "+RouteAuthGoogle, ChainMiddleware(s.GoogleLoginHandler(), s.BrowserMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.BrowserMiddleware()...))

	// Called by the front-end with credentials
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAuthPreflight, ChainMiddleware(noContentHandler, s.CorsMiddleware))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.config.IsMetricsEnabled() {
		s.RegisterRouteFunc("GET "+RouteMetrics, ChainMiddleware(s.metrics.Handler().ServeHTTP, s.MetricsAuthMiddleware))
	}

	s.RegisterRouteFunc("/", ChainMiddleware(s.NotFoundHandler(), s.RequestIDMiddleware, s.LoggingMiddleware))
}

// noContentHandler is reached only by preflights, which CorsMiddleware answers.
func noContentHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
