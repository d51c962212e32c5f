package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Aggregates
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/networth", s.handleNetWorth)
	mux.HandleFunc("/api/cashflow", s.handleCashFlow)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/summary", s.handleSummary)

	// Refresh
	mux.HandleFunc("/api/refresh", s.handleRefresh)
	mux.HandleFunc("/api/ws", s.handleWS)

	// Dev only
	mux.HandleFunc("/api/shutdown", s.handleShutdown)
}
