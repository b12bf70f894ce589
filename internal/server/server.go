// Package server provides the HTTP control surface for the Shikari screen clicker.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/shikari/internal/app"
	"github.com/ayusman/shikari/internal/server/api"
	"github.com/ayusman/shikari/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store *store.Store
	App   *app.App
}

// Server represents the HTTP server for the Shikari application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register region and session API handlers if Store is configured
	if s.config.Store != nil {
		regionHandler := api.NewRegionHandler(s.config.Store)
		s.mux.Handle("/api/regions", regionHandler)
		s.mux.Handle("/api/regions/", regionHandler)

		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionsHandler)
	}

	// Register bot control endpoints if App is configured
	if s.config.App != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/toggle", s.handleToggle)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a := s.config.App
	stats := a.Stats()
	region := a.Region()

	response := map[string]interface{}{
		"enabled": a.IsEnabled(),
		"region": map[string]int{
			"x":      region.X,
			"y":      region.Y,
			"width":  region.Width,
			"height": region.Height,
		},
		"cycles":     stats.Cycles,
		"detections": stats.Detections,
		"clicks":     stats.Clicks,
	}

	writeJSON(w, http.StatusOK, response)
}

// handleToggle handles POST requests to /api/toggle.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a := s.config.App
	a.SetEnabled(!a.IsEnabled())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enabled": a.IsEnabled(),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
