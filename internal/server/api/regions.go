// Package api provides HTTP API handlers for the Shikari screen clicker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/shikari/internal/store"
)

// RegionHandler handles HTTP requests for region preset resources.
type RegionHandler struct {
	store *store.Store
}

// NewRegionHandler creates a new RegionHandler with the given store.
func NewRegionHandler(s *store.Store) *RegionHandler {
	return &RegionHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *RegionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/regions or /api/regions/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/regions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/regions
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/regions/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type regionRequest struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type regionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listRegionsResponse struct {
	Regions []regionResponse `json:"regions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Region to a regionResponse.
func toResponse(region *store.Region) regionResponse {
	return regionResponse{
		ID:        region.ID,
		Name:      region.Name,
		X:         region.X,
		Y:         region.Y,
		Width:     region.Width,
		Height:    region.Height,
		CreatedAt: region.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: region.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validate checks a region request for usable values.
func (req *regionRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if req.Width <= 0 || req.Height <= 0 {
		return "Width and height must be positive"
	}
	if req.X < 0 || req.Y < 0 {
		return "X and y must be non-negative"
	}
	return ""
}

// list handles GET /api/regions and returns all region presets.
func (h *RegionHandler) list(w http.ResponseWriter, r *http.Request) {
	regions, err := h.store.Regions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list regions")
		return
	}

	response := listRegionsResponse{
		Regions: make([]regionResponse, 0, len(regions)),
	}

	for _, region := range regions {
		response.Regions = append(response.Regions, toResponse(region))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/regions/{id} and returns a single region preset.
func (h *RegionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	region, err := h.store.Regions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Region not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get region")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(region))
}

// create handles POST /api/regions and creates a new region preset.
func (h *RegionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	region := &store.Region{
		ID:     uuid.New().String(),
		Name:   req.Name,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
	}

	if err := h.store.Regions().Create(region); err != nil {
		writeError(w, http.StatusConflict, "Failed to create region (name may already exist)")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(region))
}

// update handles PUT /api/regions/{id} and updates an existing region preset.
func (h *RegionHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req regionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	region := &store.Region{
		ID:     id,
		Name:   req.Name,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
	}

	if err := h.store.Regions().Update(region); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Region not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update region")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(region))
}

// delete handles DELETE /api/regions/{id} and removes a region preset.
func (h *RegionHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Regions().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Region not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete region")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
