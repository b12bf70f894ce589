package api

import (
	"net/http"

	"github.com/ayusman/shikari/internal/store"
)

// SessionsHandler handles HTTP requests for run statistics.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

type sessionResponse struct {
	ID         string `json:"id"`
	RegionName string `json:"region_name"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at,omitempty"`
	Cycles     int64  `json:"cycles"`
	Detections int64  `json:"detections"`
	Clicks     int64  `json:"clicks"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

// ServeHTTP handles GET /api/sessions and returns all recorded sessions.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		resp := sessionResponse{
			ID:         s.ID,
			RegionName: s.RegionName,
			StartedAt:  s.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			Cycles:     s.Cycles,
			Detections: s.Detections,
			Clicks:     s.Clicks,
		}
		if s.EndedAt != nil {
			resp.EndedAt = s.EndedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		response.Sessions = append(response.Sessions, resp)
	}

	writeJSON(w, http.StatusOK, response)
}
