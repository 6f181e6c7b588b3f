package handlers

import (
	"net/http"
)

// handleIndex serves the live standings page
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.staticFS, "index.html")
}

// handleHealth reports liveness and whether the database answers
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
	}
	respondOK(w, HealthResponse{Status: "ok", Database: "ok"})
}

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SettingsResponse{BaseURL: baseURL})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.BaseURL != nil {
		if err := h.Settings.SetBaseURL(r.Context(), *req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}

	respondSuccess(w, "Settings updated")
}
