package handlers

import (
	"net/http"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/auth"
)

// handleSession tells the frontend whether it needs to log in
func (h *Handlers) handleSession(w http.ResponseWriter, r *http.Request) {
	respondOK(w, SessionResponse{
		AuthRequired:  h.Auth.Enabled(),
		Authenticated: h.Auth.Authorized(r),
	})
}

// handleLogin accepts the password as JSON or as a form field
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.Enabled() {
		respondSuccess(w, "Authentication is disabled")
		return
	}

	var password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		password = req.Password
	} else {
		password = r.FormValue("password")
	}

	token, ok := h.Auth.Login(password)
	if !ok {
		respondError(w, Unauthorized("Invalid password"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondSuccess(w, "Logged in")
}

// handleLogout clears the session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}

	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}
