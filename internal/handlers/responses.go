package handlers

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ClearScoresResponse reports how many score cards were reset
type ClearScoresResponse struct {
	Message string `json:"message"`
	Cleared int64  `json:"cleared"`
}

// SessionResponse describes the caller's admin session
type SessionResponse struct {
	AuthRequired  bool `json:"auth_required"`
	Authenticated bool `json:"authenticated"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL string `json:"base_url"`
}
