package handlers

import (
	"github.com/abrezinsky/archeryscore/internal/models"
)

// ArcherCreateRequest represents a request to register an archer. The
// competition id arrives as a string from the registration form.
type ArcherCreateRequest struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Club        string          `json:"club"`
	Competition string          `json:"competition"`
	Category    models.Category `json:"category"`
	Gender      models.Gender   `json:"gender"`
	AgeGroup    models.AgeGroup `json:"age_group"`
	models.Scores
}

// ScoreUpdateRequest represents a score card submitted for an archer
// identified by name. Omitted profile fields are left unchanged.
type ScoreUpdateRequest struct {
	CompetitionID int              `json:"competition_id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Club          *string          `json:"club"`
	Category      *models.Category `json:"category"`
	Gender        *models.Gender   `json:"gender"`
	AgeGroup      *models.AgeGroup `json:"age_group"`
	models.Scores
}

// LoginRequest represents an admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// SettingsUpdateRequest represents a settings change
type SettingsUpdateRequest struct {
	BaseURL *string `json:"base_url"`
}
