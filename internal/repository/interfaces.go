package repository

import (
	"context"

	"github.com/abrezinsky/archeryscore/internal/models"
)

// CompetitionRepository defines competition data operations
type CompetitionRepository interface {
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	CreateCompetition(ctx context.Context, name, date, location string, logoURL *string) (int64, error)
	SetCompetitionLogo(ctx context.Context, id int, logoURL *string) error
	DeleteCompetition(ctx context.Context, id int) error
}

// ArcherRepository defines archer data operations
type ArcherRepository interface {
	ListArchers(ctx context.Context, competitionID int) ([]models.Archer, error)
	FilterArchers(ctx context.Context, competitionID int, f ArcherFilter) ([]models.Archer, error)
	GetArcher(ctx context.Context, id int) (*models.Archer, error)
	FindArcherByName(ctx context.Context, competitionID int, firstName, lastName string) (*models.Archer, error)
	CreateArcher(ctx context.Context, a models.Archer) (int64, error)
	UpdateArcher(ctx context.Context, a models.Archer) error
	DeleteArcher(ctx context.Context, id int) error
	ClearScores(ctx context.Context, competitionID int) (int64, error)
	ListClubs(ctx context.Context, competitionID int) ([]string, error)
	CountProgress(ctx context.Context, competitionID int) (models.Progress, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	CompetitionRepository
	ArcherRepository
	SettingsRepository
	Ping(ctx context.Context) error
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
