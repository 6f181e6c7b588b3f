package mock

import (
	"context"

	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.UpdateArcherError = errors.New("database error")
//	svc := services.NewArcherService(log, mockRepo, 28)
//	_, err := svc.UpdateScore(ctx, update)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Competition Errors =====
	ListCompetitionsError   error
	GetCompetitionError     error
	CreateCompetitionError  error
	SetCompetitionLogoError error
	DeleteCompetitionError  error

	// ===== Archer Errors =====
	ListArchersError      error
	FilterArchersError    error
	GetArcherError        error
	FindArcherByNameError error
	CreateArcherError     error
	UpdateArcherError     error
	DeleteArcherError     error
	ClearScoresError      error
	ListClubsError        error
	CountProgressError    error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error

	PingError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Competition Methods =====

func (m *Repository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	if m.ListCompetitionsError != nil {
		return nil, m.ListCompetitionsError
	}
	return m.FullRepository.ListCompetitions(ctx)
}

func (m *Repository) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	if m.GetCompetitionError != nil {
		return nil, m.GetCompetitionError
	}
	return m.FullRepository.GetCompetition(ctx, id)
}

func (m *Repository) CreateCompetition(ctx context.Context, name, date, location string, logoURL *string) (int64, error) {
	if m.CreateCompetitionError != nil {
		return 0, m.CreateCompetitionError
	}
	return m.FullRepository.CreateCompetition(ctx, name, date, location, logoURL)
}

func (m *Repository) SetCompetitionLogo(ctx context.Context, id int, logoURL *string) error {
	if m.SetCompetitionLogoError != nil {
		return m.SetCompetitionLogoError
	}
	return m.FullRepository.SetCompetitionLogo(ctx, id, logoURL)
}

func (m *Repository) DeleteCompetition(ctx context.Context, id int) error {
	if m.DeleteCompetitionError != nil {
		return m.DeleteCompetitionError
	}
	return m.FullRepository.DeleteCompetition(ctx, id)
}

// ===== Archer Methods =====

func (m *Repository) ListArchers(ctx context.Context, competitionID int) ([]models.Archer, error) {
	if m.ListArchersError != nil {
		return nil, m.ListArchersError
	}
	return m.FullRepository.ListArchers(ctx, competitionID)
}

func (m *Repository) FilterArchers(ctx context.Context, competitionID int, f repository.ArcherFilter) ([]models.Archer, error) {
	if m.FilterArchersError != nil {
		return nil, m.FilterArchersError
	}
	return m.FullRepository.FilterArchers(ctx, competitionID, f)
}

func (m *Repository) GetArcher(ctx context.Context, id int) (*models.Archer, error) {
	if m.GetArcherError != nil {
		return nil, m.GetArcherError
	}
	return m.FullRepository.GetArcher(ctx, id)
}

func (m *Repository) FindArcherByName(ctx context.Context, competitionID int, firstName, lastName string) (*models.Archer, error) {
	if m.FindArcherByNameError != nil {
		return nil, m.FindArcherByNameError
	}
	return m.FullRepository.FindArcherByName(ctx, competitionID, firstName, lastName)
}

func (m *Repository) CreateArcher(ctx context.Context, a models.Archer) (int64, error) {
	if m.CreateArcherError != nil {
		return 0, m.CreateArcherError
	}
	return m.FullRepository.CreateArcher(ctx, a)
}

func (m *Repository) UpdateArcher(ctx context.Context, a models.Archer) error {
	if m.UpdateArcherError != nil {
		return m.UpdateArcherError
	}
	return m.FullRepository.UpdateArcher(ctx, a)
}

func (m *Repository) DeleteArcher(ctx context.Context, id int) error {
	if m.DeleteArcherError != nil {
		return m.DeleteArcherError
	}
	return m.FullRepository.DeleteArcher(ctx, id)
}

func (m *Repository) ClearScores(ctx context.Context, competitionID int) (int64, error) {
	if m.ClearScoresError != nil {
		return 0, m.ClearScoresError
	}
	return m.FullRepository.ClearScores(ctx, competitionID)
}

func (m *Repository) ListClubs(ctx context.Context, competitionID int) ([]string, error) {
	if m.ListClubsError != nil {
		return nil, m.ListClubsError
	}
	return m.FullRepository.ListClubs(ctx, competitionID)
}

func (m *Repository) CountProgress(ctx context.Context, competitionID int) (models.Progress, error) {
	if m.CountProgressError != nil {
		return models.Progress{}, m.CountProgressError
	}
	return m.FullRepository.CountProgress(ctx, competitionID)
}

// ===== Settings Methods =====

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) Ping(ctx context.Context) error {
	if m.PingError != nil {
		return m.PingError
	}
	return m.FullRepository.Ping(ctx)
}
