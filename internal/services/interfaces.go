package services

import (
	"context"
	"io"

	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// Broadcaster defines the interface for pushing live updates to clients
type Broadcaster interface {
	BroadcastStandingsChanged(competitionID int)
}

// CompetitionServicer defines the interface for competition operations
type CompetitionServicer interface {
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	CreateCompetition(ctx context.Context, in CompetitionInput, logo *Upload) (*models.Competition, error)
	UpdateLogo(ctx context.Context, id int, logo *Upload) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id int) error
}

// ArcherServicer defines the interface for archer and score operations
type ArcherServicer interface {
	ListArchers(ctx context.Context, competitionID int) ([]models.Archer, error)
	FilterArchers(ctx context.Context, competitionID int, f repository.ArcherFilter) ([]models.Archer, error)
	GetArcher(ctx context.Context, competitionID, archerID int) (*models.Archer, error)
	CreateArcher(ctx context.Context, in ArcherInput) (*models.Archer, error)
	DeleteArcher(ctx context.Context, id int) (*models.Archer, error)
	UpdateScore(ctx context.Context, update ScoreUpdate) (*models.Archer, error)
	ClearScores(ctx context.Context, competitionID int) (int64, error)
	ListClubs(ctx context.Context, competitionID int) ([]string, error)
	Progress(ctx context.Context, competitionID int) (models.Progress, error)
	SetBroadcaster(b Broadcaster)
}

// ImportServicer defines the interface for bulk registration uploads
type ImportServicer interface {
	ImportCSV(ctx context.Context, competitionID int, r io.Reader, lang models.Language) (*ImportResult, error)
	SetBroadcaster(b Broadcaster)
}

// StandingsServicer defines the interface for ranked standings
type StandingsServicer interface {
	GetStandings(ctx context.Context, competitionID int, q StandingsQuery) (*Standings, error)
	Export(ctx context.Context, competitionID int, q StandingsQuery, w io.Writer) error
	QRCode(ctx context.Context, competitionID int) ([]byte, error)
	StandingsURL(ctx context.Context, competitionID int) (string, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Ensure concrete types implement interfaces
var (
	_ CompetitionServicer = (*CompetitionService)(nil)
	_ ArcherServicer      = (*ArcherService)(nil)
	_ ImportServicer      = (*ImportService)(nil)
	_ StandingsServicer   = (*StandingsService)(nil)
	_ SettingsServicer    = (*SettingsService)(nil)
)
