package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/metrics"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/standings"
)

// QRCodeSize is the edge length in pixels of generated QR codes
const QRCodeSize = 256

// StandingsQuery selects the group shown in a standings table. Empty fields
// match everything.
type StandingsQuery struct {
	Club     string
	Category string
	Gender   string
	AgeGroup string
	Search   string
	Lang     string
}

// Criteria converts the query for the standings engine
func (q StandingsQuery) Criteria() standings.Criteria {
	return standings.Criteria{
		Club:       q.Club,
		Category:   q.Category,
		Gender:     q.Gender,
		AgeGroup:   q.AgeGroup,
		NameSearch: strings.TrimSpace(q.Search),
	}
}

func (q StandingsQuery) validate() error {
	if q.Category != "" && !models.Category(q.Category).Valid() {
		return errors.Validationf("invalid category %q", q.Category)
	}
	if q.Gender != "" && !models.Gender(q.Gender).Valid() {
		return errors.Validationf("invalid gender %q", q.Gender)
	}
	if q.AgeGroup != "" && !models.AgeGroup(q.AgeGroup).Valid() {
		return errors.Validationf("invalid age group %q", q.AgeGroup)
	}
	if q.Lang != "" && !models.Language(q.Lang).Valid() {
		return errors.Validationf("invalid language %q", q.Lang)
	}
	return nil
}

// Standings is a ranked table of one competition
type Standings struct {
	Competition models.Competition `json:"competition"`
	Title       string             `json:"title"`
	Rows        []standings.Ranked `json:"rows"`
	Progress    models.Progress    `json:"progress"`
}

// StandingsService computes standings, exports and share links
type StandingsService struct {
	log            logger.Logger
	repo           ArcherServiceRepository
	settings       SettingsServicer
	defaultBaseURL string
}

// NewStandingsService creates a new StandingsService. defaultBaseURL is used
// for share links while no base_url setting is stored.
func NewStandingsService(log logger.Logger, repo ArcherServiceRepository, settings SettingsServicer, defaultBaseURL string) *StandingsService {
	return &StandingsService{log: log, repo: repo, settings: settings, defaultBaseURL: defaultBaseURL}
}

// rank loads the competition and runs the standings pipeline over its archers
func (s *StandingsService) rank(ctx context.Context, competitionID int, q StandingsQuery) (*models.Competition, []standings.Ranked, error) {
	if err := q.validate(); err != nil {
		return nil, nil, err
	}
	c, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, nil, translate(err, ErrCompetitionNotFound)
	}
	archers, err := s.repo.ListArchers(ctx, competitionID)
	if err != nil {
		return nil, nil, errors.Internal(err)
	}

	start := time.Now()
	ranked := standings.Standings(models.Entries(archers), q.Criteria())
	metrics.RecordStandingsComputed(time.Since(start))
	return c, ranked, nil
}

func lang(q StandingsQuery) string {
	if q.Lang == "" {
		return standings.LangEN
	}
	return q.Lang
}

// GetStandings returns the ranked table of the archers selected by q
func (s *StandingsService) GetStandings(ctx context.Context, competitionID int, q StandingsQuery) (*Standings, error) {
	c, ranked, err := s.rank(ctx, competitionID, q)
	if err != nil {
		return nil, err
	}
	progress, err := s.repo.CountProgress(ctx, competitionID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &Standings{
		Competition: *c,
		Title:       standings.Title(ranked, lang(q)),
		Rows:        ranked,
		Progress:    progress,
	}, nil
}

// Export writes the spreadsheet of exactly the table GetStandings returns for q
func (s *StandingsService) Export(ctx context.Context, competitionID int, q StandingsQuery, w io.Writer) error {
	_, ranked, err := s.rank(ctx, competitionID, q)
	if err != nil {
		return err
	}
	sheet := standings.ExportRows(ranked)
	sheet.Title = standings.Title(ranked, lang(q))
	if err := standings.WriteXLSX(w, sheet); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write spreadsheet")
	}

	metrics.RecordExport()
	s.log.Debug("Standings exported", "competition_id", competitionID, "rows", len(sheet.Rows))
	return nil
}

// StandingsURL returns the public address of the live standings of a competition
func (s *StandingsService) StandingsURL(ctx context.Context, competitionID int) (string, error) {
	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return "", errors.Internal(err)
	}
	if baseURL == "" {
		baseURL = s.defaultBaseURL
	}
	if baseURL == "" {
		return "", ErrBaseURLNotSet
	}
	return fmt.Sprintf("%s/?competition=%d", strings.TrimSuffix(baseURL, "/"), competitionID), nil
}

// QRCode renders a PNG QR code linking to the live standings of a competition
func (s *StandingsService) QRCode(ctx context.Context, competitionID int) ([]byte, error) {
	if _, err := s.repo.GetCompetition(ctx, competitionID); err != nil {
		return nil, translate(err, ErrCompetitionNotFound)
	}
	url, err := s.StandingsURL(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(url, qrcode.Medium, QRCodeSize)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return png, nil
}
