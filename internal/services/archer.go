package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/metrics"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
	"github.com/abrezinsky/archeryscore/internal/standings"
)

// DefaultTargetArrows is the arrow count of a complete score card
const DefaultTargetArrows = 28

// ArcherServiceRepository defines the repository methods needed by ArcherService
type ArcherServiceRepository interface {
	repository.CompetitionRepository
	repository.ArcherRepository
}

// ArcherInput holds the fields of a new archer
type ArcherInput struct {
	CompetitionID int
	FirstName     string
	LastName      string
	Email         string
	Club          string
	Category      models.Category
	Gender        models.Gender
	AgeGroup      models.AgeGroup
	Scores        models.Scores
}

// ScoreUpdate replaces the score card of the archer with the given name in a
// competition. Nil profile fields keep their stored value. The scores are
// replaced as a whole; all nil clears the card.
type ScoreUpdate struct {
	CompetitionID int
	FirstName     string
	LastName      string
	Club          *string
	Category      *models.Category
	Gender        *models.Gender
	AgeGroup      *models.AgeGroup
	Scores        models.Scores
}

// ArcherService handles archer and score business logic
type ArcherService struct {
	log          logger.Logger
	repo         ArcherServiceRepository
	broadcaster  Broadcaster
	targetArrows int
}

// NewArcherService creates a new ArcherService. targetArrows <= 0 selects
// DefaultTargetArrows.
func NewArcherService(log logger.Logger, repo ArcherServiceRepository, targetArrows int) *ArcherService {
	if targetArrows <= 0 {
		targetArrows = DefaultTargetArrows
	}
	return &ArcherService{log: log, repo: repo, targetArrows: targetArrows}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ArcherService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// TargetArrows returns the arrow count a score card must add up to
func (s *ArcherService) TargetArrows() int {
	return s.targetArrows
}

func (s *ArcherService) notify(competitionID int) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastStandingsChanged(competitionID)
	}
}

// ValidateScores checks a score card. Every count must be non-negative and,
// unless the card is empty, the counts must add up to the target arrow count.
func (s *ArcherService) ValidateScores(scores models.Scores) error {
	sum, set := 0, false
	for i, z := range scores.Zones() {
		if z == nil {
			continue
		}
		if *z < 0 {
			return errors.Validationf("score%d must not be negative", standings.Weight(i))
		}
		sum += *z
		set = true
	}
	if set && sum != s.targetArrows {
		return errors.Validationf("scores must add up to %d arrows, got %d", s.targetArrows, sum)
	}
	return nil
}

func validateProfile(category models.Category, gender models.Gender, ageGroup models.AgeGroup) error {
	if !category.Valid() {
		return errors.Validationf("invalid category %q", category)
	}
	if !gender.Valid() {
		return errors.Validationf("invalid gender %q", gender)
	}
	if !ageGroup.Valid() {
		return errors.Validationf("invalid age group %q", ageGroup)
	}
	return nil
}

func hasScore(scores models.Scores) bool {
	for _, z := range scores.Zones() {
		if z != nil {
			return true
		}
	}
	return false
}

// ListArchers returns the archers of a competition in registration order
func (s *ArcherService) ListArchers(ctx context.Context, competitionID int) ([]models.Archer, error) {
	archers, err := s.repo.ListArchers(ctx, competitionID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return archers, nil
}

// FilterArchers returns the archers matching f, optionally ordered by total
func (s *ArcherService) FilterArchers(ctx context.Context, competitionID int, f repository.ArcherFilter) ([]models.Archer, error) {
	if f.Sort != "" && f.Sort != "asc" && f.Sort != "desc" {
		return nil, errors.Validationf("invalid sort %q: must be asc or desc", f.Sort)
	}
	if f.Category != "" && !models.Category(f.Category).Valid() {
		return nil, errors.Validationf("invalid category %q", f.Category)
	}
	if f.Gender != "" && !models.Gender(f.Gender).Valid() {
		return nil, errors.Validationf("invalid gender %q", f.Gender)
	}
	if f.AgeGroup != "" && !models.AgeGroup(f.AgeGroup).Valid() {
		return nil, errors.Validationf("invalid age group %q", f.AgeGroup)
	}

	archers, err := s.repo.FilterArchers(ctx, competitionID, f)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return archers, nil
}

// GetArcher returns an archer of a competition
func (s *ArcherService) GetArcher(ctx context.Context, competitionID, archerID int) (*models.Archer, error) {
	a, err := s.repo.GetArcher(ctx, archerID)
	if err != nil {
		return nil, translate(err, ErrArcherNotFound)
	}
	if a.CompetitionID != competitionID {
		return nil, ErrArcherNotFound
	}
	return a, nil
}

// CreateArcher registers an archer in an existing competition
func (s *ArcherService) CreateArcher(ctx context.Context, in ArcherInput) (*models.Archer, error) {
	a := models.Archer{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.TrimSpace(in.Email),
		Club:          strings.TrimSpace(in.Club),
		CompetitionID: in.CompetitionID,
		Category:      in.Category,
		Gender:        in.Gender,
		AgeGroup:      in.AgeGroup,
		Scores:        in.Scores,
	}
	if a.FirstName == "" {
		return nil, errors.Validation("first_name is required")
	}
	if err := validateProfile(a.Category, a.Gender, a.AgeGroup); err != nil {
		return nil, err
	}
	if err := s.ValidateScores(a.Scores); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCompetition(ctx, a.CompetitionID); err != nil {
		return nil, translate(err, ErrCompetitionNotFound)
	}

	id, err := s.repo.CreateArcher(ctx, a)
	if err != nil {
		return nil, errors.Internal(err)
	}
	a.ID = int(id)

	s.log.Info("Archer created", "archer_id", a.ID, "competition_id", a.CompetitionID, "name", a.Entry().FullName())
	s.notify(a.CompetitionID)
	return &a, nil
}

// DeleteArcher deletes an archer and returns it as it was
func (s *ArcherService) DeleteArcher(ctx context.Context, id int) (*models.Archer, error) {
	a, err := s.repo.GetArcher(ctx, id)
	if err != nil {
		return nil, translate(err, ErrArcherNotFound)
	}
	if err := s.repo.DeleteArcher(ctx, id); err != nil {
		return nil, translate(err, ErrArcherNotFound)
	}

	s.log.Info("Archer deleted", "archer_id", id, "competition_id", a.CompetitionID)
	s.notify(a.CompetitionID)
	return a, nil
}

// UpdateScore stores a score card for the archer named in update
func (s *ArcherService) UpdateScore(ctx context.Context, update ScoreUpdate) (*models.Archer, error) {
	if err := s.ValidateScores(update.Scores); err != nil {
		return nil, err
	}

	a, err := s.repo.FindArcherByName(ctx, update.CompetitionID, update.FirstName, update.LastName)
	if err != nil {
		return nil, translate(err, ErrArcherNotFound)
	}

	if update.Club != nil {
		a.Club = strings.TrimSpace(*update.Club)
	}
	if update.Category != nil {
		a.Category = *update.Category
	}
	if update.Gender != nil {
		a.Gender = *update.Gender
	}
	if update.AgeGroup != nil {
		a.AgeGroup = *update.AgeGroup
	}
	if err := validateProfile(a.Category, a.Gender, a.AgeGroup); err != nil {
		return nil, err
	}
	a.Scores = update.Scores

	if err := s.repo.UpdateArcher(ctx, *a); err != nil {
		return nil, translate(err, ErrArcherNotFound)
	}

	kind := metrics.ScoreSet
	if !hasScore(a.Scores) {
		kind = metrics.ScoreCleared
	}
	metrics.RecordScoreUpdate(kind)

	s.log.Info("Score updated", "archer_id", a.ID, "competition_id", a.CompetitionID,
		"total", standings.Aggregate(a.Entry()), "kind", kind)
	s.notify(a.CompetitionID)
	return a, nil
}

// ClearScores clears every score card of a competition and returns how many
// archers were reset
func (s *ArcherService) ClearScores(ctx context.Context, competitionID int) (int64, error) {
	n, err := s.repo.ClearScores(ctx, competitionID)
	if err != nil {
		return 0, errors.Internal(err)
	}
	if n == 0 {
		return 0, ErrNoArchers
	}

	metrics.RecordScoreUpdate(metrics.ScoreBulkCleared)
	s.log.Info("Scores cleared", "competition_id", competitionID, "archers", n)
	s.notify(competitionID)
	return n, nil
}

// ListClubs returns the distinct clubs of a competition
func (s *ArcherService) ListClubs(ctx context.Context, competitionID int) ([]string, error) {
	clubs, err := s.repo.ListClubs(ctx, competitionID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return clubs, nil
}

// Progress returns how many archers of a competition have been scored
func (s *ArcherService) Progress(ctx context.Context, competitionID int) (models.Progress, error) {
	p, err := s.repo.CountProgress(ctx, competitionID)
	if err != nil {
		return models.Progress{}, errors.Internal(err)
	}
	return p, nil
}
