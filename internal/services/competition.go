package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// CompetitionInput holds the fields of a new competition
type CompetitionInput struct {
	Name     string
	Date     string
	Location string
}

// CompetitionService handles competition-related business logic
type CompetitionService struct {
	log   logger.Logger
	repo  repository.CompetitionRepository
	logos *LogoStore
}

// NewCompetitionService creates a new CompetitionService
func NewCompetitionService(log logger.Logger, repo repository.CompetitionRepository, logos *LogoStore) *CompetitionService {
	return &CompetitionService{log: log, repo: repo, logos: logos}
}

// ListCompetitions returns all competitions
func (s *CompetitionService) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	competitions, err := s.repo.ListCompetitions(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return competitions, nil
}

// GetCompetition returns a competition by ID
func (s *CompetitionService) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	c, err := s.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, translate(err, ErrCompetitionNotFound)
	}
	return c, nil
}

// CreateCompetition stores a competition and its optional logo
func (s *CompetitionService) CreateCompetition(ctx context.Context, in CompetitionInput, logo *Upload) (*models.Competition, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Date = strings.TrimSpace(in.Date)
	in.Location = strings.TrimSpace(in.Location)
	switch {
	case in.Name == "":
		return nil, errors.Validation("name is required")
	case in.Date == "":
		return nil, errors.Validation("date is required")
	case in.Location == "":
		return nil, errors.Validation("location is required")
	}

	id, err := s.repo.CreateCompetition(ctx, in.Name, in.Date, in.Location, nil)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCompetitionExists
		}
		return nil, errors.Internal(err)
	}
	c := &models.Competition{
		ID:       int(id),
		Name:     in.Name,
		Date:     in.Date,
		Location: in.Location,
	}

	if logo != nil {
		logoURL, err := s.logos.Save(in.Name, nil, logo)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to store logo")
		}
		if err := s.repo.SetCompetitionLogo(ctx, c.ID, logoURL); err != nil {
			return nil, errors.Internal(err)
		}
		c.LogoURL = logoURL
	}

	s.log.Info("Competition created", "competition_id", id, "name", in.Name, "logo", c.LogoURL != nil)
	return c, nil
}

// UpdateLogo replaces the logo of a competition. A nil upload removes it.
func (s *CompetitionService) UpdateLogo(ctx context.Context, id int, logo *Upload) (*models.Competition, error) {
	c, err := s.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	logoURL, err := s.logos.Save(c.Name, c.LogoURL, logo)
	if err != nil && logoURL == nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to store logo")
	}
	if err != nil {
		s.log.Warn("Failed to remove replaced logo", "competition_id", id, "error", err)
	}
	if err := s.repo.SetCompetitionLogo(ctx, id, logoURL); err != nil {
		return nil, translate(err, ErrCompetitionNotFound)
	}

	c.LogoURL = logoURL
	s.log.Info("Competition logo updated", "competition_id", id, "removed", logoURL == nil)
	return c, nil
}

// DeleteCompetition deletes a competition, its archers and its logo
func (s *CompetitionService) DeleteCompetition(ctx context.Context, id int) error {
	c, err := s.GetCompetition(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCompetition(ctx, id); err != nil {
		return translate(err, ErrCompetitionNotFound)
	}
	if err := s.logos.Remove(c.LogoURL); err != nil {
		s.log.Warn("Failed to remove logo of deleted competition", "competition_id", id, "error", err)
	}
	s.log.Info("Competition deleted", "competition_id", id, "name", c.Name)
	return nil
}
