package services

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/metrics"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// Registration form columns
const (
	ColumnEmail    = "Email"
	ColumnClub     = "Klub"
	ColumnFullName = "Ime in Priimek"
	ColumnClass    = "Slog"
)

// ImportResult reports the outcome of a registration upload
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService loads registration exports into a competition
type ImportService struct {
	log         logger.Logger
	repo        ArcherServiceRepository
	broadcaster Broadcaster
}

// NewImportService creates a new ImportService
func NewImportService(log logger.Logger, repo ArcherServiceRepository) *ImportService {
	return &ImportService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ImportService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SplitFullName splits on the first space; a single word is the first name
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

// ImportCSV reads a registration CSV with a header row and registers every
// archer not already present in the competition under the same first and
// last name. Rows without a name are skipped.
func (s *ImportService) ImportCSV(ctx context.Context, competitionID int, r io.Reader, lang models.Language) (*ImportResult, error) {
	if lang == "" {
		lang = models.LanguageEN
	}
	if !lang.Valid() {
		return nil, errors.Validationf("invalid language %q", lang)
	}

	if _, err := s.repo.GetCompetition(ctx, competitionID); err != nil {
		return nil, translate(err, ErrCompetitionNotFound)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.Validation("uploaded file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid CSV")
	}
	columns := indexColumns(header)
	if _, ok := columns[ColumnFullName]; !ok {
		return nil, errors.Validationf("missing column %q", ColumnFullName)
	}

	result := &ImportResult{}
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid CSV")
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		first, last := SplitFullName(field(ColumnFullName))
		if first == "" {
			result.Skipped++
			continue
		}

		_, err = s.repo.FindArcherByName(ctx, competitionID, first, last)
		if err == nil {
			result.Skipped++
			continue
		}
		if !stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Internal(err)
		}

		category, gender, ageGroup := ParseCategory(field(ColumnClass))
		_, err = s.repo.CreateArcher(ctx, models.Archer{
			FirstName:     first,
			LastName:      last,
			Email:         field(ColumnEmail),
			Club:          field(ColumnClub),
			CompetitionID: competitionID,
			Category:      category,
			Gender:        gender,
			AgeGroup:      ageGroup,
		})
		if err != nil {
			return nil, errors.Internal(err)
		}
		result.Imported++
	}

	metrics.RecordImport(result.Imported, result.Skipped)
	s.log.Info("Archers imported", "competition_id", competitionID, "imported", result.Imported,
		"skipped", result.Skipped, "language", lang)
	if result.Imported > 0 && s.broadcaster != nil {
		s.broadcaster.BroadcastStandingsChanged(competitionID)
	}
	return result, nil
}

// indexColumns maps header names to positions. A UTF-8 byte order mark on the
// first column is ignored.
func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[strings.TrimSpace(h)] = i
	}
	return columns
}
