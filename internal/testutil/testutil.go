package testutil

import (
	"context"
	"testing"

	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
	"github.com/abrezinsky/archeryscore/internal/standings"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// Int returns a pointer to v, for building score fixtures.
func Int(v int) *int {
	return &v
}

// NoScores returns an empty score card.
func NoScores() models.Scores {
	return models.Scores{}
}

// Card builds a score card from hit counts keyed by zone weight. Weights not
// in byWeight are left unset.
func Card(byWeight map[int]int) models.Scores {
	var zones [standings.ZoneCount]*int
	for i, w := range standings.Weights() {
		if c, ok := byWeight[w]; ok {
			zones[i] = Int(c)
		}
	}
	return models.ScoresFromZones(zones)
}

// CreateCompetition inserts a competition and returns its ID.
func CreateCompetition(t *testing.T, repo repository.CompetitionRepository, name string) int {
	t.Helper()

	id, err := repo.CreateCompetition(context.Background(), name, "2025-05-17", "Kamnik", nil)
	if err != nil {
		t.Fatalf("CreateCompetition failed: %v", err)
	}
	return int(id)
}

// CreateArcher inserts an archer into a competition and returns its ID.
func CreateArcher(t *testing.T, repo repository.ArcherRepository, competitionID int, first, last, club string, scores models.Scores) int {
	t.Helper()

	id, err := repo.CreateArcher(context.Background(), models.Archer{
		FirstName:     first,
		LastName:      last,
		Email:         first + "@example.com",
		Club:          club,
		CompetitionID: competitionID,
		Category:      models.CategoryBarebow,
		Gender:        models.GenderFemale,
		AgeGroup:      models.AgeGroupAdults,
		Scores:        scores,
	})
	if err != nil {
		t.Fatalf("CreateArcher failed: %v", err)
	}
	return int(id)
}
