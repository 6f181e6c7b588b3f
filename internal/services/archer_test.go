package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
	"github.com/abrezinsky/archeryscore/internal/repository/mock"
	"github.com/abrezinsky/archeryscore/internal/services"
	"github.com/abrezinsky/archeryscore/internal/testutil"
)

// fullCard is a valid 28 arrow card worth 20*2 + 18*6 + 16*20 = 468
var fullCard = map[int]int{20: 2, 18: 6, 16: 20}

func newArcherService(t *testing.T, repo services.ArcherServiceRepository) (*services.ArcherService, *mockBroadcaster) {
	t.Helper()
	svc := services.NewArcherService(newTestLogger(), repo, services.DefaultTargetArrows)
	b := &mockBroadcaster{}
	svc.SetBroadcaster(b)
	return svc, b
}

func TestNewArcherService_DefaultTarget(t *testing.T) {
	svc := services.NewArcherService(newTestLogger(), testutil.NewTestRepository(t), 0)
	if svc.TargetArrows() != 28 {
		t.Errorf("expected default target 28, got %d", svc.TargetArrows())
	}
}

func TestArcherService_ValidateScores(t *testing.T) {
	svc, _ := newArcherService(t, testutil.NewTestRepository(t))

	tests := []struct {
		name    string
		scores  models.Scores
		wantErr bool
	}{
		{"empty card", testutil.NoScores(), false},
		{"complete card", testutil.Card(fullCard), false},
		{"all misses", testutil.Card(map[int]int{0: 28}), false},
		{"explicit zeros count as set", testutil.Card(map[int]int{20: 28, 18: 0}), false},
		{"too few arrows", testutil.Card(map[int]int{20: 27}), true},
		{"too many arrows", testutil.Card(map[int]int{20: 20, 18: 9}), true},
		{"zero arrows entered", testutil.Card(map[int]int{20: 0}), true},
		{"negative count", testutil.Card(map[int]int{20: 30, 18: -2}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateScores(tt.scores)
			if tt.wantErr {
				if !apperrors.Is(err, apperrors.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestArcherService_ValidateScores_CustomTarget(t *testing.T) {
	svc := services.NewArcherService(newTestLogger(), testutil.NewTestRepository(t), 24)

	if err := svc.ValidateScores(testutil.Card(map[int]int{20: 24})); err != nil {
		t.Errorf("expected 24 arrows to be accepted, got %v", err)
	}
	if err := svc.ValidateScores(testutil.Card(map[int]int{20: 28})); err == nil {
		t.Error("expected 28 arrows to be rejected for a 24 arrow target")
	}
}

func TestArcherService_CreateArcher(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, b := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")

	a, err := svc.CreateArcher(ctx, services.ArcherInput{
		CompetitionID: cid,
		FirstName:     " Ana ",
		LastName:      "Novak",
		Email:         "ana@example.com",
		Club:          "LK Kamnik",
		Category:      models.CategoryBarebow,
		Gender:        models.GenderFemale,
		AgeGroup:      models.AgeGroupAdults,
	})
	if err != nil {
		t.Fatalf("CreateArcher failed: %v", err)
	}
	if a.ID == 0 || a.FirstName != "Ana" {
		t.Errorf("unexpected archer %+v", a)
	}
	if got := b.calls(); len(got) != 1 || got[0] != cid {
		t.Errorf("expected one broadcast for competition %d, got %v", cid, got)
	}

	stored, err := svc.GetArcher(ctx, cid, a.ID)
	if err != nil {
		t.Fatalf("GetArcher failed: %v", err)
	}
	if stored.Club != "LK Kamnik" {
		t.Errorf("unexpected club %q", stored.Club)
	}
}

func TestArcherService_CreateArcher_Invalid(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, b := newArcherService(t, repo)
	cid := testutil.CreateCompetition(t, repo, "Cup")

	valid := services.ArcherInput{
		CompetitionID: cid, FirstName: "Ana", LastName: "Novak",
		Category: models.CategoryBarebow, Gender: models.GenderFemale, AgeGroup: models.AgeGroupAdults,
	}

	tests := []struct {
		name   string
		mutate func(*services.ArcherInput)
		kind   apperrors.Kind
	}{
		{"missing first name", func(in *services.ArcherInput) { in.FirstName = "" }, apperrors.ErrValidation},
		{"bad category", func(in *services.ArcherInput) { in.Category = "crossbow" }, apperrors.ErrValidation},
		{"bad gender", func(in *services.ArcherInput) { in.Gender = "other" }, apperrors.ErrValidation},
		{"bad age group", func(in *services.ArcherInput) { in.AgeGroup = "U18" }, apperrors.ErrValidation},
		{"bad scores", func(in *services.ArcherInput) { in.Scores = testutil.Card(map[int]int{20: 3}) }, apperrors.ErrValidation},
		{"unknown competition", func(in *services.ArcherInput) { in.CompetitionID = 999 }, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.CreateArcher(context.Background(), in)
			if !apperrors.Is(err, tt.kind) {
				t.Errorf("expected %v error, got %v", tt.kind, err)
			}
		})
	}
	if len(b.calls()) != 0 {
		t.Errorf("expected no broadcasts for rejected archers, got %v", b.calls())
	}
}

func TestArcherService_GetArcher_WrongCompetition(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, _ := newArcherService(t, repo)
	cup := testutil.CreateCompetition(t, repo, "Cup")
	open := testutil.CreateCompetition(t, repo, "Open")
	id := testutil.CreateArcher(t, repo, cup, "Ana", "Novak", "LK", testutil.NoScores())

	if _, err := svc.GetArcher(context.Background(), open, id); err != services.ErrArcherNotFound {
		t.Errorf("expected ErrArcherNotFound, got %v", err)
	}
	if _, err := svc.GetArcher(context.Background(), cup, 999); err != services.ErrArcherNotFound {
		t.Errorf("expected ErrArcherNotFound, got %v", err)
	}
}

func TestArcherService_UpdateScore(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, b := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")
	id := testutil.CreateArcher(t, repo, cid, "Ana", "Novak", "LK Kamnik", testutil.NoScores())

	club := "LK Bled"
	category := models.CategoryLongBow
	a, err := svc.UpdateScore(ctx, services.ScoreUpdate{
		CompetitionID: cid,
		FirstName:     "Ana",
		LastName:      "Novak",
		Club:          &club,
		Category:      &category,
		Scores:        testutil.Card(fullCard),
	})
	if err != nil {
		t.Fatalf("UpdateScore failed: %v", err)
	}
	if a.ID != id || a.Club != "LK Bled" || a.Category != models.CategoryLongBow {
		t.Errorf("unexpected archer %+v", a)
	}
	if a.Gender != models.GenderFemale {
		t.Errorf("expected gender to be kept, got %q", a.Gender)
	}

	stored, _ := svc.GetArcher(ctx, cid, id)
	if stored.Score16 == nil || *stored.Score16 != 20 {
		t.Errorf("expected score16=20 to be stored, got %v", stored.Score16)
	}
	if len(b.calls()) != 1 {
		t.Errorf("expected one broadcast, got %v", b.calls())
	}

	// An empty card clears the score
	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{CompetitionID: cid, FirstName: "Ana", LastName: "Novak"}); err != nil {
		t.Fatalf("clearing UpdateScore failed: %v", err)
	}
	stored, _ = svc.GetArcher(ctx, cid, id)
	if stored.Score16 != nil || stored.Club != "LK Bled" {
		t.Errorf("expected cleared card with kept club, got %+v", stored)
	}
}

func TestArcherService_UpdateScore_ScopedToCompetition(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, _ := newArcherService(t, repo)
	ctx := context.Background()
	cup := testutil.CreateCompetition(t, repo, "Cup")
	open := testutil.CreateCompetition(t, repo, "Open")
	cupID := testutil.CreateArcher(t, repo, cup, "Ana", "Novak", "LK", testutil.NoScores())
	openID := testutil.CreateArcher(t, repo, open, "Ana", "Novak", "LK", testutil.NoScores())

	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{
		CompetitionID: open, FirstName: "Ana", LastName: "Novak", Scores: testutil.Card(fullCard),
	}); err != nil {
		t.Fatalf("UpdateScore failed: %v", err)
	}

	cupArcher, _ := svc.GetArcher(ctx, cup, cupID)
	openArcher, _ := svc.GetArcher(ctx, open, openID)
	if cupArcher.Score20 != nil {
		t.Error("archer of the other competition must not be touched")
	}
	if openArcher.Score20 == nil {
		t.Error("expected archer of the addressed competition to be scored")
	}
}

func TestArcherService_UpdateScore_Errors(t *testing.T) {
	real := testutil.NewTestRepository(t)
	cid := testutil.CreateCompetition(t, real, "Cup")
	testutil.CreateArcher(t, real, cid, "Ana", "Novak", "LK", testutil.NoScores())
	ctx := context.Background()

	svc, _ := newArcherService(t, real)
	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{CompetitionID: cid, FirstName: "Nobody", LastName: "Here"}); err != services.ErrArcherNotFound {
		t.Errorf("expected ErrArcherNotFound, got %v", err)
	}
	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{
		CompetitionID: cid, FirstName: "Ana", LastName: "Novak", Scores: testutil.Card(map[int]int{20: 1}),
	}); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	bad := models.Gender("unknown")
	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{
		CompetitionID: cid, FirstName: "Ana", LastName: "Novak", Gender: &bad,
	}); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for gender, got %v", err)
	}

	repo := mock.NewRepository(real)
	repo.UpdateArcherError = errors.New("database locked")
	svc, b := newArcherService(t, repo)
	if _, err := svc.UpdateScore(ctx, services.ScoreUpdate{CompetitionID: cid, FirstName: "Ana", LastName: "Novak"}); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
	if len(b.calls()) != 0 {
		t.Error("expected no broadcast after a failed update")
	}
}

func TestArcherService_DeleteArcher(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, b := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")
	id := testutil.CreateArcher(t, repo, cid, "Ana", "Novak", "LK", testutil.NoScores())

	a, err := svc.DeleteArcher(ctx, id)
	if err != nil {
		t.Fatalf("DeleteArcher failed: %v", err)
	}
	if a.FirstName != "Ana" {
		t.Errorf("expected deleted archer to be returned, got %+v", a)
	}
	if got := b.calls(); len(got) != 1 || got[0] != cid {
		t.Errorf("unexpected broadcasts %v", got)
	}

	if _, err := svc.DeleteArcher(ctx, id); err != services.ErrArcherNotFound {
		t.Errorf("expected ErrArcherNotFound, got %v", err)
	}
}

func TestArcherService_ClearScores(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, b := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")
	empty := testutil.CreateCompetition(t, repo, "Empty")
	testutil.CreateArcher(t, repo, cid, "Ana", "Novak", "LK", testutil.Card(fullCard))
	testutil.CreateArcher(t, repo, cid, "Bojan", "Kos", "LK", testutil.NoScores())

	n, err := svc.ClearScores(ctx, cid)
	if err != nil {
		t.Fatalf("ClearScores failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 archers cleared, got %d", n)
	}
	p, _ := svc.Progress(ctx, cid)
	if p.Scored != 0 || p.Total != 2 {
		t.Errorf("unexpected progress %+v", p)
	}
	if len(b.calls()) != 1 {
		t.Errorf("expected one broadcast, got %v", b.calls())
	}

	if _, err := svc.ClearScores(ctx, empty); err != services.ErrNoArchers {
		t.Errorf("expected ErrNoArchers, got %v", err)
	}
}

func TestArcherService_FilterArchers(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, _ := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")
	low := testutil.CreateArcher(t, repo, cid, "Ana", "Novak", "LK Kamnik", testutil.Card(map[int]int{0: 28}))
	high := testutil.CreateArcher(t, repo, cid, "Bojana", "Kos", "LK Kamnik", testutil.Card(fullCard))
	testutil.CreateArcher(t, repo, cid, "Cvetka", "Zupan", "LK Bled", testutil.NoScores())

	archers, err := svc.FilterArchers(ctx, cid, repository.ArcherFilter{Club: "LK Kamnik", Sort: "desc"})
	if err != nil {
		t.Fatalf("FilterArchers failed: %v", err)
	}
	if len(archers) != 2 || archers[0].ID != high || archers[1].ID != low {
		t.Errorf("unexpected order %+v", archers)
	}

	for _, f := range []repository.ArcherFilter{
		{Sort: "sideways"},
		{Category: "crossbow"},
		{Gender: "x"},
		{AgeGroup: "U99"},
	} {
		if _, err := svc.FilterArchers(ctx, cid, f); !apperrors.Is(err, apperrors.ErrValidation) {
			t.Errorf("filter %+v: expected validation error, got %v", f, err)
		}
	}
}

func TestArcherService_ListClubsAndProgress(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, _ := newArcherService(t, repo)
	ctx := context.Background()
	cid := testutil.CreateCompetition(t, repo, "Cup")
	testutil.CreateArcher(t, repo, cid, "Ana", "Novak", "LK Kamnik", testutil.Card(fullCard))
	testutil.CreateArcher(t, repo, cid, "Bojan", "Kos", "LK Bled", testutil.NoScores())

	clubs, err := svc.ListClubs(ctx, cid)
	if err != nil {
		t.Fatalf("ListClubs failed: %v", err)
	}
	if len(clubs) != 2 || clubs[0] != "LK Bled" {
		t.Errorf("unexpected clubs %v", clubs)
	}

	p, err := svc.Progress(ctx, cid)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if p.Scored != 1 || p.Total != 2 {
		t.Errorf("unexpected progress %+v", p)
	}
}

func TestArcherService_RepositoryErrors(t *testing.T) {
	real := testutil.NewTestRepository(t)
	cid := testutil.CreateCompetition(t, real, "Cup")
	ctx := context.Background()

	repo := mock.NewRepository(real)
	repo.ListArchersError = errors.New("boom")
	repo.ListClubsError = errors.New("boom")
	repo.CountProgressError = errors.New("boom")
	repo.ClearScoresError = errors.New("boom")
	repo.FilterArchersError = errors.New("boom")
	repo.CreateArcherError = errors.New("boom")
	svc, _ := newArcherService(t, repo)

	if _, err := svc.ListArchers(ctx, cid); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("ListArchers: expected internal error, got %v", err)
	}
	if _, err := svc.ListClubs(ctx, cid); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("ListClubs: expected internal error, got %v", err)
	}
	if _, err := svc.Progress(ctx, cid); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("Progress: expected internal error, got %v", err)
	}
	if _, err := svc.ClearScores(ctx, cid); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("ClearScores: expected internal error, got %v", err)
	}
	if _, err := svc.FilterArchers(ctx, cid, repository.ArcherFilter{}); !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("FilterArchers: expected internal error, got %v", err)
	}
	_, err := svc.CreateArcher(ctx, services.ArcherInput{
		CompetitionID: cid, FirstName: "Ana",
		Category: models.CategoryBarebow, Gender: models.GenderFemale, AgeGroup: models.AgeGroupAdults,
	})
	if !apperrors.Is(err, apperrors.ErrInternal) {
		t.Errorf("CreateArcher: expected internal error, got %v", err)
	}
}
