package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/repository"
	"github.com/abrezinsky/archeryscore/internal/services"
)

func (h *Handlers) handleListArchers(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	archers, err := h.Archers.ListArchers(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archers)
}

// handleFilterArchers is the raw listing narrowed by registration fields and
// optionally ordered by total score
func (h *Handlers) handleFilterArchers(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	q := r.URL.Query()
	filter := repository.ArcherFilter{
		Club:     q.Get("club"),
		Category: q.Get("bow_category"),
		Gender:   q.Get("gender"),
		AgeGroup: q.Get("age_group"),
		Sort:     q.Get("sort"),
	}
	archers, err := h.Archers.FilterArchers(r.Context(), competitionID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archers)
}

func (h *Handlers) handleGetArcher(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}
	archerID, err := parseIntParam(r, "archerID")
	if err != nil {
		respondError(w, err)
		return
	}

	archer, err := h.Archers.GetArcher(r.Context(), competitionID, archerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archer)
}

func (h *Handlers) handleCreateArcher(w http.ResponseWriter, r *http.Request) {
	var req ArcherCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	competitionID, err := strconv.Atoi(strings.TrimSpace(req.Competition))
	if err != nil {
		respondError(w, BadRequest("competition must be an integer"))
		return
	}

	archer, err := h.Archers.CreateArcher(r.Context(), services.ArcherInput{
		CompetitionID: competitionID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Club:          req.Club,
		Category:      req.Category,
		Gender:        req.Gender,
		AgeGroup:      req.AgeGroup,
		Scores:        req.Scores,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, archer)
}

func (h *Handlers) handleDeleteArcher(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	archer, err := h.Archers.DeleteArcher(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archer)
}

func (h *Handlers) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.CompetitionID <= 0 {
		respondError(w, BadRequest("competition_id is required"))
		return
	}

	archer, err := h.Archers.UpdateScore(r.Context(), services.ScoreUpdate{
		CompetitionID: req.CompetitionID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Club:          req.Club,
		Category:      req.Category,
		Gender:        req.Gender,
		AgeGroup:      req.AgeGroup,
		Scores:        req.Scores,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, archer)
}

func (h *Handlers) handleClearScores(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	n, err := h.Archers.ClearScores(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ClearScoresResponse{
		Message: fmt.Sprintf("Cleared scores for %d archers", n),
		Cleared: n,
	})
}

// handleUploadArchers imports a registration CSV (multipart: file,
// competition_id, language)
func (h *Handlers) handleUploadArchers(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondError(w, err)
		return
	}
	competitionID, err := parseIntForm(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}

	file, upload, err := formFile(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	if upload == nil {
		respondError(w, BadRequest("Missing file upload"))
		return
	}
	defer file.Close()

	lang := models.Language(strings.TrimSpace(r.FormValue("language")))
	result, err := h.Import.ImportCSV(r.Context(), competitionID, upload.Content, lang)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

func (h *Handlers) handleListClubs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	clubs, err := h.Archers.ListClubs(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, clubs)
}
