package handlers

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/abrezinsky/archeryscore/internal/services"
)

// maxUploadSize bounds the in-memory part of multipart uploads
const maxUploadSize = 10 << 20

// parseForm accepts both multipart and urlencoded bodies
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		return BadRequest("Invalid form: " + err.Error())
	}
	return nil
}

// formFile returns the uploaded file in field, or nil when none was sent.
// The caller closes the returned file.
func formFile(r *http.Request, field string) (multipart.File, *services.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, BadRequest("Invalid " + field + " upload")
	}
	return file, &services.Upload{Filename: header.Filename, Content: file}, nil
}

func (h *Handlers) handleListCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.Competitions.ListCompetitions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, competitions)
}

func (h *Handlers) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	competition, err := h.Competitions.GetCompetition(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, competition)
}

func (h *Handlers) handleCreateCompetition(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondError(w, err)
		return
	}

	file, logo, err := formFile(r, "logo")
	if err != nil {
		respondError(w, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	in := services.CompetitionInput{
		Name:     r.FormValue("name"),
		Date:     r.FormValue("date"),
		Location: r.FormValue("location"),
	}
	competition, err := h.Competitions.CreateCompetition(r.Context(), in, logo)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, competition)
}

// handleUpdateLogo replaces the logo; a request without a file removes it
func (h *Handlers) handleUpdateLogo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := parseForm(r); err != nil {
		respondError(w, err)
		return
	}

	file, logo, err := formFile(r, "logo")
	if err != nil {
		respondError(w, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	competition, err := h.Competitions.UpdateLogo(r.Context(), id, logo)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, competition)
}

func (h *Handlers) handleDeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Competitions.DeleteCompetition(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
