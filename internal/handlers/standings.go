package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/abrezinsky/archeryscore/internal/services"
	"github.com/abrezinsky/archeryscore/internal/standings"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// standingsQuery reads the group selection shared by the standings and
// export endpoints
func standingsQuery(r *http.Request) services.StandingsQuery {
	q := r.URL.Query()
	return services.StandingsQuery{
		Club:     q.Get("club"),
		Category: q.Get("category"),
		Gender:   q.Get("gender"),
		AgeGroup: q.Get("age_group"),
		Search:   q.Get("q"),
		Lang:     q.Get("lang"),
	}
}

func (h *Handlers) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Standings.GetStandings(r.Context(), competitionID, standingsQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleExportStandings streams the spreadsheet of the selected standings.
// The workbook is rendered in memory first so that failures still produce a
// JSON error.
func (h *Handlers) handleExportStandings(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Standings.Export(r.Context(), competitionID, standingsQuery(r), &buf); err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+standings.ExportFile+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (h *Handlers) handleStandingsQR(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "competitionID")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Standings.QRCode(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
