package roundhandlers

import (
	"fmt"
	"net/http"

	roundexport "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/export"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleListRounds serves GET /api/players/{playerID}/rounds.
func (h *RoundHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.service.ListSavedRounds(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

// HandlePlayerStats serves GET /api/players/{playerID}/stats.
func (h *RoundHandlers) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlayerStats(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleGetSavedRound serves GET /api/history/{roundID}.
func (h *RoundHandlers) HandleGetSavedRound(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	round, err := h.service.GetSavedRound(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// HandleDeleteSavedRound serves DELETE /api/history/{roundID}.
func (h *RoundHandlers) HandleDeleteSavedRound(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	if err := h.service.DeleteSavedRound(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleScorecardXLSX serves GET /api/history/{roundID}/scorecard.xlsx.
func (h *RoundHandlers) HandleScorecardXLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleScorecardXLSX")
	defer span.End()
	span.SetAttributes(attribute.String("round_id", id.String()))

	round, err := h.service.GetSavedRound(ctx, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	data, err := roundexport.ScorecardXLSX(*round)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scorecard export failed")
		h.logger.ErrorContext(ctx, "Scorecard export failed", attr.RoundID("round_id", id), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeFile(w, xlsxContentType, fmt.Sprintf("scorecard-%s.xlsx", round.Date), data)
}

// HandleScoreChart serves GET /api/history/{roundID}/chart.png.
func (h *RoundHandlers) HandleScoreChart(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleScoreChart")
	defer span.End()
	span.SetAttributes(attribute.String("round_id", id.String()))

	round, err := h.service.GetSavedRound(ctx, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	data, err := roundexport.ScoreChart(*round)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart render failed")
		h.logger.ErrorContext(ctx, "Score chart render failed", attr.RoundID("round_id", id), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeFile(w, "image/png", "", data)
}
