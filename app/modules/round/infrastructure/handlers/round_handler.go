package roundhandlers

import (
	"net/http"
	"strconv"

	roundservice "github.com/Black-And-White-Club/golf-stats/app/modules/round/application"
	"github.com/go-chi/chi/v5"
)

type penaltyRequest struct {
	Strokes int `json:"strokes"`
}

// HandleStartRound serves POST /api/rounds.
func (h *RoundHandlers) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	var req roundservice.StartRoundRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.service.StartRound(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGetRound serves GET /api/rounds/{roundID}.
func (h *RoundHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	view, err := h.service.GetRound(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleAddShot serves POST /api/rounds/{roundID}/shots.
func (h *RoundHandlers) HandleAddShot(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	var in roundservice.ShotInput
	if !decodeBody(w, r, &in) {
		return
	}
	view, err := h.service.AddShot(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleAddPenalty serves POST /api/rounds/{roundID}/penalties. An empty
// body records one penalty stroke.
func (h *RoundHandlers) HandleAddPenalty(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	req := penaltyRequest{Strokes: 1}
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	view, err := h.service.AddPenalty(r.Context(), id, req.Strokes)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleUndoLastShot serves DELETE /api/rounds/{roundID}/shots/last.
func (h *RoundHandlers) HandleUndoLastShot(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	view, err := h.service.UndoLastShot(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDeleteShot serves DELETE /api/rounds/{roundID}/shots/{shotNumber}.
func (h *RoundHandlers) HandleDeleteShot(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	number, err := strconv.Atoi(chi.URLParam(r, "shotNumber"))
	if err != nil || number < 1 {
		writeError(w, http.StatusBadRequest, "invalid shot number")
		return
	}
	view, err := h.service.DeleteShot(r.Context(), id, number)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleFinishHole serves POST /api/rounds/{roundID}/holes. Putts and score
// are optional overrides of the ledger counts, as numbers or text.
func (h *RoundHandlers) HandleFinishHole(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	var in roundservice.FinishHoleInput
	if !decodeOptionalBody(w, r, &in) {
		return
	}
	res, err := h.service.FinishHole(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleRefreshHole serves POST /api/rounds/{roundID}/hole/refresh.
func (h *RoundHandlers) HandleRefreshHole(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	view, err := h.service.RefreshHole(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleScorecard serves GET /api/rounds/{roundID}/scorecard.
func (h *RoundHandlers) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	card, err := h.service.Scorecard(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleResetRound serves DELETE /api/rounds/{roundID}.
func (h *RoundHandlers) HandleResetRound(w http.ResponseWriter, r *http.Request) {
	id, ok := roundID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	if err := h.service.ResetRound(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
