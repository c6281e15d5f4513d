package roundhandlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	roundservice "github.com/Black-And-White-Club/golf-stats/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds command request bodies.
const maxBodyBytes = 1 << 16

// RoundHandlers implements the Handlers interface.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers instance.
func NewRoundHandlers(
	service roundservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &RoundHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the round, player and history endpoints on r.
func Routes(r chi.Router, h Handlers) {
	r.Route("/api/rounds", func(r chi.Router) {
		r.Post("/", h.HandleStartRound)
		r.Route("/{roundID}", func(r chi.Router) {
			r.Get("/", h.HandleGetRound)
			r.Delete("/", h.HandleResetRound)
			r.Post("/shots", h.HandleAddShot)
			r.Delete("/shots/last", h.HandleUndoLastShot)
			r.Delete("/shots/{shotNumber}", h.HandleDeleteShot)
			r.Post("/penalties", h.HandleAddPenalty)
			r.Post("/holes", h.HandleFinishHole)
			r.Post("/hole/refresh", h.HandleRefreshHole)
			r.Get("/scorecard", h.HandleScorecard)
		})
	})

	r.Route("/api/players/{playerID}", func(r chi.Router) {
		r.Get("/rounds", h.HandleListRounds)
		r.Get("/stats", h.HandlePlayerStats)
	})

	r.Route("/api/history/{roundID}", func(r chi.Router) {
		r.Get("/", h.HandleGetSavedRound)
		r.Delete("/", h.HandleDeleteSavedRound)
		r.Get("/scorecard.xlsx", h.HandleScorecardXLSX)
		r.Get("/chart.png", h.HandleScoreChart)
	})
}

func roundID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "roundID"))
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, false)
}

// decodeOptionalBody accepts an empty body and leaves v untouched.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, true)
}

func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if optional && errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps service and domain errors onto HTTP statuses. Zero means
// the error is not a known failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, roundservice.ErrRoundNotFound),
		errors.Is(err, roundservice.ErrCourseNotFound),
		errors.Is(err, roundservice.ErrLoopNotFound),
		errors.Is(err, rounddomain.ErrLoopNotFound),
		errors.Is(err, rounddomain.ErrShotNotFound):
		return http.StatusNotFound
	case errors.Is(err, rounddomain.ErrInvalidTransition),
		errors.Is(err, rounddomain.ErrRoundCompleted),
		errors.Is(err, rounddomain.ErrStaleHoleData),
		errors.Is(err, rounddomain.ErrHoleNotLoaded),
		errors.Is(err, rounddomain.ErrNoActiveRound),
		errors.Is(err, roundservice.ErrSaveInProgress):
		return http.StatusConflict
	case errors.Is(err, rounddomain.ErrInvalidLie),
		errors.Is(err, rounddomain.ErrInvalidClub),
		errors.Is(err, rounddomain.ErrInvalidScore),
		errors.Is(err, rounddomain.ErrNoLoopData),
		errors.Is(err, roundservice.ErrPlayerRequired):
		return http.StatusUnprocessableEntity
	default:
		return 0
	}
}

func (h *RoundHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if status := statusFor(err); status != 0 {
		writeError(w, status, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "Round request failed",
		attr.String("method", r.Method),
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
