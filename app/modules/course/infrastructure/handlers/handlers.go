package coursehandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CourseHandlers implements the Handlers interface.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers instance.
func NewCourseHandlers(
	service courseservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &CourseHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the course endpoints on r.
func Routes(r chi.Router, h Handlers) {
	r.Route("/api/courses", func(r chi.Router) {
		r.Get("/", h.HandleSearchCourses)
		r.Get("/nearby", h.HandleNearbyCourses)
		r.Get("/{courseID}", h.HandleGetCourse)
		r.Get("/{courseID}/loops/{loopID}/tees", h.HandleAvailableTees)
		r.Get("/{courseID}/loops/{loopID}/holes/{hole}", h.HandleGetHole)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
