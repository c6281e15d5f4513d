package coursehandlers

import (
	"errors"
	"net/http"
	"strconv"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/go-chi/chi/v5"
)

// HandleSearchCourses serves GET /api/courses?q=.
func (h *CourseHandlers) HandleSearchCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courses, err := h.service.SearchCourses(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.ErrorContext(ctx, "Course search failed", attr.Error(err))
		writeError(w, http.StatusInternalServerError, "course search failed")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// HandleNearbyCourses serves GET /api/courses/nearby?lat=&lng=.
func (h *CourseHandlers) HandleNearbyCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	courses, err := h.service.ListCoursesNear(ctx, coursedomain.Coordinate{Lat: lat, Lng: lng})
	if err != nil {
		h.logger.ErrorContext(ctx, "Nearby course lookup failed", attr.Error(err))
		writeError(w, http.StatusInternalServerError, "nearby lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// HandleGetCourse serves GET /api/courses/{courseID}.
func (h *CourseHandlers) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	course, err := h.service.GetCourse(ctx, chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// HandleAvailableTees serves GET /api/courses/{courseID}/loops/{loopID}/tees.
func (h *CourseHandlers) HandleAvailableTees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tees, err := h.service.AvailableTees(ctx, chi.URLParam(r, "courseID"), chi.URLParam(r, "loopID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tees": tees})
}

// HandleGetHole serves GET /api/courses/{courseID}/loops/{loopID}/holes/{hole}?tee=.
func (h *CourseHandlers) HandleGetHole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	holeNumber, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || holeNumber < 1 {
		writeError(w, http.StatusBadRequest, "invalid hole number")
		return
	}

	course, err := h.service.GetCourse(ctx, chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	loop, ok := course.Loop(chi.URLParam(r, "loopID"))
	if !ok {
		writeError(w, http.StatusNotFound, courseservice.ErrLoopNotFound.Error())
		return
	}

	info := h.service.ResolveHole(ctx, *course, loop, r.URL.Query().Get("tee"), holeNumber)
	writeJSON(w, http.StatusOK, info)
}

func (h *CourseHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, courseservice.ErrCourseNotFound), errors.Is(err, courseservice.ErrLoopNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Course request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
