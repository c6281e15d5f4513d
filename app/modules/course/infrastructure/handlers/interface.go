package coursehandlers

import "net/http"

// Handlers serves the course HTTP endpoints.
type Handlers interface {
	HandleSearchCourses(w http.ResponseWriter, r *http.Request)
	HandleNearbyCourses(w http.ResponseWriter, r *http.Request)
	HandleGetCourse(w http.ResponseWriter, r *http.Request)
	HandleAvailableTees(w http.ResponseWriter, r *http.Request)
	HandleGetHole(w http.ResponseWriter, r *http.Request)
}
