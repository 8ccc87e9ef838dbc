package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/course"
)

// POST /courses/{courseID}/enroll
func EnrollHandler(courses course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := courses.Enroll(r.Context(), chi.URLParam(r, "courseID"), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

// DELETE /courses/{courseID}/enroll
func DropHandler(courses course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := courses.Drop(r.Context(), chi.URLParam(r, "courseID"), authmw.SubjectFromContext(r.Context())); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /me/courses
func MyCoursesHandler(courses course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := courses.ListEnrolled(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
