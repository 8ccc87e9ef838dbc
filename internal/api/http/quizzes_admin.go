package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
	syncx "github.com/mind-engage/eduhub/internal/sync"
	"github.com/mind-engage/eduhub/internal/validate"
)

// GET /admin/quizzes
func ListQuizzesHandler(quizzes quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := quizzes.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /admin/quizzes/{quizID} includes the correct answers.
func GetQuizHandler(quizzes quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := quizzes.Get(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// buildQuiz runs the submitted form through the builder and checks the course link.
func buildQuiz(r *http.Request, courses course.Store, in quiz.Quiz) (quiz.Quiz, error) {
	q, err := quiz.BuilderFrom(in).Build()
	if err != nil {
		return quiz.Quiz{}, err
	}
	if q.CourseID != "" {
		if _, err := courses.Get(r.Context(), q.CourseID); errors.Is(err, course.ErrNotFound) {
			return quiz.Quiz{}, validate.Fail("courseId", "courseId must reference an existing course")
		} else if err != nil {
			return quiz.Quiz{}, err
		}
	}
	return q, nil
}

// POST /admin/quizzes
func CreateQuizHandler(quizzes quiz.Store, courses course.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quiz.Quiz
		if !decodeJSON(w, r, &in) {
			return
		}
		in.ID = ""
		q, err := buildQuiz(r, courses, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		created, err := quizzes.Create(r.Context(), q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.QuizCreated, created.ID, map[string]any{"title": created.Title, "questions": len(created.Questions)})
		writeJSON(w, http.StatusCreated, created)
	}
}

// PUT /admin/quizzes/{quizID}
func UpdateQuizHandler(quizzes quiz.Store, courses course.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quiz.Quiz
		if !decodeJSON(w, r, &in) {
			return
		}
		in.ID = chi.URLParam(r, "quizID")
		q, err := buildQuiz(r, courses, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		updated, err := quizzes.Update(r.Context(), q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.QuizUpdated, updated.ID, map[string]any{"title": updated.Title, "questions": len(updated.Questions)})
		writeJSON(w, http.StatusOK, updated)
	}
}

// DELETE /admin/quizzes/{quizID}
func DeleteQuizHandler(quizzes quiz.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		if err := quizzes.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.QuizDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
