package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/quiz"
)

type sessionResponse struct {
	ID string `json:"sessionId"`
	quiz.Outcome
}

type sessionErrorResponse struct {
	Error string `json:"error"`
	sessionResponse
}

// writeOutcome renders the session state after an operation. Rejected
// operations keep the state and carry any notices raised for the student.
func writeOutcome(w http.ResponseWriter, r *http.Request, id string, out quiz.Outcome, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, sessionResponse{ID: id, Outcome: out})
		return
	}
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, sessionErrorResponse{Error: msg, sessionResponse: sessionResponse{ID: id, Outcome: out}})
}

func sessionEntry(w http.ResponseWriter, r *http.Request, m *quiz.Manager) (*quiz.Entry, bool) {
	e, err := m.Get(chi.URLParam(r, "sessionID"), authmw.SubjectFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return e, true
}

// POST /quizzes/{quizID}/sessions
func StartSessionHandler(m *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "quizID")
		e, err := m.Start(r.Context(), quizID, authmw.SubjectFromContext(r.Context()))
		if errors.Is(err, quiz.ErrInvalidQuiz) {
			log.Printf("api: quiz %s is not playable: %v", quizID, err)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		out, _ := e.Do(func(*quiz.Controller) error { return nil })
		writeJSON(w, http.StatusCreated, sessionResponse{ID: e.ID, Outcome: out})
	}
}

// sessionAction adapts a controller call into a handler on /sessions/{sessionID}/...
func sessionAction(m *quiz.Manager, fn func(r *http.Request, c *quiz.Controller) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := sessionEntry(w, r, m)
		if !ok {
			return
		}
		out, err := e.Do(func(c *quiz.Controller) error { return fn(r, c) })
		writeOutcome(w, r, e.ID, out, err)
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(m *quiz.Manager) http.HandlerFunc {
	return sessionAction(m, func(*http.Request, *quiz.Controller) error { return nil })
}

// POST /sessions/{sessionID}/answer  { "optionIndex": 1 }
func AnswerHandler(m *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OptionIndex *int `json:"optionIndex"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.OptionIndex == nil {
			http.Error(w, "optionIndex required", http.StatusBadRequest)
			return
		}
		sessionAction(m, func(_ *http.Request, c *quiz.Controller) error {
			return c.SelectAnswer(*req.OptionIndex)
		})(w, r)
	}
}

// POST /sessions/{sessionID}/next
func NextHandler(m *quiz.Manager) http.HandlerFunc {
	return sessionAction(m, func(_ *http.Request, c *quiz.Controller) error { return c.Next() })
}

// POST /sessions/{sessionID}/previous
func PreviousHandler(m *quiz.Manager) http.HandlerFunc {
	return sessionAction(m, func(_ *http.Request, c *quiz.Controller) error { return c.Previous() })
}

// POST /sessions/{sessionID}/submit
func SubmitHandler(m *quiz.Manager) http.HandlerFunc {
	return sessionAction(m, func(_ *http.Request, c *quiz.Controller) error { return c.Submit() })
}

// POST /sessions/{sessionID}/dismiss
func DismissHandler(m *quiz.Manager) http.HandlerFunc {
	return sessionAction(m, func(_ *http.Request, c *quiz.Controller) error { return c.Dismiss() })
}

// GET /sessions/{sessionID}/review
func ReviewHandler(m *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := sessionEntry(w, r, m)
		if !ok {
			return
		}
		var items []quiz.ReviewItem
		out, err := e.Do(func(c *quiz.Controller) error {
			var err error
			items, err = c.Review()
			return err
		})
		if err != nil {
			writeOutcome(w, r, e.ID, out, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			sessionResponse
			Review []quiz.ReviewItem `json:"review"`
		}{sessionResponse{ID: e.ID, Outcome: out}, items})
	}
}

// POST /sessions/{sessionID}/restart
func RestartHandler(m *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		out, err := m.Restart(id, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{ID: id, Outcome: out})
	}
}

// DELETE /sessions/{sessionID}
func LeaveHandler(m *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Leave(chi.URLParam(r, "sessionID"), authmw.SubjectFromContext(r.Context())); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
