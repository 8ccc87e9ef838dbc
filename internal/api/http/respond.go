package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mind-engage/eduhub/internal/announcement"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
	"github.com/mind-engage/eduhub/internal/storage"
	"github.com/mind-engage/eduhub/internal/user"
	"github.com/mind-engage/eduhub/internal/validate"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body. On failure it has already answered 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors to a status and a message safe to show clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound), errors.Is(err, quiz.ErrInvalidQuiz):
		return http.StatusNotFound, "quiz not available"
	case errors.Is(err, quiz.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, course.ErrNotFound):
		return http.StatusNotFound, "course not found"
	case errors.Is(err, announcement.ErrNotFound):
		return http.StatusNotFound, "announcement not found"
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrBadKey):
		return http.StatusNotFound, "not found"
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, quiz.ErrAnswerRequired):
		return http.StatusUnprocessableEntity, "answer required"
	case errors.Is(err, quiz.ErrInvalidOption):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, quiz.ErrNoPreviousQuestion):
		return http.StatusConflict, "no previous question"
	case errors.Is(err, quiz.ErrSessionCompleted):
		return http.StatusConflict, "quiz already submitted"
	case errors.Is(err, quiz.ErrSessionInProgress):
		return http.StatusConflict, "quiz not submitted yet"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: verr.Map()})
		return
	}
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func queryInt(r *http.Request, key string, def, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
