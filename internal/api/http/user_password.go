package http

import (
	"net/http"

	"github.com/pkg/errors"

	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/user"
)

// POST /me/password  { "old_password": "...", "new_password": "..." }
func ChangePasswordHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req user.PasswordChange
		if !decodeJSON(w, r, &req) {
			return
		}
		err := users.ChangePassword(r.Context(), userID, req)
		if errors.Is(err, user.ErrInvalidCredentials) {
			http.Error(w, "incorrect old password", http.StatusForbidden)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /me
func MeHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.Profile(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
