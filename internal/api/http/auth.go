package http

import (
	"net/http"

	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/user"
)

// POST /auth/register  { "email": "...", "password": "...", "displayName": "..." }
func RegisterHandler(a *authmw.AuthService, users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req user.Registration
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := users.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out, err := a.Token(u.ID, u.Role, &u)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// POST /auth/login  { "email": "...", "password": "..." }
func LoginHandler(a *authmw.AuthService, users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out, err := a.Token(u.ID, u.Role, &u)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
