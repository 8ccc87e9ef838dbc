package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mind-engage/eduhub/internal/user"
)

// TokenResponse is returned by every login endpoint.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	Role        string     `json:"role"`
	User        *user.User `json:"user,omitempty"`
}

func (a *AuthService) Token(sub, role string, u *user.User) (TokenResponse, error) {
	tok, err := a.IssueJWT(sub, role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int(a.ttl.Seconds()),
		Role:        role,
		User:        u,
	}, nil
}

// POST /auth/admin/login  { "username": "...", "password": "..." }
// The single administrator is configured, not stored.
func AdminLoginHandler(a *AuthService, username, passHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Username) != username || !user.CheckHash(passHash, req.Password) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		out, err := a.Token(username, user.RoleAdmin, nil)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
