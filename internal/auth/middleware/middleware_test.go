package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/eduhub/internal/rbac"
	"github.com/mind-engage/eduhub/internal/user"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	tok, err := a.IssueJWT("student-1", user.RoleStudent)
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "student-1", c.Sub)
	assert.Equal(t, user.RoleStudent, c.Role)
	assert.Equal(t, issuer, c.Issuer)
}

func TestParseRejects(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	tok, err := a.IssueJWT("student-1", user.RoleStudent)
	require.NoError(t, err)

	_, err = NewAuthService("other-secret", time.Hour).Parse(tok)
	assert.Error(t, err)

	a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = a.Parse(tok)
	assert.Error(t, err, "expired")

	_, err = a.Parse("not.a.token")
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := a.IssueJWT("admin", user.RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", gotSub)
	assert.Equal(t, user.RoleAdmin, gotRole)
}

type stubUsers struct {
	user.Store
	users map[string]user.User
}

func (s stubUsers) ByID(_ context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func TestVerifyStudent(t *testing.T) {
	users := stubUsers{users: map[string]user.User{"s1": {ID: "s1", Role: user.RoleStudent}}}
	h := VerifyStudent(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		sub, role string
		want      int
	}{
		{"s1", user.RoleStudent, http.StatusNoContent},
		{"gone", user.RoleStudent, http.StatusUnauthorized},
		{"admin", user.RoleAdmin, http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithPrincipal(req.Context(), tc.sub, tc.role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.sub)
	}
}

func TestAdminLogin(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	h := AdminLoginHandler(a, "admin", string(hash))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/admin/login",
		strings.NewReader(`{"username":"admin","password":"letmein"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var out TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, user.RoleAdmin, out.Role)
	assert.Equal(t, 3600, out.ExpiresIn)
	c, err := a.Parse(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Sub)
}
