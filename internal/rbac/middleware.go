package rbac

import (
	"net/http"
)

func guard(allowed func(role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !allowed(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require enforces a single permission.
func Require(perm string) func(http.Handler) http.Handler {
	return guard(func(role string) bool { return RolePermissions.Grants(role, perm) })
}

// RequireAny lets the request through when the role holds at least one of perms.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return guard(func(role string) bool { return RolePermissions.GrantsAny(role, perms...) })
}

// RequireAll lets the request through only when the role holds every one of perms.
func RequireAll(perms ...string) func(http.Handler) http.Handler {
	return guard(func(role string) bool { return RolePermissions.GrantsAll(role, perms...) })
}

// Allowed reports whether the role in the request context holds perm. Handlers
// use it to shape a response rather than to reject it.
func Allowed(r *http.Request, perm string) bool {
	role := RoleFromContext(r.Context())
	return role != "" && RolePermissions.Grants(role, perm)
}
