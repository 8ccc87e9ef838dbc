package rbac

import "strings"

// Policy maps a role to the permission patterns it holds. A pattern ending
// in "*" covers every permission with that prefix; "*" alone covers all.
type Policy map[string][]string

// Grants reports whether role holds perm.
func (p Policy) Grants(role, perm string) bool {
	for _, pattern := range p[role] {
		if covers(pattern, perm) {
			return true
		}
	}
	return false
}

// GrantsAny reports whether role holds at least one of perms.
func (p Policy) GrantsAny(role string, perms ...string) bool {
	for _, perm := range perms {
		if p.Grants(role, perm) {
			return true
		}
	}
	return false
}

// GrantsAll reports whether role holds every one of perms. An empty list grants nothing.
func (p Policy) GrantsAll(role string, perms ...string) bool {
	for _, perm := range perms {
		if !p.Grants(role, perm) {
			return false
		}
	}
	return len(perms) > 0
}

func covers(pattern, perm string) bool {
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	if !wildcard {
		return pattern == perm
	}
	return strings.HasPrefix(perm, prefix)
}
