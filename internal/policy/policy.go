// Package policy holds the authorization predicates applied before every
// guarded mutation. Predicates are pure, take the acting principal
// explicitly and are evaluated immediately before the operation, never
// cached.
package policy

import (
	"go-clinic-management/internal/domain/entity"
)

// RequireRole reports whether the principal holds one of the given roles.
func RequireRole(p entity.Principal, roles ...string) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// RequireAdmin gates role, specialty and user administration.
func RequireAdmin(p entity.Principal) bool {
	return RequireRole(p, entity.RoleAdmin)
}

// CanManageEntry is the single capability check for editing or deleting a
// history entry: only the recorded author qualifies, regardless of role.
// Administrators hold no override.
func CanManageEntry(p entity.Principal, e *entity.HistoryEntry) bool {
	return e != nil && p.ID == e.AuthorID
}
