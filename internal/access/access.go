// Package access resolves the record scope and capability set of a principal.
// All repository and export operations consume the same resolver so the
// role precedence lives in exactly one place.
package access

import "github.com/noah-isme/srs-go-api/internal/models"

// Permission names gate each mutating operation.
type Permission string

const (
	PermAddStudent    Permission = "student:add"
	PermChangeStudent Permission = "student:change"
	PermDeleteStudent Permission = "student:delete"
)

// Scope bounds the student records a principal may reach. When All is false
// only records owned by OwnerID are visible.
type Scope struct {
	All     bool
	OwnerID string
}

// Contains reports whether a record owned by ownerID falls inside the scope.
func (s Scope) Contains(ownerID string) bool {
	return s.All || s.OwnerID == ownerID
}

// ResolveListScope determines which records a principal sees when listing or
// exporting. Precedence is Admin > Teacher > default full read: an admin sees
// everything, a teacher only their own records, and anyone else (the viewer
// case) reads everything. A principal holding both Admin and Teacher gets the
// admin scope.
func ResolveListScope(p models.Principal) Scope {
	switch {
	case p.HasRole(models.RoleAdmin):
		return Scope{All: true}
	case p.HasRole(models.RoleTeacher):
		return Scope{OwnerID: p.UserID}
	default:
		return Scope{All: true}
	}
}

// ResolveEditScope determines which records are reachable for editing. Unlike
// the list scope, non-admins are never widened: only an admin or the owning
// teacher may reach a record. Resolved at call time, never cached.
func ResolveEditScope(p models.Principal) Scope {
	if p.HasRole(models.RoleAdmin) {
		return Scope{All: true}
	}
	return Scope{OwnerID: p.UserID}
}

var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin:   {PermAddStudent, PermChangeStudent, PermDeleteStudent},
	models.RoleTeacher: {PermAddStudent, PermChangeStudent},
}

// Can reports whether any of the principal's roles grants the permission.
// Viewer holds no permissions; read-only intent is enforced here rather than
// through scope.
func Can(p models.Principal, perm Permission) bool {
	for _, role := range p.Roles {
		for _, granted := range rolePermissions[role] {
			if granted == perm {
				return true
			}
		}
	}
	return false
}
