package models

import (
	"time"

	"github.com/lib/pq"
)

// Role represents a role grantable to a user. A user may hold several roles
// at once; scope resolution applies Admin > Teacher > default precedence.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleViewer  Role = "VIEWER"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string         `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	FullName     string         `db:"full_name" json:"full_name"`
	Roles        pq.StringArray `db:"roles" json:"roles"`
	Active       bool           `db:"active" json:"active"`
	LastLogin    *time.Time     `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// RoleList converts the stored role strings into typed roles.
func (u *User) RoleList() []Role {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, Role(r))
	}
	return roles
}

// Principal is the authenticated actor performing an action, together with
// the request context the audit trail records.
type Principal struct {
	UserID    string
	Email     string
	Roles     []Role
	IP        string
	UserAgent string
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
