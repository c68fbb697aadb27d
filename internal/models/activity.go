package models

import "time"

// Activity action constants. Every security or data-mutation event maps to
// exactly one of these.
const (
	ActionLogin       = "LOGIN"
	ActionLogout      = "LOGOUT"
	ActionFailedLogin = "FAILED_LOGIN"
	ActionAdd         = "ADD"
	ActionEdit        = "EDIT"
	ActionDelete      = "DELETE"
	ActionExport      = "EXPORT"
	ActionOther       = "OTHER"
)

// ActivityLog is one immutable entry in the append-only audit trail.
// UserID is nil for failed login attempts. CreatedAt is assigned by the
// store at write time, never by the caller.
type ActivityLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      *string   `db:"user_id" json:"user_id,omitempty"`
	Action      string    `db:"action" json:"action"`
	Description string    `db:"description" json:"description"`
	IPAddress   *string   `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent   string    `db:"user_agent" json:"user_agent"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
