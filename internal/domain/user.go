package domain

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
	RoleTeamLeader UserRole = "team_leader"
	RoleMCH        UserRole = "mch"
	RolePromoter   UserRole = "promoter"
)

// IsManager reports whether the role sees tenant-wide data.
func (r UserRole) IsManager() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	Username     string    `json:"username" validate:"required"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	TeamLeaderID *int64    `json:"team_leader_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
