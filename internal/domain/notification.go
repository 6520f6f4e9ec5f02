package domain

import "time"

type TargetMode string

const (
	TargetAll   TargetMode = "ALL"
	TargetRoles TargetMode = "ROLES"
	TargetUsers TargetMode = "USERS"
)

const NotificationCompleted = "COMPLETED"

// Notification is a broadcast message from an admin to some subset of the
// tenant's users, with acknowledgement tracking in CompletedBy.
type Notification struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	SenderID    int64      `json:"sender_id"`
	Title       string     `json:"title" validate:"required"`
	Message     string     `json:"message"`
	TargetMode  TargetMode `json:"target_mode"`
	TargetRoles []string   `json:"target_roles,omitempty"`
	TargetUsers []int64    `json:"target_users,omitempty"`
	Status      string     `json:"status"`
	CompletedBy []int64    `json:"completed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsComplete mixes two observed completion conditions: a notification aimed at
// exactly one user is complete as soon as that user acknowledged it, whatever
// the status field says; anything broader is complete only on an explicit
// COMPLETED status. Both conditions are kept as-is.
func (n *Notification) IsComplete() bool {
	if n.TargetMode == TargetUsers && len(n.TargetUsers) == 1 {
		for _, id := range n.CompletedBy {
			if id == n.TargetUsers[0] {
				return true
			}
		}
		return false
	}
	return n.Status == NotificationCompleted
}

// AcknowledgedBy reports whether the user already appears in CompletedBy.
func (n *Notification) AcknowledgedBy(userID int64) bool {
	for _, id := range n.CompletedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Targets reports whether the notification is addressed to the given user.
func (n *Notification) Targets(userID int64, role UserRole) bool {
	switch n.TargetMode {
	case TargetAll:
		return true
	case TargetRoles:
		for _, r := range n.TargetRoles {
			if r == string(role) {
				return true
			}
		}
		return false
	case TargetUsers:
		for _, id := range n.TargetUsers {
			if id == userID {
				return true
			}
		}
		return false
	}
	return false
}
