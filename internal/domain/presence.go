package domain

import "time"

// PresenceRecord is a pre-aggregated row from the attendance view: total
// seconds a user was on site on a given day. The view can emit more than one
// row per user-day; consumers keep the maximum and clamp to [0, 86400].
type PresenceRecord struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	UserID          int64     `json:"user_id"`
	Day             string    `json:"day"` // YYYY-MM-DD
	PresenceSeconds int64     `json:"presence_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}
