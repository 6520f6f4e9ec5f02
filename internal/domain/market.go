package domain

import "time"

// Market is a physical store location. Reference data: the portal reads it,
// provisioning writes it.
type Market struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Region    string    `json:"region"`
	City      string    `json:"city"`
	Store     string    `json:"store"`
	Branch    string    `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
