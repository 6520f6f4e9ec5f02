package domain

import "time"

// Client is a tenant: an organization using the portal. Rows are managed
// through the internal provisioning routes, never from the browser.
type Client struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code" validate:"required"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
