package domain

import "time"

// Step-specific report rows, one flat table per visit step. Referential
// integrity against visits is the database's job, not the portal's.

type AvailabilityReport struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	VisitID   int64     `json:"visit_id"`
	SKU       string    `json:"sku"`
	Available bool      `json:"available"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DamageReport struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	VisitID    int64     `json:"visit_id"`
	SKU        string    `json:"sku"`
	Quantity   int       `json:"quantity"`
	DamageKind string    `json:"damage_kind"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type WarehouseCount struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	VisitID   int64     `json:"visit_id"`
	SKU       string    `json:"sku"`
	Counted   int       `json:"counted"`
	Expected  int       `json:"expected"`
	CreatedAt time.Time `json:"created_at"`
}

type ShelfShareReport struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	VisitID      int64     `json:"visit_id"`
	Category     string    `json:"category"`
	OwnFacings   int       `json:"own_facings"`
	TotalFacings int       `json:"total_facings"`
	CreatedAt    time.Time `json:"created_at"`
}

type CompetitorActivity struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	VisitID    int64     `json:"visit_id"`
	Competitor string    `json:"competitor"`
	Activity   string    `json:"activity"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PromoterReport struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	VisitID   int64     `json:"visit_id"`
	SKU       string    `json:"sku"`
	SoldUnits int       `json:"sold_units"`
	Sampling  int       `json:"sampling"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
