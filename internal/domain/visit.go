package domain

import (
	"strconv"
	"time"
)

type VisitStatus string

const (
	VisitFinished VisitStatus = "finished"
	VisitEnded    VisitStatus = "ended"
	VisitPending  VisitStatus = "pending"
)

type JPState string

const (
	InJP    JPState = "IN JP"
	OutOfJP JPState = "OUT OF JP"
)

// VisitSnapshot is one recorded attempt/outcome of a visit to a market on a
// given date. A market-day can carry more than one row for the same logical
// visit (the field user's original plus a team-leader overlay); listings
// collapse them with the visits package's BestPerMarket.
type VisitSnapshot struct {
	ID            int64      `json:"id"`
	ClientID      int64      `json:"client_id"`
	UserID        int64      `json:"user_id"`
	MarketID      *int64     `json:"market_id,omitempty"`
	VisitDate     string     `json:"visit_date"` // YYYY-MM-DD
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	EndReason     string     `json:"end_reason,omitempty"`
	EndReasonAr   string     `json:"end_reason_ar,omitempty"`
	EndVisitPhoto string     `json:"end_visit_photo,omitempty"`
	JPState       JPState    `json:"jp_state"`

	// Denormalized market attributes so partially hydrated rows (market_id
	// missing) still group and filter correctly.
	Region string `json:"region,omitempty"`
	City   string `json:"city,omitempty"`
	Store  string `json:"store,omitempty"`
	Branch string `json:"branch,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status derives the snapshot state: an end reason in either language means
// Ended, otherwise both timestamps set means Finished, otherwise Pending.
func (v *VisitSnapshot) Status() VisitStatus {
	if v.EndReason != "" || v.EndReasonAr != "" {
		return VisitEnded
	}
	if v.StartedAt != nil && v.FinishedAt != nil {
		return VisitFinished
	}
	return VisitPending
}

// EffectiveTime is the timestamp used to rank snapshots within a status tier:
// finished_at when present, started_at otherwise.
func (v *VisitSnapshot) EffectiveTime() *time.Time {
	if v.FinishedAt != nil {
		return v.FinishedAt
	}
	return v.StartedAt
}

// MarketKey groups snapshots by market identity, tolerating rows without a
// market id by falling back to the denormalized store attributes.
func (v *VisitSnapshot) MarketKey() string {
	if v.MarketID != nil {
		return "id:" + strconv.FormatInt(*v.MarketID, 10)
	}
	return v.Store + "|" + v.Branch + "|" + v.City + "|" + v.Region
}
