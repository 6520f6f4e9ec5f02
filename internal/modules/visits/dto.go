package visits

import "fieldops/internal/domain"

// Caller identifies who is asking; role decides visibility scope.
type Caller struct {
	UserID   int64
	ClientID int64
	Role     domain.UserRole
}

type ListQuery struct {
	DateFrom  string  `form:"date_from"`
	DateTo    string  `form:"date_to"`
	UserIDs   []int64 `form:"user_ids"`
	MarketIDs []int64 `form:"market_ids"`
	JPState   string  `form:"jp_state"`
	Dedupe    bool    `form:"dedupe"`
	Page      int     `form:"page"`
	Limit     int     `form:"limit"`
}

type VisitRow struct {
	domain.VisitSnapshot
	DerivedStatus domain.VisitStatus `json:"derived_status"`
	Duration      string             `json:"duration"` // colon style
}

type ListResult struct {
	Visits []VisitRow `json:"visits"`
	Total  int64      `json:"total"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}

type SummaryQuery struct {
	DateFrom  string  `form:"date_from"`
	DateTo    string  `form:"date_to"`
	UserIDs   []int64 `form:"user_ids"`
	MarketIDs []int64 `form:"market_ids"`
	JPState   string  `form:"jp_state"`
}

// Summary feeds the dashboard cards: one deduped record per market counted
// into its tier, plus per-user time metrics.
type Summary struct {
	Finished int           `json:"finished"`
	Ended    int           `json:"ended"`
	Pending  int           `json:"pending"`
	Markets  int           `json:"markets"`
	Users    []UserMetrics `json:"users"`
}
