package domain

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected || s == RequestCancelled
}

// VisitRequest is an ad-hoc visit approval row. Once approved, rejected or
// cancelled it never changes again.
type VisitRequest struct {
	ID           int64         `json:"id"`
	ClientID     int64         `json:"client_id"`
	RequesterID  int64         `json:"requester_id" validate:"required"`
	MarketID     int64         `json:"market_id" validate:"required"`
	VisitDate    string        `json:"visit_date" validate:"required"` // YYYY-MM-DD
	Reason       string        `json:"reason,omitempty"`
	DailyStatus  RequestStatus `json:"daily_status"`
	ApproverID   *int64        `json:"approver_id,omitempty"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
	DecisionNote string        `json:"decision_note,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Requester *User   `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Market    *Market `json:"market,omitempty" gorm:"foreignKey:MarketID"`
}
