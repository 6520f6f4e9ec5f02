package requests

type CreateRequest struct {
	MarketID  int64  `json:"market_id" binding:"required"`
	VisitDate string `json:"visit_date" binding:"required"`
	Reason    string `json:"reason"`
}

type DecideRequest struct {
	Note string `json:"note"`
}
