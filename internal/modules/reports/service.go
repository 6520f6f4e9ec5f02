package reports

import (
	"context"
	"errors"

	"fieldops/internal/repository"

	"go.uber.org/zap"
)

var ErrUnknownTable = errors.New("unknown report table")

type ReportRepository interface {
	List(ctx context.Context, table string, f repository.ReportFilter) ([]map[string]any, int64, error)
}

type Service struct {
	repo   ReportRepository
	logger *zap.Logger
}

func NewService(repo ReportRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type ListQuery struct {
	DateFrom  string  `form:"date_from"`
	DateTo    string  `form:"date_to"`
	UserIDs   []int64 `form:"user_ids"`
	MarketIDs []int64 `form:"market_ids"`
	Page      int     `form:"page"`
	Limit     int     `form:"limit"`
}

type ListResult struct {
	Config TableConfig      `json:"config"`
	Rows   []map[string]any `json:"rows"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}

// List returns rows for one report table shaped by its column config. The
// table name is validated against the config map before it reaches SQL.
func (s *Service) List(ctx context.Context, clientID int64, table string, q ListQuery) (*ListResult, error) {
	cfg, ok := ConfigFor(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, total, err := s.repo.List(ctx, cfg.Table, repository.ReportFilter{
		ClientID:  clientID,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		UserIDs:   q.UserIDs,
		MarketIDs: q.MarketIDs,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		s.logger.Error("report query failed", zap.String("table", table), zap.Error(err))
		rows, total = []map[string]any{}, 0
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	return &ListResult{Config: cfg, Rows: rows, Total: total, Page: page, Limit: limit}, nil
}
