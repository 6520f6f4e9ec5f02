package repository

import (
	"context"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ReportFilter narrows step-report rows through their parent visit.
type ReportFilter struct {
	ClientID  int64
	DateFrom  string
	DateTo    string
	UserIDs   []int64
	MarketIDs []int64
	Limit     int
	Offset    int
}

// List reads rows from one of the step-report tables. The table name must
// already be validated against the report config map; it is interpolated, not
// bound, because gorm cannot parameterize identifiers.
func (r *ReportRepository) List(ctx context.Context, table string, f ReportFilter) ([]map[string]any, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Table(table+" AS rep").
			Joins("JOIN visit_snapshots v ON v.id = rep.visit_id").
			Where("rep.client_id = ?", f.ClientID)
		if f.DateFrom != "" {
			q = q.Where("v.visit_date >= ?", f.DateFrom)
		}
		if f.DateTo != "" {
			q = q.Where("v.visit_date <= ?", f.DateTo)
		}
		if len(f.UserIDs) > 0 {
			q = q.Where("v.user_id IN ?", f.UserIDs)
		}
		if len(f.MarketIDs) > 0 {
			q = q.Where("v.market_id IN ?", f.MarketIDs)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base().
		Select("rep.*, v.user_id AS visit_user_id, v.market_id AS visit_market_id, v.visit_date").
		Order("rep.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
