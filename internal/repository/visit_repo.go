package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

type visitModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ClientID      int64      `gorm:"column:client_id;index"`
	UserID        int64      `gorm:"column:user_id;index"`
	MarketID      *int64     `gorm:"column:market_id"`
	VisitDate     string     `gorm:"column:visit_date;index"`
	StartedAt     *time.Time `gorm:"column:started_at"`
	FinishedAt    *time.Time `gorm:"column:finished_at"`
	EndReason     string     `gorm:"column:end_reason"`
	EndReasonAr   string     `gorm:"column:end_reason_ar"`
	EndVisitPhoto string     `gorm:"column:end_visit_photo"`
	JPState       string     `gorm:"column:jp_state"`
	Region        string     `gorm:"column:region"`
	City          string     `gorm:"column:city"`
	Store         string     `gorm:"column:store"`
	Branch        string     `gorm:"column:branch"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (visitModel) TableName() string { return "visit_snapshots" }

func toDomainVisit(m visitModel) *domain.VisitSnapshot {
	return &domain.VisitSnapshot{
		ID:            m.ID,
		ClientID:      m.ClientID,
		UserID:        m.UserID,
		MarketID:      m.MarketID,
		VisitDate:     m.VisitDate,
		StartedAt:     m.StartedAt,
		FinishedAt:    m.FinishedAt,
		EndReason:     m.EndReason,
		EndReasonAr:   m.EndReasonAr,
		EndVisitPhoto: m.EndVisitPhoto,
		JPState:       domain.JPState(m.JPState),
		Region:        m.Region,
		City:          m.City,
		Store:         m.Store,
		Branch:        m.Branch,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toVisitModel(v *domain.VisitSnapshot) visitModel {
	return visitModel{
		ID:            v.ID,
		ClientID:      v.ClientID,
		UserID:        v.UserID,
		MarketID:      v.MarketID,
		VisitDate:     v.VisitDate,
		StartedAt:     v.StartedAt,
		FinishedAt:    v.FinishedAt,
		EndReason:     v.EndReason,
		EndReasonAr:   v.EndReasonAr,
		EndVisitPhoto: v.EndVisitPhoto,
		JPState:       string(v.JPState),
		Region:        v.Region,
		City:          v.City,
		Store:         v.Store,
		Branch:        v.Branch,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// VisitFilter is the working-set query every visit listing starts from.
// Dates are YYYY-MM-DD, inclusive on both ends.
type VisitFilter struct {
	ClientID  int64
	DateFrom  string
	DateTo    string
	UserIDs   []int64
	MarketIDs []int64
	JPState   string
	Limit     int
	Offset    int
}

func (f VisitFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("client_id = ?", f.ClientID)
	if f.DateFrom != "" {
		q = q.Where("visit_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("visit_date <= ?", f.DateTo)
	}
	if len(f.UserIDs) > 0 {
		q = q.Where("user_id IN ?", f.UserIDs)
	}
	if len(f.MarketIDs) > 0 {
		q = q.Where("market_id IN ?", f.MarketIDs)
	}
	if f.JPState != "" {
		q = q.Where("jp_state = ?", f.JPState)
	}
	return q
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.VisitSnapshot) error {
	m := toVisitModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVisit(m)
	return nil
}

func (r *VisitRepository) Update(ctx context.Context, v *domain.VisitSnapshot) error {
	m := toVisitModel(v)
	return r.db.WithContext(ctx).Save(&m).Error
}

// List returns the filtered snapshot rows plus the unpaginated total.
func (r *VisitRepository) List(ctx context.Context, f VisitFilter) ([]domain.VisitSnapshot, int64, error) {
	var total int64
	if err := f.apply(r.db.WithContext(ctx).Model(&visitModel{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := f.apply(r.db.WithContext(ctx)).Order("visit_date ASC, started_at ASC, id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var ms []visitModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	visits := make([]domain.VisitSnapshot, 0, len(ms))
	for _, m := range ms {
		visits = append(visits, *toDomainVisit(m))
	}
	return visits, total, nil
}

// ListAll returns the whole working set for a filter, unpaginated. Funnel
// derivation and the mailer both need every row.
func (r *VisitRepository) ListAll(ctx context.Context, f VisitFilter) ([]domain.VisitSnapshot, error) {
	f.Limit = 0
	visits, _, err := r.List(ctx, f)
	return visits, err
}
