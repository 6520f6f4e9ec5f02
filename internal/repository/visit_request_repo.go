package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type VisitRequestRepository struct {
	db *gorm.DB
}

func NewVisitRequestRepository(db *gorm.DB) *VisitRequestRepository {
	return &VisitRequestRepository{db: db}
}

type visitRequestModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	ClientID     int64      `gorm:"column:client_id;index"`
	RequesterID  int64      `gorm:"column:requester_id;uniqueIndex:idx_one_pending,where:daily_status = 'pending'"`
	MarketID     int64      `gorm:"column:market_id;uniqueIndex:idx_one_pending,where:daily_status = 'pending'"`
	VisitDate    string     `gorm:"column:visit_date;uniqueIndex:idx_one_pending,where:daily_status = 'pending'"`
	Reason       string     `gorm:"column:reason"`
	DailyStatus  string     `gorm:"column:daily_status;index"`
	ApproverID   *int64     `gorm:"column:approver_id"`
	DecidedAt    *time.Time `gorm:"column:decided_at"`
	DecisionNote string     `gorm:"column:decision_note"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (visitRequestModel) TableName() string { return "visit_requests" }

func toDomainRequest(m visitRequestModel) *domain.VisitRequest {
	return &domain.VisitRequest{
		ID:           m.ID,
		ClientID:     m.ClientID,
		RequesterID:  m.RequesterID,
		MarketID:     m.MarketID,
		VisitDate:    m.VisitDate,
		Reason:       m.Reason,
		DailyStatus:  domain.RequestStatus(m.DailyStatus),
		ApproverID:   m.ApproverID,
		DecidedAt:    m.DecidedAt,
		DecisionNote: m.DecisionNote,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRequestModel(v *domain.VisitRequest) visitRequestModel {
	return visitRequestModel{
		ID:           v.ID,
		ClientID:     v.ClientID,
		RequesterID:  v.RequesterID,
		MarketID:     v.MarketID,
		VisitDate:    v.VisitDate,
		Reason:       v.Reason,
		DailyStatus:  string(v.DailyStatus),
		ApproverID:   v.ApproverID,
		DecidedAt:    v.DecidedAt,
		DecisionNote: v.DecisionNote,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (r *VisitRequestRepository) Create(ctx context.Context, v *domain.VisitRequest) error {
	m := toRequestModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainRequest(m)
	return nil
}

func (r *VisitRequestRepository) GetByID(ctx context.Context, id int64) (*domain.VisitRequest, error) {
	var m visitRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

// List returns requests for a tenant, optionally narrowed to a status and a
// requester set (role visibility is the service's job).
func (r *VisitRequestRepository) List(ctx context.Context, clientID int64, status string, requesterIDs []int64) ([]domain.VisitRequest, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if status != "" {
		q = q.Where("daily_status = ?", status)
	}
	if len(requesterIDs) > 0 {
		q = q.Where("requester_id IN ?", requesterIDs)
	}

	var ms []visitRequestModel
	if err := q.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	reqs := make([]domain.VisitRequest, 0, len(ms))
	for _, m := range ms {
		reqs = append(reqs, *toDomainRequest(m))
	}
	return reqs, nil
}

func (r *VisitRequestRepository) Update(ctx context.Context, v *domain.VisitRequest) error {
	m := toRequestModel(v)
	return r.db.WithContext(ctx).Save(&m).Error
}
