package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type PresenceRepository struct {
	db *gorm.DB
}

func NewPresenceRepository(db *gorm.DB) *PresenceRepository {
	return &PresenceRepository{db: db}
}

type presenceModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ClientID        int64     `gorm:"column:client_id;index"`
	UserID          int64     `gorm:"column:user_id;index"`
	Day             string    `gorm:"column:day;index"`
	PresenceSeconds int64     `gorm:"column:presence_seconds"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (presenceModel) TableName() string { return "presence_records" }

func (r *PresenceRepository) Create(ctx context.Context, p *domain.PresenceRecord) error {
	m := presenceModel{
		ID:              p.ID,
		ClientID:        p.ClientID,
		UserID:          p.UserID,
		Day:             p.Day,
		PresenceSeconds: p.PresenceSeconds,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

// ListRange returns raw presence rows for the period; duplicates per user-day
// are kept as stored, the metric layer picks the max.
func (r *PresenceRepository) ListRange(ctx context.Context, clientID int64, dayFrom, dayTo string, userIDs []int64) ([]domain.PresenceRecord, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if dayFrom != "" {
		q = q.Where("day >= ?", dayFrom)
	}
	if dayTo != "" {
		q = q.Where("day <= ?", dayTo)
	}
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}

	var ms []presenceModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	records := make([]domain.PresenceRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, domain.PresenceRecord{
			ID:              m.ID,
			ClientID:        m.ClientID,
			UserID:          m.UserID,
			Day:             m.Day,
			PresenceSeconds: m.PresenceSeconds,
			CreatedAt:       m.CreatedAt,
		})
	}
	return records, nil
}
