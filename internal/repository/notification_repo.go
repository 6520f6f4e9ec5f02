package repository

import (
	"context"
	"encoding/json"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Target and acknowledgement lists are stored as JSON text so the same schema
// works on both PostgreSQL and SQLite.
type notificationModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ClientID    int64     `gorm:"column:client_id;index"`
	SenderID    int64     `gorm:"column:sender_id"`
	Title       string    `gorm:"column:title"`
	Message     string    `gorm:"column:message;type:text"`
	TargetMode  string    `gorm:"column:target_mode"`
	TargetRoles string    `gorm:"column:target_roles;type:text"`
	TargetUsers string    `gorm:"column:target_users;type:text"`
	Status      string    `gorm:"column:status"`
	CompletedBy string    `gorm:"column:completed_by;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	n := &domain.Notification{
		ID:         m.ID,
		ClientID:   m.ClientID,
		SenderID:   m.SenderID,
		Title:      m.Title,
		Message:    m.Message,
		TargetMode: domain.TargetMode(m.TargetMode),
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.TargetRoles != "" {
		_ = json.Unmarshal([]byte(m.TargetRoles), &n.TargetRoles)
	}
	if m.TargetUsers != "" {
		_ = json.Unmarshal([]byte(m.TargetUsers), &n.TargetUsers)
	}
	if m.CompletedBy != "" {
		_ = json.Unmarshal([]byte(m.CompletedBy), &n.CompletedBy)
	}
	return n
}

func toNotificationModel(n *domain.Notification) notificationModel {
	m := notificationModel{
		ID:         n.ID,
		ClientID:   n.ClientID,
		SenderID:   n.SenderID,
		Title:      n.Title,
		Message:    n.Message,
		TargetMode: string(n.TargetMode),
		Status:     n.Status,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
	if len(n.TargetRoles) > 0 {
		b, _ := json.Marshal(n.TargetRoles)
		m.TargetRoles = string(b)
	}
	if len(n.TargetUsers) > 0 {
		b, _ := json.Marshal(n.TargetUsers)
		m.TargetUsers = string(b)
	}
	if len(n.CompletedBy) > 0 {
		b, _ := json.Marshal(n.CompletedBy)
		m.CompletedBy = string(b)
	}
	return m
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := toNotificationModel(n)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var m notificationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainNotification(m), nil
}

// ListByClient returns the tenant's notifications newest-first; visibility
// filtering happens in the service.
func (r *NotificationRepository) ListByClient(ctx context.Context, clientID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var ms []notificationModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	notifs := make([]domain.Notification, 0, len(ms))
	for _, m := range ms {
		notifs = append(notifs, *toDomainNotification(m))
	}
	return notifs, nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	m := toNotificationModel(n)
	return r.db.WithContext(ctx).Save(&m).Error
}
