package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrefRepository is the database fallback for per-user preference keys when
// Redis is not configured.
type PrefRepository struct {
	db *gorm.DB
}

func NewPrefRepository(db *gorm.DB) *PrefRepository {
	return &PrefRepository{db: db}
}

type prefModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;uniqueIndex:idx_pref_key"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_pref_key"`
	Key       string    `gorm:"column:key;uniqueIndex:idx_pref_key"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (prefModel) TableName() string { return "user_preferences" }

func (r *PrefRepository) Get(ctx context.Context, clientID, userID int64, key string) (string, bool, error) {
	var m prefModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ? AND user_id = ? AND key = ?", clientID, userID, key).
		First(&m)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if tx.Error != nil {
		return "", false, tx.Error
	}
	return m.Value, true, nil
}

func (r *PrefRepository) Set(ctx context.Context, clientID, userID int64, key, value string) error {
	m := prefModel{
		ClientID: clientID,
		UserID:   userID,
		Key:      key,
		Value:    value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (r *PrefRepository) Clear(ctx context.Context, clientID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND user_id = ?", clientID, userID).
		Delete(&prefModel{}).Error
}
