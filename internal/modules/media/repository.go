package media

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, clientID int64, id string) (*Photo, error)
	// GetAnyByID looks a photo up without tenant scoping. Only the signed
	// object route uses it, where the signature itself is the authorization.
	GetAnyByID(ctx context.Context, id string) (*Photo, error)
	ListByUser(ctx context.Context, clientID, userID int64) ([]*Photo, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, clientID int64, id string) (*Photo, error) {
	var p Photo
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetAnyByID(ctx context.Context, id string) (*Photo, error) {
	var p Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByUser(ctx context.Context, clientID, userID int64) ([]*Photo, error) {
	var photos []*Photo
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND user_id = ?", clientID, userID).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}
