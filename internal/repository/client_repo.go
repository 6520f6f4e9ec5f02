package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

type clientModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	LogoURL   string    `gorm:"column:logo_url"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientModel) TableName() string { return "clients" }

func toDomainClient(m clientModel) *domain.Client {
	return &domain.Client{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		LogoURL:   m.LogoURL,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UpsertByCode inserts or refreshes a tenant row keyed by its code.
func (r *ClientRepository) UpsertByCode(ctx context.Context, cl *domain.Client) error {
	m := clientModel{
		Code:    cl.Code,
		Name:    cl.Name,
		LogoURL: cl.LogoURL,
		Active:  cl.Active,
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "logo_url", "active", "updated_at"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	stored, err := r.GetByCode(ctx, cl.Code)
	if err != nil {
		return err
	}
	*cl = *stored
	return nil
}

// ListActive returns every enabled tenant, for jobs that fan out per client.
func (r *ClientRepository) ListActive(ctx context.Context) ([]domain.Client, error) {
	var models []clientModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	clients := make([]domain.Client, 0, len(models))
	for _, m := range models {
		clients = append(clients, *toDomainClient(m))
	}
	return clients, nil
}

func (r *ClientRepository) GetByCode(ctx context.Context, code string) (*domain.Client, error) {
	var m clientModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainClient(m), nil
}
