package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type MarketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

type marketModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;index"`
	Region    string    `gorm:"column:region"`
	City      string    `gorm:"column:city"`
	Store     string    `gorm:"column:store"`
	Branch    string    `gorm:"column:branch"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (marketModel) TableName() string { return "markets" }

func toDomainMarket(m marketModel) *domain.Market {
	return &domain.Market{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Region:    m.Region,
		City:      m.City,
		Store:     m.Store,
		Branch:    m.Branch,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *MarketRepository) Create(ctx context.Context, mk *domain.Market) error {
	m := marketModel{
		ID:       mk.ID,
		ClientID: mk.ClientID,
		Region:   mk.Region,
		City:     mk.City,
		Store:    mk.Store,
		Branch:   mk.Branch,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*mk = *toDomainMarket(m)
	return nil
}

func (r *MarketRepository) GetByID(ctx context.Context, id int64) (*domain.Market, error) {
	var m marketModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMarket(m), nil
}

func (r *MarketRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Market, error) {
	var ms []marketModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("store ASC, branch ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	markets := make([]domain.Market, 0, len(ms))
	for _, m := range ms {
		markets = append(markets, *toDomainMarket(m))
	}
	return markets, nil
}

func (r *MarketRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Market, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []marketModel
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	markets := make([]domain.Market, 0, len(ms))
	for _, m := range ms {
		markets = append(markets, *toDomainMarket(m))
	}
	return markets, nil
}
