package repository

import (
	"time"

	"gorm.io/gorm"
)

// Step-report rows are read through raw scans, so their models live here
// purely for schema migration. Filtering against the parent visit happens in
// ReportRepository.List.

type availabilityModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;index"`
	VisitID   int64     `gorm:"column:visit_id;index"`
	SKU       string    `gorm:"column:sku"`
	Available bool      `gorm:"column:available"`
	Quantity  int       `gorm:"column:quantity"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (availabilityModel) TableName() string { return "availability_reports" }

type damageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ClientID   int64     `gorm:"column:client_id;index"`
	VisitID    int64     `gorm:"column:visit_id;index"`
	SKU        string    `gorm:"column:sku"`
	Quantity   int       `gorm:"column:quantity"`
	DamageKind string    `gorm:"column:damage_kind"`
	PhotoURL   string    `gorm:"column:photo_url"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (damageModel) TableName() string { return "damage_reports" }

type warehouseCountModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;index"`
	VisitID   int64     `gorm:"column:visit_id;index"`
	SKU       string    `gorm:"column:sku"`
	Counted   int       `gorm:"column:counted"`
	Expected  int       `gorm:"column:expected"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (warehouseCountModel) TableName() string { return "warehouse_counts" }

type shelfShareModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	ClientID     int64     `gorm:"column:client_id;index"`
	VisitID      int64     `gorm:"column:visit_id;index"`
	Category     string    `gorm:"column:category"`
	OwnFacings   int       `gorm:"column:own_facings"`
	TotalFacings int       `gorm:"column:total_facings"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (shelfShareModel) TableName() string { return "shelf_share_reports" }

type competitorActivityModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ClientID   int64     `gorm:"column:client_id;index"`
	VisitID    int64     `gorm:"column:visit_id;index"`
	Competitor string    `gorm:"column:competitor"`
	Activity   string    `gorm:"column:activity"`
	PhotoURL   string    `gorm:"column:photo_url"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (competitorActivityModel) TableName() string { return "competitor_activities" }

type promoterReportModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;index"`
	VisitID   int64     `gorm:"column:visit_id;index"`
	SKU       string    `gorm:"column:sku"`
	SoldUnits int       `gorm:"column:sold_units"`
	Sampling  int       `gorm:"column:sampling"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (promoterReportModel) TableName() string { return "promoter_reports" }

// Migrate creates or updates every table the portal reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientModel{},
		&userModel{},
		&marketModel{},
		&visitModel{},
		&visitRequestModel{},
		&notificationModel{},
		&presenceModel{},
		&prefModel{},
		&availabilityModel{},
		&damageModel{},
		&warehouseCountModel{},
		&shelfShareModel{},
		&competitorActivityModel{},
		&promoterReportModel{},
	)
}
