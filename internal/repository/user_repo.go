package repository

import (
	"context"
	"time"

	"fieldops/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	ClientID     int64     `gorm:"column:client_id;index"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	TeamLeaderID *int64    `gorm:"column:team_leader_id"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		ClientID:     m.ClientID,
		Username:     m.Username,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		TeamLeaderID: m.TeamLeaderID,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		ClientID:     u.ClientID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		TeamLeaderID: u.TeamLeaderID,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.User, error) {
	var ms []userModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ? AND active = ?", clientID, true).
		Order("name ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	users := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

// ListByTeamLeader returns the leader's direct reports.
func (r *UserRepository) ListByTeamLeader(ctx context.Context, clientID, leaderID int64) ([]domain.User, error) {
	var ms []userModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ? AND team_leader_id = ? AND active = ?", clientID, leaderID, true).
		Order("name ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	users := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

// ListEmailsByRoles returns the notification/mailer recipient set.
func (r *UserRepository) ListEmailsByRoles(ctx context.Context, clientID int64, roles []string) ([]string, error) {
	var emails []string
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("client_id = ? AND active = ? AND role IN ? AND email <> ''", clientID, true, roles).
		Pluck("email", &emails)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return emails, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}
