package notifications

import (
	"context"

	"fieldops/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByClient(ctx context.Context, clientID int64, limit int) ([]domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
}

type UserRepository interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.User, error)
}
