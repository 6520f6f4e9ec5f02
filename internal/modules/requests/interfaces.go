package requests

import (
	"context"

	"fieldops/internal/domain"
)

type VisitRequestRepository interface {
	Create(ctx context.Context, v *domain.VisitRequest) error
	GetByID(ctx context.Context, id int64) (*domain.VisitRequest, error)
	List(ctx context.Context, clientID int64, status string, requesterIDs []int64) ([]domain.VisitRequest, error)
	Update(ctx context.Context, v *domain.VisitRequest) error
}

type MarketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Market, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Market, error)
}

type UserRepository interface {
	ListByTeamLeader(ctx context.Context, clientID, leaderID int64) ([]domain.User, error)
}

// NotificationSender tells the requester about decisions on their request.
type NotificationSender interface {
	NotifyRequestDecided(ctx context.Context, clientID, requesterID, requestID int64, approved bool, note string) error
}
