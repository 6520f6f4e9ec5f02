package visits

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/repository"
)

type VisitRepository interface {
	List(ctx context.Context, f repository.VisitFilter) ([]domain.VisitSnapshot, int64, error)
	ListAll(ctx context.Context, f repository.VisitFilter) ([]domain.VisitSnapshot, error)
}

type PresenceRepository interface {
	ListRange(ctx context.Context, clientID int64, dayFrom, dayTo string, userIDs []int64) ([]domain.PresenceRecord, error)
}

type UserRepository interface {
	ListByTeamLeader(ctx context.Context, clientID, leaderID int64) ([]domain.User, error)
}
