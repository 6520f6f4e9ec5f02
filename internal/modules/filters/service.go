package filters

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/repository"

	"go.uber.org/zap"
)

type UserRepository interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.User, error)
}

type VisitRepository interface {
	ListAll(ctx context.Context, f repository.VisitFilter) ([]domain.VisitSnapshot, error)
}

type Service struct {
	users  UserRepository
	visits VisitRepository
	logger *zap.Logger
}

func NewService(users UserRepository, visits VisitRepository, logger *zap.Logger) *Service {
	return &Service{users: users, visits: visits, logger: logger}
}

// Funnel fetches the working set once and derives every level locally.
// Failed queries degrade to empty option sets.
func (s *Service) Funnel(ctx context.Context, clientID int64, dateFrom, dateTo string, prev, next Selections) (Selections, Options) {
	sel := Normalize(prev, next)

	users, err := s.users.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("funnel user query failed", zap.Error(err))
		return sel, Options{}
	}

	visits, err := s.visits.ListAll(ctx, repository.VisitFilter{
		ClientID: clientID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		s.logger.Error("funnel visit query failed", zap.Error(err))
		return sel, Options{}
	}

	return sel, Derive(users, visits, sel)
}
