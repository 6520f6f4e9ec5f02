package visits

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/pkg/timefmt"
	"fieldops/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	visits   VisitRepository
	presence PresenceRepository
	users    UserRepository
	logger   *zap.Logger
}

func NewService(visits VisitRepository, presence PresenceRepository, users UserRepository, logger *zap.Logger) *Service {
	return &Service{
		visits:   visits,
		presence: presence,
		users:    users,
		logger:   logger,
	}
}

// visibleUserIDs narrows the requested user filter by role: managers see the
// tenant, team leaders themselves plus their reports, field roles themselves.
func (s *Service) visibleUserIDs(ctx context.Context, caller Caller, requested []int64) ([]int64, error) {
	if caller.Role.IsManager() {
		return requested, nil
	}

	allowed := []int64{caller.UserID}
	if caller.Role == domain.RoleTeamLeader {
		reports, err := s.users.ListByTeamLeader(ctx, caller.ClientID, caller.UserID)
		if err != nil {
			return nil, err
		}
		for _, u := range reports {
			allowed = append(allowed, u.ID)
		}
	}

	if len(requested) == 0 {
		return allowed, nil
	}

	allowedSet := make(map[int64]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}
	var narrowed []int64
	for _, id := range requested {
		if allowedSet[id] {
			narrowed = append(narrowed, id)
		}
	}
	if narrowed == nil {
		// Nothing requested is visible; force an empty result rather than
		// silently widening to the allowed set.
		narrowed = []int64{-1}
	}
	return narrowed, nil
}

func (s *Service) List(ctx context.Context, caller Caller, q ListQuery) (*ListResult, error) {
	userIDs, err := s.visibleUserIDs(ctx, caller, q.UserIDs)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := repository.VisitFilter{
		ClientID:  caller.ClientID,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		UserIDs:   userIDs,
		MarketIDs: q.MarketIDs,
		JPState:   q.JPState,
	}

	var (
		rows  []domain.VisitSnapshot
		total int64
	)
	if q.Dedupe {
		// Dedupe needs the whole working set; paginate after collapsing.
		all, err := s.visits.ListAll(ctx, f)
		if err != nil {
			s.logger.Error("visit list query failed", zap.Error(err))
			return &ListResult{Visits: []VisitRow{}, Page: page, Limit: limit}, nil
		}
		deduped := BestPerMarket(all)
		total = int64(len(deduped))
		start := (page - 1) * limit
		if start > len(deduped) {
			start = len(deduped)
		}
		end := start + limit
		if end > len(deduped) {
			end = len(deduped)
		}
		rows = deduped[start:end]
	} else {
		f.Limit = limit
		f.Offset = (page - 1) * limit
		rows, total, err = s.visits.List(ctx, f)
		if err != nil {
			// List pages degrade to empty rather than erroring.
			s.logger.Error("visit list query failed", zap.Error(err))
			return &ListResult{Visits: []VisitRow{}, Page: page, Limit: limit}, nil
		}
	}

	out := make([]VisitRow, 0, len(rows))
	for _, v := range rows {
		out = append(out, VisitRow{
			VisitSnapshot: v,
			DerivedStatus: v.Status(),
			Duration:      timefmt.DiffColon(v.StartedAt, v.FinishedAt),
		})
	}

	return &ListResult{Visits: out, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Summary(ctx context.Context, caller Caller, q SummaryQuery) (*Summary, error) {
	userIDs, err := s.visibleUserIDs(ctx, caller, q.UserIDs)
	if err != nil {
		return nil, err
	}

	f := repository.VisitFilter{
		ClientID:  caller.ClientID,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		UserIDs:   userIDs,
		MarketIDs: q.MarketIDs,
		JPState:   q.JPState,
	}

	all, err := s.visits.ListAll(ctx, f)
	if err != nil {
		s.logger.Error("visit summary query failed", zap.Error(err))
		return &Summary{Users: []UserMetrics{}}, nil
	}

	deduped := BestPerMarket(all)

	sum := &Summary{Markets: len(deduped)}
	for _, v := range deduped {
		switch v.Status() {
		case domain.VisitFinished:
			sum.Finished++
		case domain.VisitEnded:
			sum.Ended++
		default:
			sum.Pending++
		}
	}

	presence, err := s.presence.ListRange(ctx, caller.ClientID, q.DateFrom, q.DateTo, userIDs)
	if err != nil {
		s.logger.Error("presence query failed", zap.Error(err))
		presence = nil
	}
	sum.Users = ComputeUserMetrics(deduped, presence)
	if sum.Users == nil {
		sum.Users = []UserMetrics{}
	}

	return sum, nil
}
