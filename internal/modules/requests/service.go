package requests

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	requests VisitRequestRepository
	markets  MarketRepository
	users    UserRepository
	notifs   NotificationSender
	logger   *zap.Logger
}

func NewService(requests VisitRequestRepository, markets MarketRepository, users UserRepository, notifs NotificationSender, logger *zap.Logger) *Service {
	return &Service{
		requests: requests,
		markets:  markets,
		users:    users,
		notifs:   notifs,
		logger:   logger,
	}
}

func (s *Service) Submit(ctx context.Context, clientID, requesterID int64, req CreateRequest) (*domain.VisitRequest, error) {
	if req.MarketID == 0 || req.VisitDate == "" {
		return nil, ErrValidation
	}
	if _, err := time.Parse("2006-01-02", req.VisitDate); err != nil {
		return nil, ErrValidation
	}

	market, err := s.markets.GetByID(ctx, req.MarketID)
	if err != nil || market.ClientID != clientID {
		return nil, ErrMarketNotFound
	}

	vr := &domain.VisitRequest{
		ClientID:    clientID,
		RequesterID: requesterID,
		MarketID:    req.MarketID,
		VisitDate:   req.VisitDate,
		Reason:      req.Reason,
		DailyStatus: domain.RequestPending,
	}

	if err := s.requests.Create(ctx, vr); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateRequest
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	return vr, nil
}

// Markets returns the tenant's market directory for the request picker.
// Failures degrade to an empty list like the other read paths.
func (s *Service) Markets(ctx context.Context, clientID int64) ([]domain.Market, error) {
	markets, err := s.markets.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("market list failed", zap.Error(err))
		return []domain.Market{}, nil
	}
	return markets, nil
}

// List applies role visibility: managers see the tenant, team leaders their
// team, field roles their own requests.
func (s *Service) List(ctx context.Context, clientID, callerID int64, role domain.UserRole, status string) ([]domain.VisitRequest, error) {
	var requesterIDs []int64
	switch {
	case role.IsManager():
		requesterIDs = nil
	case role == domain.RoleTeamLeader:
		requesterIDs = []int64{callerID}
		reports, err := s.users.ListByTeamLeader(ctx, clientID, callerID)
		if err != nil {
			return nil, err
		}
		for _, u := range reports {
			requesterIDs = append(requesterIDs, u.ID)
		}
	default:
		requesterIDs = []int64{callerID}
	}

	list, err := s.requests.List(ctx, clientID, status, requesterIDs)
	if err != nil {
		s.logger.Error("visit request list failed", zap.Error(err))
		return []domain.VisitRequest{}, nil
	}
	return list, nil
}

// Decide moves a pending request to approved or rejected. Terminal states
// never transition again.
func (s *Service) Decide(ctx context.Context, clientID, approverID, requestID int64, approve bool, note string) (*domain.VisitRequest, error) {
	vr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vr.ClientID != clientID {
		return nil, ErrNotFound
	}
	if vr.DailyStatus.Terminal() {
		return nil, ErrAlreadyDecided
	}

	now := time.Now()
	if approve {
		vr.DailyStatus = domain.RequestApproved
	} else {
		vr.DailyStatus = domain.RequestRejected
	}
	vr.ApproverID = &approverID
	vr.DecidedAt = &now
	vr.DecisionNote = note

	if err := s.requests.Update(ctx, vr); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyRequestDecided(ctx, clientID, vr.RequesterID, vr.ID, approve, note); err != nil {
			s.logger.Warn("request decision notification failed",
				zap.Int64("request_id", vr.ID), zap.Error(err))
		}
	}

	return vr, nil
}

// Cancel lets the requester withdraw a still-pending request.
func (s *Service) Cancel(ctx context.Context, clientID, callerID, requestID int64) (*domain.VisitRequest, error) {
	vr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vr.ClientID != clientID {
		return nil, ErrNotFound
	}
	if vr.RequesterID != callerID {
		return nil, ErrNotRequester
	}
	if vr.DailyStatus.Terminal() {
		return nil, ErrAlreadyDecided
	}

	now := time.Now()
	vr.DailyStatus = domain.RequestCancelled
	vr.DecidedAt = &now

	if err := s.requests.Update(ctx, vr); err != nil {
		return nil, err
	}
	return vr, nil
}
