package notifications

import (
	"context"
	"errors"
	"fmt"

	"fieldops/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("notification not found")
	ErrNotTarget  = errors.New("notification does not target this user")
)

type Service struct {
	repo   NotificationRepository
	users  UserRepository
	hub    *Hub
	logger *zap.Logger
}

func NewService(repo NotificationRepository, users UserRepository, hub *Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		hub:    hub,
		logger: logger,
	}
}

type BroadcastRequest struct {
	Title       string   `json:"title" binding:"required"`
	Message     string   `json:"message"`
	TargetMode  string   `json:"target_mode" binding:"required"`
	TargetRoles []string `json:"target_roles"`
	TargetUsers []int64  `json:"target_users"`
}

func (s *Service) Broadcast(ctx context.Context, clientID, senderID int64, req BroadcastRequest) (*domain.Notification, error) {
	mode := domain.TargetMode(req.TargetMode)
	switch mode {
	case domain.TargetAll:
	case domain.TargetRoles:
		if len(req.TargetRoles) == 0 {
			return nil, ErrValidation
		}
	case domain.TargetUsers:
		if len(req.TargetUsers) == 0 {
			return nil, ErrValidation
		}
	default:
		return nil, ErrValidation
	}

	n := &domain.Notification{
		ClientID:    clientID,
		SenderID:    senderID,
		Title:       req.Title,
		Message:     req.Message,
		TargetMode:  mode,
		TargetRoles: req.TargetRoles,
		TargetUsers: req.TargetUsers,
		Status:      "PENDING",
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.pushToTargets(ctx, n)
	return n, nil
}

func (s *Service) pushToTargets(ctx context.Context, n *domain.Notification) {
	if s.hub == nil {
		return
	}

	var targets []int64
	if n.TargetMode == domain.TargetUsers {
		targets = n.TargetUsers
	} else {
		users, err := s.users.ListByClient(ctx, n.ClientID)
		if err != nil {
			s.logger.Warn("notification push target lookup failed", zap.Error(err))
			return
		}
		for _, u := range users {
			if n.Targets(u.ID, u.Role) {
				targets = append(targets, u.ID)
			}
		}
	}

	s.hub.Push(targets, &FeedEvent{Type: EventNotificationNew, Payload: n})
}

// NotificationView decorates a row with the caller-specific flags the portal
// renders.
type NotificationView struct {
	domain.Notification
	Completed    bool `json:"completed"`
	Acknowledged bool `json:"acknowledged"`
}

// ListForUser returns the notifications visible to the caller, newest first.
func (s *Service) ListForUser(ctx context.Context, clientID, userID int64, role domain.UserRole, limit int) ([]NotificationView, error) {
	all, err := s.repo.ListByClient(ctx, clientID, limit)
	if err != nil {
		s.logger.Error("notification list failed", zap.Error(err))
		return []NotificationView{}, nil
	}

	views := make([]NotificationView, 0, len(all))
	for _, n := range all {
		if !n.Targets(userID, role) && n.SenderID != userID {
			continue
		}
		views = append(views, NotificationView{
			Notification: n,
			Completed:    n.IsComplete(),
			Acknowledged: n.AcknowledgedBy(userID),
		})
	}
	return views, nil
}

// Acknowledge records the caller in completed_by. Idempotent. When every
// explicitly targeted user has acknowledged, the status flips to COMPLETED;
// ALL and ROLES broadcasts keep their status until an admin completes them.
func (s *Service) Acknowledge(ctx context.Context, clientID, userID int64, role domain.UserRole, id int64) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if n.ClientID != clientID {
		return nil, ErrNotFound
	}
	if !n.Targets(userID, role) {
		return nil, ErrNotTarget
	}

	if n.AcknowledgedBy(userID) {
		return n, nil
	}

	n.CompletedBy = append(n.CompletedBy, userID)
	if n.TargetMode == domain.TargetUsers && allAcked(n) {
		n.Status = domain.NotificationCompleted
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Push([]int64{n.SenderID}, &FeedEvent{
			Type:    EventNotificationAcked,
			Payload: map[string]int64{"notification_id": n.ID, "user_id": userID},
		})
	}
	return n, nil
}

func allAcked(n *domain.Notification) bool {
	for _, target := range n.TargetUsers {
		if !n.AcknowledgedBy(target) {
			return false
		}
	}
	return true
}

// NotifyRequestDecided is the hook the visit-request workflow calls.
func (s *Service) NotifyRequestDecided(ctx context.Context, clientID, requesterID, requestID int64, approved bool, note string) error {
	title := "Visit request rejected"
	verdict := "rejected"
	if approved {
		title = "Visit request approved"
		verdict = "approved"
	}
	msg := fmt.Sprintf("Your visit request #%d was %s", requestID, verdict)
	if note != "" {
		msg += ". Note: " + note
	}

	_, err := s.Broadcast(ctx, clientID, 0, BroadcastRequest{
		Title:       title,
		Message:     msg,
		TargetMode:  string(domain.TargetUsers),
		TargetUsers: []int64{requesterID},
	})
	return err
}
