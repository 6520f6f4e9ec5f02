package mailer

import (
	"context"
	"time"

	"fieldops/internal/domain"
	"fieldops/internal/repository"

	"go.uber.org/zap"
)

type TenantSource interface {
	ListActive(ctx context.Context) ([]domain.Client, error)
}

type VisitSource interface {
	ListAll(ctx context.Context, f repository.VisitFilter) ([]domain.VisitSnapshot, error)
}

type PresenceSource interface {
	ListRange(ctx context.Context, clientID int64, dayFrom, dayTo string, userIDs []int64) ([]domain.PresenceRecord, error)
}

type UserSource interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.User, error)
	ListEmailsByRoles(ctx context.Context, clientID int64, roles []string) ([]string, error)
}

// Service builds and sends the daily visit digest for every active tenant.
type Service struct {
	tenants  TenantSource
	visits   VisitSource
	presence PresenceSource
	users    UserSource
	sender   Sender
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(tenants TenantSource, visits VisitSource, presence PresenceSource, users UserSource, sender Sender, logger *zap.Logger) *Service {
	return &Service{
		tenants:  tenants,
		visits:   visits,
		presence: presence,
		users:    users,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
}

// Result carries the best-effort delivery counters returned to the scheduler.
type Result struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
}

// adminRoles receive the daily report.
var adminRoles = []string{string(domain.RoleAdmin), string(domain.RoleSuperAdmin)}

// Run builds yesterday's digest per tenant and mails each recipient
// independently. A failed send is logged and skipped, never fatal; the
// counters tell the scheduler how lossy the run was.
func (s *Service) Run(ctx context.Context) (Result, error) {
	day := s.now().AddDate(0, 0, -1).Format("2006-01-02")

	clients, err := s.tenants.ListActive(ctx)
	if err != nil {
		s.logger.Error("daily report: tenant list failed", zap.Error(err))
		return Result{}, err
	}

	var res Result
	for _, cl := range clients {
		res = s.runTenant(ctx, cl, day, res)
	}

	s.logger.Info("daily report finished",
		zap.String("day", day),
		zap.Int("recipients", res.Recipients),
		zap.Int("sent", res.Sent))
	return res, nil
}

func (s *Service) runTenant(ctx context.Context, cl domain.Client, day string, res Result) Result {
	log := s.logger.With(zap.String("client", cl.Code), zap.String("day", day))

	recipients, err := s.users.ListEmailsByRoles(ctx, cl.ID, adminRoles)
	if err != nil {
		log.Error("daily report: recipient lookup failed", zap.Error(err))
		return res
	}
	if len(recipients) == 0 {
		return res
	}

	snapshots, err := s.visits.ListAll(ctx, repository.VisitFilter{
		ClientID: cl.ID,
		DateFrom: day,
		DateTo:   day,
	})
	if err != nil {
		log.Error("daily report: visit query failed", zap.Error(err))
		snapshots = nil
	}
	presence, err := s.presence.ListRange(ctx, cl.ID, day, day, nil)
	if err != nil {
		log.Error("daily report: presence query failed", zap.Error(err))
		presence = nil
	}
	users, err := s.users.ListByClient(ctx, cl.ID)
	if err != nil {
		log.Error("daily report: user list failed", zap.Error(err))
		users = nil
	}

	body, err := BuildDigest(cl.Name, day, snapshots, presence, users).Render()
	if err != nil {
		log.Error("daily report: render failed", zap.Error(err))
		return res
	}

	subject := cl.Name + " field report " + day
	for _, rcpt := range recipients {
		res.Recipients++
		if err := s.sender.Send([]string{rcpt}, subject, body); err != nil {
			log.Error("daily report: send failed", zap.String("to", rcpt), zap.Error(err))
			continue
		}
		res.Sent++
	}
	return res
}
