package clients

import (
	"context"
	"errors"
	"strings"

	"fieldops/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrValidation     = errors.New("client payload is invalid")
	ErrClientNotFound = errors.New("client not found")
)

type ClientRepository interface {
	UpsertByCode(ctx context.Context, cl *domain.Client) error
	GetByCode(ctx context.Context, code string) (*domain.Client, error)
}

type Service struct {
	repo   ClientRepository
	logger *zap.Logger
}

func NewService(repo ClientRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type UpsertInput struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url"`
	Active  *bool  `json:"active"`
}

// Upsert creates or refreshes a tenant keyed by its code. Absent active flag
// defaults to enabled so provisioning a new tenant is a one-field call.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.Client, error) {
	code := strings.TrimSpace(strings.ToLower(in.Code))
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, ErrValidation
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	cl := &domain.Client{
		Code:    code,
		Name:    name,
		LogoURL: strings.TrimSpace(in.LogoURL),
		Active:  active,
	}
	if err := s.repo.UpsertByCode(ctx, cl); err != nil {
		s.logger.Error("client upsert failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("client upserted", zap.String("code", code), zap.Int64("id", cl.ID))
	return cl, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Client, error) {
	cl, err := s.repo.GetByCode(ctx, strings.TrimSpace(strings.ToLower(code)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	return cl, err
}
