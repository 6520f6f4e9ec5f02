package clients

import (
	"context"
	"testing"

	"fieldops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) UpsertByCode(ctx context.Context, cl *domain.Client) error {
	args := m.Called(ctx, cl)
	if args.Error(0) == nil {
		cl.ID = 42
	}
	return args.Error(0)
}

func (m *MockClientRepo) GetByCode(ctx context.Context, code string) (*domain.Client, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func TestUpsert_NormalizesCodeAndDefaultsActive(t *testing.T) {
	repo := new(MockClientRepo)
	repo.On("UpsertByCode", mock.Anything, mock.MatchedBy(func(cl *domain.Client) bool {
		return cl.Code == "acme" && cl.Active
	})).Return(nil)

	svc := NewService(repo, zap.NewNop())

	cl, err := svc.Upsert(context.Background(), UpsertInput{Code: "  ACME ", Name: "Acme Retail"})
	require.NoError(t, err)
	assert.Equal(t, "acme", cl.Code)
	assert.True(t, cl.Active)
	assert.EqualValues(t, 42, cl.ID)
}

func TestUpsert_ExplicitInactive(t *testing.T) {
	repo := new(MockClientRepo)
	repo.On("UpsertByCode", mock.Anything, mock.MatchedBy(func(cl *domain.Client) bool {
		return !cl.Active
	})).Return(nil)

	svc := NewService(repo, zap.NewNop())

	inactive := false
	_, err := svc.Upsert(context.Background(), UpsertInput{Code: "acme", Name: "Acme", Active: &inactive})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpsert_RejectsBlankFields(t *testing.T) {
	svc := NewService(new(MockClientRepo), zap.NewNop())

	_, err := svc.Upsert(context.Background(), UpsertInput{Code: "   ", Name: "Acme"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetByCode_MapsRecordNotFound(t *testing.T) {
	repo := new(MockClientRepo)
	repo.On("GetByCode", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, zap.NewNop())

	_, err := svc.GetByCode(context.Background(), "GHOST")
	assert.ErrorIs(t, err, ErrClientNotFound)
}
