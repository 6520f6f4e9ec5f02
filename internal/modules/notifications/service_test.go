package notifications

import (
	"context"
	"testing"

	"fieldops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if n != nil && args.Error(0) == nil {
		n.ID = 44
	}
	return args.Error(0)
}

func (m *MockNotificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) ListByClient(ctx context.Context, clientID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) Update(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func TestIsComplete_SingleTargetByAcknowledgement(t *testing.T) {
	n := &domain.Notification{
		TargetMode:  domain.TargetUsers,
		TargetUsers: []int64{7},
		Status:      "PENDING",
	}

	assert.False(t, n.IsComplete())

	n.CompletedBy = []int64{7}
	// Status never flipped, yet the single-target rule says complete.
	assert.True(t, n.IsComplete())
}

func TestIsComplete_MultiTargetNeedsStatusFlag(t *testing.T) {
	n := &domain.Notification{
		TargetMode:  domain.TargetUsers,
		TargetUsers: []int64{7, 8},
		CompletedBy: []int64{7, 8}, // everyone acked, but status decides
		Status:      "PENDING",
	}

	assert.False(t, n.IsComplete())

	n.Status = domain.NotificationCompleted
	assert.True(t, n.IsComplete())
}

func TestIsComplete_RoleTargetNeedsStatusFlag(t *testing.T) {
	n := &domain.Notification{
		TargetMode:  domain.TargetRoles,
		TargetRoles: []string{"promoter"},
		CompletedBy: []int64{7},
		Status:      "PENDING",
	}
	assert.False(t, n.IsComplete())
}

func TestBroadcast_ValidatesTargets(t *testing.T) {
	svc := NewService(new(MockNotificationRepo), new(MockUserRepo), nil, zap.NewNop())

	_, err := svc.Broadcast(context.Background(), 1, 2, BroadcastRequest{Title: "t", TargetMode: "ROLES"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Broadcast(context.Background(), 1, 2, BroadcastRequest{Title: "t", TargetMode: "USERS"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Broadcast(context.Background(), 1, 2, BroadcastRequest{Title: "t", TargetMode: "SOMETHING"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAcknowledge_IdempotentAndFlipsStatusWhenAllAcked(t *testing.T) {
	repo := new(MockNotificationRepo)
	n := &domain.Notification{
		ID:          44,
		ClientID:    1,
		TargetMode:  domain.TargetUsers,
		TargetUsers: []int64{7, 8},
		CompletedBy: []int64{7},
		Status:      "PENDING",
	}
	repo.On("GetByID", mock.Anything, int64(44)).Return(n, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, new(MockUserRepo), nil, zap.NewNop())

	got, err := svc.Acknowledge(context.Background(), 1, 8, domain.RolePromoter, 44)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 8}, got.CompletedBy)
	assert.Equal(t, domain.NotificationCompleted, got.Status)

	// Second ack from the same user changes nothing and skips the update.
	got2, err := svc.Acknowledge(context.Background(), 1, 8, domain.RolePromoter, 44)
	require.NoError(t, err)
	assert.Len(t, got2.CompletedBy, 2)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestAcknowledge_NonTargetRejected(t *testing.T) {
	repo := new(MockNotificationRepo)
	n := &domain.Notification{
		ID:          44,
		ClientID:    1,
		TargetMode:  domain.TargetUsers,
		TargetUsers: []int64{7},
	}
	repo.On("GetByID", mock.Anything, int64(44)).Return(n, nil)

	svc := NewService(repo, new(MockUserRepo), nil, zap.NewNop())

	_, err := svc.Acknowledge(context.Background(), 1, 99, domain.RolePromoter, 44)
	assert.ErrorIs(t, err, ErrNotTarget)
}

func TestListForUser_FiltersByTarget(t *testing.T) {
	repo := new(MockNotificationRepo)
	rows := []domain.Notification{
		{ID: 1, ClientID: 1, TargetMode: domain.TargetAll},
		{ID: 2, ClientID: 1, TargetMode: domain.TargetRoles, TargetRoles: []string{"mch"}},
		{ID: 3, ClientID: 1, TargetMode: domain.TargetUsers, TargetUsers: []int64{99}},
	}
	repo.On("ListByClient", mock.Anything, int64(1), 50).Return(rows, nil)

	svc := NewService(repo, new(MockUserRepo), nil, zap.NewNop())

	views, err := svc.ListForUser(context.Background(), 1, 7, domain.RoleMCH, 50)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.EqualValues(t, 1, views[0].ID)
	assert.EqualValues(t, 2, views[1].ID)
}
