package reports

import (
	"context"
	"errors"
	"testing"

	"fieldops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) List(ctx context.Context, table string, f repository.ReportFilter) ([]map[string]any, int64, error) {
	args := m.Called(ctx, table, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]map[string]any), args.Get(1).(int64), args.Error(2)
}

func TestList_UnknownTableRejectedBeforeSQL(t *testing.T) {
	repo := new(MockReportRepo)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.List(context.Background(), 1, "users; DROP TABLE users", ListQuery{})
	assert.ErrorIs(t, err, ErrUnknownTable)
	repo.AssertNotCalled(t, "List")
}

func TestList_ReturnsConfigWithRows(t *testing.T) {
	repo := new(MockReportRepo)
	rows := []map[string]any{{"sku": "A-1", "quantity": 3}}
	repo.On("List", mock.Anything, "damage_reports", mock.Anything).Return(rows, int64(1), nil)

	svc := NewService(repo, zap.NewNop())

	res, err := svc.List(context.Background(), 1, "damage_reports", ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Damage", res.Config.Title)
	assert.Len(t, res.Rows, 1)
	assert.EqualValues(t, 1, res.Total)
}

func TestList_QueryFailureDegradesToEmpty(t *testing.T) {
	repo := new(MockReportRepo)
	repo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, int64(0), errors.New("timeout"))

	svc := NewService(repo, zap.NewNop())

	res, err := svc.List(context.Background(), 1, "promoter_reports", ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestConfigFor_AllSixTablesPresent(t *testing.T) {
	for _, name := range []string{
		"availability_reports", "damage_reports", "warehouse_counts",
		"shelf_share_reports", "competitor_activities", "promoter_reports",
	} {
		cfg, ok := ConfigFor(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, cfg.Columns, name)
	}
}
