package prefs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, clientID, userID int64, key string) (string, bool, error) {
	args := m.Called(ctx, clientID, userID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, clientID, userID int64, key, value string) error {
	return m.Called(ctx, clientID, userID, key, value).Error(0)
}

func (m *MockStore) Clear(ctx context.Context, clientID, userID int64) error {
	return m.Called(ctx, clientID, userID).Error(0)
}

func TestGet_UnknownKeyRejected(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, zap.NewNop())

	_, _, err := svc.Get(context.Background(), 1, 7, "cookie_jar")
	assert.ErrorIs(t, err, ErrUnknownKey)
	store.AssertNotCalled(t, "Get")
}

func TestGet_StoreFailureDegradesToUnset(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, int64(1), int64(7), "theme").
		Return("", false, errors.New("connection refused"))

	svc := NewService(store, zap.NewNop())

	value, ok, err := svc.Get(context.Background(), 1, 7, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSet_TruncatesOversizedValue(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, int64(1), int64(7), "saved_filters", mock.MatchedBy(func(v string) bool {
		return len(v) == maxValueLen
	})).Return(nil)

	svc := NewService(store, zap.NewNop())

	err := svc.Set(context.Background(), 1, 7, "saved_filters", strings.Repeat("x", maxValueLen+100))
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSet_RoundTrip(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, int64(1), int64(7), "language", "ar").Return(nil)
	store.On("Get", mock.Anything, int64(1), int64(7), "language").Return("ar", true, nil)

	svc := NewService(store, zap.NewNop())

	require.NoError(t, svc.Set(context.Background(), 1, 7, "language", "ar"))

	value, ok, err := svc.Get(context.Background(), 1, 7, "language")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ar", value)
}
