package media

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, p *Photo) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPhotoRepo) GetByID(ctx context.Context, clientID int64, id string) (*Photo, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Photo), args.Error(1)
}

func (m *MockPhotoRepo) GetAnyByID(ctx context.Context, id string) (*Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Photo), args.Error(1)
}

func (m *MockPhotoRepo) ListByUser(ctx context.Context, clientID, userID int64) ([]*Photo, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Photo), args.Error(1)
}

func testPhoto() *Photo {
	return &Photo{
		ID:       "abc-123",
		ClientID: 1,
		UserID:   7,
		FilePath: "2026/03/10/abc-123_shelf.jpg",
		MimeType: "image/jpeg",
	}
}

func TestURL_SignedWhenSecretConfigured(t *testing.T) {
	repo := new(MockPhotoRepo)
	repo.On("GetByID", mock.Anything, int64(1), "abc-123").Return(testPhoto(), nil)

	svc := NewService(repo, NewSigner("topsecret", 15*time.Minute), "./uploads", "/static/uploads", nil, zap.NewNop())

	url, err := svc.URL(context.Background(), 1, "abc-123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/api/v1/media/object/abc-123?exp="))
	assert.Contains(t, url, "&sig=")
}

func TestURL_FallsBackToPublicWithoutSecret(t *testing.T) {
	repo := new(MockPhotoRepo)
	repo.On("GetByID", mock.Anything, int64(1), "abc-123").Return(testPhoto(), nil)

	svc := NewService(repo, NewSigner("", 15*time.Minute), "./uploads", "/static/uploads", nil, zap.NewNop())

	url, err := svc.URL(context.Background(), 1, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/2026/03/10/abc-123_shelf.jpg", url)
}

func TestURL_NotFoundInOtherTenant(t *testing.T) {
	repo := new(MockPhotoRepo)
	repo.On("GetByID", mock.Anything, int64(2), "abc-123").Return(nil, ErrPhotoNotFound)

	svc := NewService(repo, nil, "./uploads", "/static/uploads", nil, zap.NewNop())

	_, err := svc.URL(context.Background(), 2, "abc-123")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestObject_RejectsWhenSigningDisabled(t *testing.T) {
	svc := NewService(new(MockPhotoRepo), nil, "./uploads", "/static/uploads", nil, zap.NewNop())

	_, _, err := svc.Object(context.Background(), "abc-123", "123", "deadbeef")
	assert.ErrorIs(t, err, ErrBadSignature)
}
