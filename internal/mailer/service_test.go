package mailer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldops/internal/domain"
	"fieldops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockTenantSource struct{ mock.Mock }

func (m *MockTenantSource) ListActive(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

type MockVisitSource struct{ mock.Mock }

func (m *MockVisitSource) ListAll(ctx context.Context, f repository.VisitFilter) ([]domain.VisitSnapshot, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitSnapshot), args.Error(1)
}

type MockPresenceSource struct{ mock.Mock }

func (m *MockPresenceSource) ListRange(ctx context.Context, clientID int64, dayFrom, dayTo string, userIDs []int64) ([]domain.PresenceRecord, error) {
	args := m.Called(ctx, clientID, dayFrom, dayTo, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PresenceRecord), args.Error(1)
}

type MockUserSource struct{ mock.Mock }

func (m *MockUserSource) ListByClient(ctx context.Context, clientID int64) ([]domain.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserSource) ListEmailsByRoles(ctx context.Context, clientID int64, roles []string) ([]string, error) {
	args := m.Called(ctx, clientID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) Send(to []string, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func newTestService(tenants *MockTenantSource, visits *MockVisitSource, presence *MockPresenceSource, users *MockUserSource, sender *MockSender) *Service {
	return NewService(tenants, visits, presence, users, sender, zap.NewNop())
}

func TestRun_CountsFailedSendsButContinues(t *testing.T) {
	tenants := new(MockTenantSource)
	visitsSrc := new(MockVisitSource)
	presence := new(MockPresenceSource)
	users := new(MockUserSource)
	sender := new(MockSender)

	tenants.On("ListActive", mock.Anything).Return([]domain.Client{{ID: 1, Code: "acme", Name: "Acme"}}, nil)
	users.On("ListEmailsByRoles", mock.Anything, int64(1), adminRoles).
		Return([]string{"a@acme.test", "b@acme.test"}, nil)
	visitsSrc.On("ListAll", mock.Anything, mock.Anything).Return([]domain.VisitSnapshot{}, nil)
	presence.On("ListRange", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PresenceRecord{}, nil)
	users.On("ListByClient", mock.Anything, int64(1)).Return([]domain.User{}, nil)

	sender.On("Send", []string{"a@acme.test"}, mock.Anything, mock.Anything).Return(errors.New("mailbox full"))
	sender.On("Send", []string{"b@acme.test"}, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(tenants, visitsSrc, presence, users, sender)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Recipients: 2, Sent: 1}, res)
}

func TestRun_SkipsTenantWithoutRecipients(t *testing.T) {
	tenants := new(MockTenantSource)
	users := new(MockUserSource)
	sender := new(MockSender)

	tenants.On("ListActive", mock.Anything).Return([]domain.Client{{ID: 1, Code: "acme"}}, nil)
	users.On("ListEmailsByRoles", mock.Anything, int64(1), adminRoles).Return([]string{}, nil)

	svc := newTestService(tenants, new(MockVisitSource), new(MockPresenceSource), users, sender)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	sender.AssertNotCalled(t, "Send")
}

func TestRun_VisitQueryFailureStillSends(t *testing.T) {
	tenants := new(MockTenantSource)
	visitsSrc := new(MockVisitSource)
	presence := new(MockPresenceSource)
	users := new(MockUserSource)
	sender := new(MockSender)

	tenants.On("ListActive", mock.Anything).Return([]domain.Client{{ID: 1, Code: "acme", Name: "Acme"}}, nil)
	users.On("ListEmailsByRoles", mock.Anything, int64(1), adminRoles).Return([]string{"a@acme.test"}, nil)
	visitsSrc.On("ListAll", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	presence.On("ListRange", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PresenceRecord{}, nil)
	users.On("ListByClient", mock.Anything, int64(1)).Return([]domain.User{}, nil)
	sender.On("Send", mock.Anything, mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "No visits were recorded.")
	})).Return(nil)

	svc := newTestService(tenants, visitsSrc, presence, users, sender)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Recipients: 1, Sent: 1}, res)
}

func TestHandler_RequiresSchedulerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tenants := new(MockTenantSource)
	tenants.On("ListActive", mock.Anything).Return([]domain.Client{}, nil)

	svc := newTestService(tenants, new(MockVisitSource), new(MockPresenceSource), new(MockUserSource), new(MockSender))
	h := NewHandler(svc, "")

	r := gin.New()
	h.RegisterRoutes(r.Group("/internal"))

	// No marker header at all.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/internal/daily-report", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Without a configured token, any single marker header is enough.
	for _, header := range []string{"X-Cron-Signature", "Authorization", "X-Internal-Scheduler"} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/internal/daily-report", nil)
		req.Header.Set(header, "anything")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, header)
	}
}

func TestHandler_TokenRestrictsAuthorizationHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tenants := new(MockTenantSource)
	tenants.On("ListActive", mock.Anything).Return([]domain.Client{}, nil)

	svc := newTestService(tenants, new(MockVisitSource), new(MockPresenceSource), new(MockUserSource), new(MockSender))
	h := NewHandler(svc, "cron-secret")

	r := gin.New()
	h.RegisterRoutes(r.Group("/internal"))

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"wrong bearer", "Authorization", "Bearer nope", http.StatusUnauthorized},
		{"raw value", "Authorization", "cron-secret", http.StatusUnauthorized},
		{"matching bearer", "Authorization", "Bearer cron-secret", http.StatusOK},
		{"cron signature unaffected", "X-Cron-Signature", "anything", http.StatusOK},
		{"scheduler marker unaffected", "X-Internal-Scheduler", "1", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/internal/daily-report", nil)
		req.Header.Set(tc.header, tc.value)
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.name)
	}
}
