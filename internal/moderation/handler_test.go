package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialhub/internal/audit"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) SubmitReport(ctx context.Context, reporterID uint64, target common.ReportTarget, targetID uint64, reason string) (*dbmysql.Report, error) {
	args := m.Called(ctx, reporterID, target, targetID, reason)
	report, _ := args.Get(0).(*dbmysql.Report)
	return report, args.Error(1)
}

func (m *MockModerationService) ReportQueue(ctx context.Context, level common.ModLevel) ([]dbmysql.Report, error) {
	args := m.Called(ctx, level)
	reports, _ := args.Get(0).([]dbmysql.Report)
	return reports, args.Error(1)
}

func (m *MockModerationService) Reports(ctx context.Context, level common.ModLevel, page, perPage int) (common.Page[dbmysql.Report], error) {
	args := m.Called(ctx, level, page, perPage)
	return args.Get(0).(common.Page[dbmysql.Report]), args.Error(1)
}

func (m *MockModerationService) Report(ctx context.Context, level common.ModLevel, reportID uint64) (*dbmysql.Report, error) {
	args := m.Called(ctx, level, reportID)
	report, _ := args.Get(0).(*dbmysql.Report)
	return report, args.Error(1)
}

func (m *MockModerationService) ReviewReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	args := m.Called(ctx, mod, reportID)
	report, _ := args.Get(0).(*dbmysql.Report)
	return report, args.Error(1)
}

func (m *MockModerationService) ResolveReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	args := m.Called(ctx, mod, reportID)
	report, _ := args.Get(0).(*dbmysql.Report)
	return report, args.Error(1)
}

func (m *MockModerationService) RejectReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	args := m.Called(ctx, mod, reportID)
	report, _ := args.Get(0).(*dbmysql.Report)
	return report, args.Error(1)
}

func (m *MockModerationService) DisableUser(ctx context.Context, mod common.Principal, reportID uint64, days int) (time.Time, error) {
	args := m.Called(ctx, mod, reportID, days)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockModerationService) RemoveReportedPost(ctx context.Context, mod common.Principal, reportID uint64) error {
	return m.Called(ctx, mod, reportID).Error(0)
}

func (m *MockModerationService) RemoveReportedComment(ctx context.Context, mod common.Principal, reportID uint64) error {
	return m.Called(ctx, mod, reportID).Error(0)
}

func (m *MockModerationService) ApplicationLog(ctx context.Context, filter audit.LogFilter, page, perPage int) (common.Page[dbmysql.ApplicationLog], error) {
	args := m.Called(ctx, filter, page, perPage)
	return args.Get(0).(common.Page[dbmysql.ApplicationLog]), args.Error(1)
}

var handlerTokens = common.NewTokenManager("moderation-secret", time.Hour)

func do(t *testing.T, svc ModerationService, method, path string, body interface{}, p *common.Principal) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if p != nil {
		token, err := handlerTokens.GenerateToken(p.ID, p.Kind, p.ModLevel)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	r := mux.NewRouter()
	r.Use(common.AuthMiddleware(handlerTokens))
	NewHandler(svc).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SubmitReport(t *testing.T) {
	reporter := &common.Principal{ID: 3, Kind: common.KindUser}

	t.Run("created", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("SubmitReport", mock.Anything, uint64(3), common.TargetPost, uint64(10), "spam").
			Return(&dbmysql.Report{ID: 1, TargetType: common.TargetPost, TargetID: 10, Status: common.ReportPending}, nil)

		rec := do(t, svc, http.MethodPost, "/reports",
			map[string]interface{}{"target_type": "Post", "target_id": 10, "reason": "spam"}, reporter)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"Pending"`)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("SubmitReport", mock.Anything, uint64(3), common.TargetUser, uint64(4), "abuse").
			Return(nil, common.ErrConflict)

		rec := do(t, svc, http.MethodPost, "/reports",
			map[string]interface{}{"target_type": "User", "target_id": 4, "reason": "abuse"}, reporter)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("moderators cannot report", func(t *testing.T) {
		svc := new(MockModerationService)
		rec := do(t, svc, http.MethodPost, "/reports",
			map[string]interface{}{"target_type": "User", "target_id": 4, "reason": "abuse"}, &userMod)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "SubmitReport")
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := do(t, new(MockModerationService), http.MethodPost, "/reports", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_ModeratorRoutes(t *testing.T) {
	t.Run("users are forbidden", func(t *testing.T) {
		svc := new(MockModerationService)
		rec := do(t, svc, http.MethodGet, "/moderation/reports/queue", nil, &common.Principal{ID: 3, Kind: common.KindUser})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("queue", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("ReportQueue", mock.Anything, common.ModLevelContent).Return(nil, nil)

		rec := do(t, svc, http.MethodGet, "/moderation/reports/queue", nil, &contentMod)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list with paging", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("Reports", mock.Anything, common.ModLevelUser, 2, 5).
			Return(common.NewPage([]dbmysql.Report{{ID: 9}}, 2, 5, 6), nil)

		rec := do(t, svc, http.MethodGet, "/moderation/reports?page=2&per_page=5", nil, &userMod)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":6`)
	})

	t.Run("review conflict", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("ReviewReport", mock.Anything, contentMod, uint64(7)).Return(nil, common.ErrInvalidTransition)

		rec := do(t, svc, http.MethodPost, "/moderation/reports/7/review", nil, &contentMod)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("resolve", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("ResolveReport", mock.Anything, contentMod, uint64(7)).
			Return(&dbmysql.Report{ID: 7, Status: common.ReportResolved}, nil)

		rec := do(t, svc, http.MethodPost, "/moderation/reports/7/resolve", nil, &contentMod)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"Resolved"`)
	})

	t.Run("disable user", func(t *testing.T) {
		until := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
		svc := new(MockModerationService)
		svc.On("DisableUser", mock.Anything, userMod, uint64(2), 7).Return(until, nil)

		rec := do(t, svc, http.MethodPost, "/moderation/reports/2/disable-user", map[string]int{"days": 7}, &userMod)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"disabled_until":"2024-03-08T12:00:00Z"`)
	})

	t.Run("remove comment forbidden", func(t *testing.T) {
		svc := new(MockModerationService)
		svc.On("RemoveReportedComment", mock.Anything, userMod, uint64(4)).Return(common.ErrForbidden)

		rec := do(t, svc, http.MethodPost, "/moderation/reports/4/remove-comment", nil, &userMod)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("logs filter", func(t *testing.T) {
		svc := new(MockModerationService)
		filter := audit.LogFilter{UserID: 12, Action: common.ActionDeletePost}
		svc.On("ApplicationLog", mock.Anything, filter, 1, 20).
			Return(common.NewPage([]dbmysql.ApplicationLog{{ID: 1, UserID: 12, Action: common.ActionDeletePost}}, 1, 20, 1), nil)

		rec := do(t, svc, http.MethodGet, "/moderation/logs?user_id=12&action=delete_post", nil, &contentMod)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"action":"delete_post"`)
		svc.AssertExpectations(t)
	})
}
