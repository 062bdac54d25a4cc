package profile

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialhub/internal/cache"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/feed"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) SendFollowRequest(ctx context.Context, requesterID, targetID uint64) (common.FollowStatus, error) {
	args := m.Called(ctx, requesterID, targetID)
	return args.Get(0).(common.FollowStatus), args.Error(1)
}

func (m *MockProfileService) RespondToFollowRequest(ctx context.Context, targetID, requesterID uint64, action string) (common.FollowStatus, error) {
	args := m.Called(ctx, targetID, requesterID, action)
	return args.Get(0).(common.FollowStatus), args.Error(1)
}

func (m *MockProfileService) CancelFollowRequest(ctx context.Context, requesterID, targetID uint64) error {
	return m.Called(ctx, requesterID, targetID).Error(0)
}

func (m *MockProfileService) Unfollow(ctx context.Context, followerID, followedID uint64) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockProfileService) RemoveFollower(ctx context.Context, userID, followerID uint64) error {
	return m.Called(ctx, userID, followerID).Error(0)
}

func (m *MockProfileService) PendingRequests(ctx context.Context, userID uint64) ([]FollowEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]FollowEntry)
	return entries, args.Error(1)
}

func (m *MockProfileService) FollowStatus(ctx context.Context, requesterID, targetID uint64) (*FollowState, error) {
	args := m.Called(ctx, requesterID, targetID)
	state, _ := args.Get(0).(*FollowState)
	return state, args.Error(1)
}

func (m *MockProfileService) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) Followers(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(common.Page[FollowEntry]), args.Error(1)
}

func (m *MockProfileService) Following(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(common.Page[FollowEntry]), args.Error(1)
}

func (m *MockProfileService) Profile(ctx context.Context, viewerID, userID uint64) (*ProfileView, error) {
	args := m.Called(ctx, viewerID, userID)
	view, _ := args.Get(0).(*ProfileView)
	return view, args.Error(1)
}

func (m *MockProfileService) CanViewProfile(ctx context.Context, viewerID, userID uint64) (*Access, error) {
	args := m.Called(ctx, viewerID, userID)
	access, _ := args.Get(0).(*Access)
	return access, args.Error(1)
}

func (m *MockProfileService) CanSeePosts(ctx context.Context, viewerID, authorID uint64) (bool, error) {
	args := m.Called(ctx, viewerID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) UserPosts(ctx context.Context, viewerID, userID uint64, page, perPage int) (common.Page[feed.PostView], error) {
	args := m.Called(ctx, viewerID, userID, page, perPage)
	return args.Get(0).(common.Page[feed.PostView]), args.Error(1)
}

func (m *MockProfileService) Stats(ctx context.Context, userID uint64) (*cache.ProfileStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*cache.ProfileStats)
	return stats, args.Error(1)
}

func (m *MockProfileService) SuggestedUsers(ctx context.Context, userID uint64, limit int) ([]common.UserSummary, error) {
	args := m.Called(ctx, userID, limit)
	users, _ := args.Get(0).([]common.UserSummary)
	return users, args.Error(1)
}

func (m *MockProfileService) SearchUsers(ctx context.Context, query string, page, perPage int) (common.Page[common.UserSummary], error) {
	args := m.Called(ctx, query, page, perPage)
	return args.Get(0).(common.Page[common.UserSummary]), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate) (*dbmysql.User, error) {
	args := m.Called(ctx, userID, update)
	user, _ := args.Get(0).(*dbmysql.User)
	return user, args.Error(1)
}

func (m *MockProfileService) ChangeVisibility(ctx context.Context, userID uint64, visibility common.Visibility) (*dbmysql.User, error) {
	args := m.Called(ctx, userID, visibility)
	user, _ := args.Get(0).(*dbmysql.User)
	return user, args.Error(1)
}

func (m *MockProfileService) DeleteAccount(ctx context.Context, userID uint64, password string) error {
	return m.Called(ctx, userID, password).Error(0)
}

var handlerTokens = common.NewTokenManager("profile-secret", time.Hour)

func do(t *testing.T, svc ProfileService, method, path, body string, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.Use(common.AuthMiddleware(handlerTokens))
	NewHandler(svc).RegisterRoutes(r)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != 0 {
		token, err := handlerTokens.GenerateToken(userID, common.KindUser, 0)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Profile(t *testing.T) {
	svc := new(MockProfileService)
	svc.On("Profile", mock.Anything, uint64(0), uint64(5)).
		Return(&ProfileView{ID: 5, Username: "alice", Access: Access{CanView: true, CanSeePosts: true}}, nil)
	svc.On("Profile", mock.Anything, uint64(2), uint64(6)).Return(nil, common.ErrNotFound)

	rec := do(t, svc, http.MethodGet, "/users/5", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"can_see_posts":true`)

	rec = do(t, svc, http.MethodGet, "/users/6", "", 2)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Follow(t *testing.T) {
	svc := new(MockProfileService)
	svc.On("SendFollowRequest", mock.Anything, uint64(2), uint64(5)).Return(common.FollowPending, nil)
	svc.On("SendFollowRequest", mock.Anything, uint64(2), uint64(6)).Return(common.FollowAccepted, nil)
	svc.On("SendFollowRequest", mock.Anything, uint64(2), uint64(7)).Return(common.FollowStatus(""), common.ErrConflict)

	rec := do(t, svc, http.MethodPost, "/users/5/follow", "", 2)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	rec = do(t, svc, http.MethodPost, "/users/6/follow", "", 2)
	assert.Contains(t, rec.Body.String(), "now following user")

	rec = do(t, svc, http.MethodPost, "/users/7/follow", "", 2)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, svc, http.MethodPost, "/users/5/follow", "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_FollowRequests(t *testing.T) {
	svc := new(MockProfileService)
	svc.On("PendingRequests", mock.Anything, uint64(3)).
		Return([]FollowEntry{{User: common.UserSummary{ID: 9, Username: "bob"}}}, nil)
	svc.On("RespondToFollowRequest", mock.Anything, uint64(3), uint64(9), "accept").Return(common.FollowAccepted, nil)
	svc.On("CancelFollowRequest", mock.Anything, uint64(3), uint64(4)).Return(common.ErrNotFound)
	svc.On("RemoveFollower", mock.Anything, uint64(3), uint64(9)).Return(nil)

	rec := do(t, svc, http.MethodGet, "/users/me/follow-requests", "", 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = do(t, svc, http.MethodPost, "/users/me/follow-requests/9", `{"action":"accept"}`, 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"accepted"`)

	rec = do(t, svc, http.MethodDelete, "/users/4/follow-request", "", 3)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, svc, http.MethodDelete, "/users/me/followers/9", "", 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_ListsAndSearch(t *testing.T) {
	svc := new(MockProfileService)
	svc.On("Followers", mock.Anything, uint64(5), 2, 10).Return(common.NewPage([]FollowEntry{}, 2, 10, 11), nil)
	svc.On("SearchUsers", mock.Anything, "ali", 1, listPageSize).
		Return(common.NewPage([]common.UserSummary{{ID: 5, Username: "alice"}}, 1, listPageSize, 1), nil)
	svc.On("SuggestedUsers", mock.Anything, uint64(3), suggestionLimit).Return([]common.UserSummary{}, nil)

	rec := do(t, svc, http.MethodGet, "/users/5/followers?page=2&per_page=10", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":11`)

	rec = do(t, svc, http.MethodGet, "/users/search?q=ali", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = do(t, svc, http.MethodGet, "/users/suggestions", "", 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	svc := new(MockProfileService)
	bio := "hello"
	svc.On("UpdateProfile", mock.Anything, uint64(3), ProfileUpdate{Bio: &bio}).
		Return(&dbmysql.User{ID: 3, Username: "carol", Bio: bio}, nil)
	svc.On("ChangeVisibility", mock.Anything, uint64(3), common.VisibilityPrivate).
		Return(&dbmysql.User{ID: 3, Visibility: common.VisibilityPrivate}, nil)
	svc.On("DeleteAccount", mock.Anything, uint64(3), "wrong").Return(common.ErrUnauthorized)

	rec := do(t, svc, http.MethodPut, "/users/me", `{"bio":"hello"}`, 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bio":"hello"`)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = do(t, svc, http.MethodPut, "/users/me/visibility", `{"visibility":"Private"}`, 3)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, svc, http.MethodDelete, "/users/me", `{"password":"wrong"}`, 3)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, svc, http.MethodPut, "/users/me", `{"nickname":"x"}`, 3)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}
