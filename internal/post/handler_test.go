package post

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

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID uint64, title, content, imageURL string) (*dbmysql.Post, error) {
	args := m.Called(ctx, authorID, title, content, imageURL)
	p, _ := args.Get(0).(*dbmysql.Post)
	return p, args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, authorID, postID uint64, title, content string) (*dbmysql.Post, error) {
	args := m.Called(ctx, authorID, postID, title, content)
	p, _ := args.Get(0).(*dbmysql.Post)
	return p, args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, actorID, postID uint64) error {
	return m.Called(ctx, actorID, postID).Error(0)
}

func (m *MockPostService) LikePost(ctx context.Context, userID, postID uint64) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockPostService) UnlikePost(ctx context.Context, userID, postID uint64) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockPostService) AddComment(ctx context.Context, userID, postID uint64, content string, parentID *uint64) (*dbmysql.Comment, error) {
	args := m.Called(ctx, userID, postID, content, parentID)
	c, _ := args.Get(0).(*dbmysql.Comment)
	return c, args.Error(1)
}

func (m *MockPostService) EditComment(ctx context.Context, userID, commentID uint64, content string) (*dbmysql.Comment, error) {
	args := m.Called(ctx, userID, commentID, content)
	c, _ := args.Get(0).(*dbmysql.Comment)
	return c, args.Error(1)
}

func (m *MockPostService) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	return m.Called(ctx, userID, commentID).Error(0)
}

func (m *MockPostService) PostComments(ctx context.Context, viewerID, postID uint64, page, perPage int) (common.Page[CommentView], error) {
	args := m.Called(ctx, viewerID, postID, page, perPage)
	return args.Get(0).(common.Page[CommentView]), args.Error(1)
}

func (m *MockPostService) CommentReplies(ctx context.Context, viewerID, commentID uint64) ([]CommentView, error) {
	args := m.Called(ctx, viewerID, commentID)
	replies, _ := args.Get(0).([]CommentView)
	return replies, args.Error(1)
}

var handlerTokens = common.NewTokenManager("post-secret", time.Hour)

func serve(t *testing.T, svc PostService, method, path string, body interface{}, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != 0 {
		token, err := handlerTokens.GenerateToken(userID, common.KindUser, 0)
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

func TestHandler_CreatePost(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint64
		setup      func(*MockPostService)
		wantStatus int
	}{
		{
			name:   "created",
			userID: 5,
			setup: func(svc *MockPostService) {
				svc.On("CreatePost", mock.Anything, uint64(5), "Hello", "first post", "").
					Return(&dbmysql.Post{ID: 1, AuthorID: 5, Title: "Hello", Content: "first post"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "profanity",
			userID: 5,
			setup: func(svc *MockPostService) {
				svc.On("CreatePost", mock.Anything, uint64(5), "Hello", "first post", "").
					Return(nil, common.ErrProfanity)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "anonymous",
			setup:      func(*MockPostService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPostService)
			tt.setup(svc)

			rec := serve(t, svc, http.MethodPost, "/posts",
				map[string]string{"title": "Hello", "content": "first post"}, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Likes(t *testing.T) {
	svc := new(MockPostService)
	svc.On("LikePost", mock.Anything, uint64(5), uint64(9)).Return(nil).Once()
	svc.On("LikePost", mock.Anything, uint64(5), uint64(9)).Return(common.ErrAlreadyLiked).Once()
	svc.On("UnlikePost", mock.Anything, uint64(5), uint64(10)).Return(common.ErrNotLiked).Once()

	rec := serve(t, svc, http.MethodPost, "/posts/9/like", nil, 5)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "post liked")

	rec = serve(t, svc, http.MethodPost, "/posts/9/like", nil, 5)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, svc, http.MethodDelete, "/posts/10/like", nil, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, svc, http.MethodPost, "/posts/abc/like", nil, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

func TestHandler_Comments(t *testing.T) {
	t.Run("reply", func(t *testing.T) {
		svc := new(MockPostService)
		parent := uint64(3)
		svc.On("AddComment", mock.Anything, uint64(5), uint64(9), "nice", &parent).
			Return(&dbmysql.Comment{ID: 4, PostID: 9, ParentID: &parent, Content: "nice"}, nil)

		rec := serve(t, svc, http.MethodPost, "/posts/9/comments",
			map[string]interface{}{"content": "nice", "parent_id": 3}, 5)
		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("anonymous listing", func(t *testing.T) {
		svc := new(MockPostService)
		svc.On("PostComments", mock.Anything, uint64(0), uint64(9), 2, 10).
			Return(common.NewPage([]CommentView{{ID: 4, PostID: 9, Content: "nice"}}, 2, 10, 11), nil)

		rec := serve(t, svc, http.MethodGet, "/posts/9/comments?page=2&per_page=10", nil, 0)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":11`)
		svc.AssertExpectations(t)
	})

	t.Run("hidden post", func(t *testing.T) {
		svc := new(MockPostService)
		svc.On("CommentReplies", mock.Anything, uint64(5), uint64(4)).Return(nil, common.ErrNotFound)

		rec := serve(t, svc, http.MethodGet, "/comments/4/replies", nil, 5)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete by someone else", func(t *testing.T) {
		svc := new(MockPostService)
		svc.On("DeleteComment", mock.Anything, uint64(6), uint64(4)).Return(common.ErrForbidden)

		rec := serve(t, svc, http.MethodDelete, "/comments/4", nil, 6)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
