package auth

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

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*dbmysql.User, error) {
	args := m.Called(ctx, username, email, password)
	user, _ := args.Get(0).(*dbmysql.User)
	return user, args.Error(1)
}

func (m *MockAuthService) VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error) {
	args := m.Called(ctx, email, code)
	res, _ := args.Get(0).(*AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	args := m.Called(ctx, identifier, password)
	res, _ := args.Get(0).(*AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthService) ModeratorLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthService) VerifyLoginOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	args := m.Called(ctx, email, code)
	res, _ := args.Get(0).(*AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthService) ResendLoginOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

func (m *MockAuthService) RequestPasswordChangeOTP(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint64, current, newPassword, code string) error {
	return m.Called(ctx, userID, current, newPassword, code).Error(0)
}

func (m *MockAuthService) SetOTPEnabled(ctx context.Context, userID uint64, enabled, confirm bool) error {
	return m.Called(ctx, userID, enabled, confirm).Error(0)
}

func (m *MockAuthService) RequestEmailUpdate(ctx context.Context, userID uint64, newEmail string) error {
	return m.Called(ctx, userID, newEmail).Error(0)
}

func (m *MockAuthService) VerifyEmailUpdate(ctx context.Context, userID uint64, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *MockAuthService) CreateModerator(ctx context.Context, username, email, password string, level common.ModLevel) (*dbmysql.Moderator, error) {
	args := m.Called(ctx, username, email, password, level)
	mod, _ := args.Get(0).(*dbmysql.Moderator)
	return mod, args.Error(1)
}

func (m *MockAuthService) ParseToken(token string) (*common.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*common.Claims)
	return claims, args.Error(1)
}

var testTokens = common.NewTokenManager("handler-secret", time.Hour)

func newTestRouter(svc AuthService) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware(testTokens))
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		setup    func(m *MockAuthService)
		wantCode int
	}{
		{
			name: "created",
			body: registerRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(&dbmysql.User{ID: 7, Username: "alice", Email: "alice@example.com"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "conflict",
			body: registerRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(nil, common.ErrConflict)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "unknown field",
			body:     map[string]string{"handle": "alice"},
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tc.setup(svc)
			rec := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, tc.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		result   *AuthResult
		err      error
		wantCode int
	}{
		{name: "token", result: &AuthResult{Token: "tok", Kind: common.KindUser, PrincipalID: 3}, wantCode: http.StatusOK},
		{name: "otp required", result: &AuthResult{OTPRequired: true, Kind: common.KindUser}, wantCode: http.StatusAccepted},
		{name: "bad credentials", err: common.ErrUnauthorized, wantCode: http.StatusUnauthorized},
		{name: "disabled", err: common.ErrAccountDisabled, wantCode: http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("Login", mock.Anything, "bob", "secret123").Return(tc.result, tc.err)

			rec := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/auth/login", "",
				loginRequest{Identifier: "bob", Password: "secret123"})
			require.Equal(t, tc.wantCode, rec.Code)
			if tc.result != nil {
				var got AuthResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, *tc.result, got)
			}
		})
	}
}

func TestHandler_ResendCooldown(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ResendLoginOTP", mock.Anything, "bob@example.com").Return(common.ErrOTPCooldown)

	rec := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/auth/resend-otp", "",
		emailRequest{Email: "bob@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandler_ChangePasswordRequiresUser(t *testing.T) {
	userToken, err := testTokens.GenerateToken(11, common.KindUser, 0)
	require.NoError(t, err)
	modToken, err := testTokens.GenerateToken(2, common.KindModerator, common.ModLevelUser)
	require.NoError(t, err)

	body := changePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret", Code: "123456"}

	t.Run("anonymous", func(t *testing.T) {
		svc := new(MockAuthService)
		rec := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/auth/password", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("moderator", func(t *testing.T) {
		svc := new(MockAuthService)
		rec := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/auth/password", modToken, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("user", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("ChangePassword", mock.Anything, uint64(11), "old-secret", "new-secret", "123456").Return(nil)
		rec := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/auth/password", userToken, body)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad token", func(t *testing.T) {
		svc := new(MockAuthService)
		rec := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/auth/password", "garbage", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_SetOTPEnabled(t *testing.T) {
	token, err := testTokens.GenerateToken(5, common.KindUser, 0)
	require.NoError(t, err)

	svc := new(MockAuthService)
	svc.On("SetOTPEnabled", mock.Anything, uint64(5), false, false).
		Return(common.ErrInvalidInput)
	svc.On("SetOTPEnabled", mock.Anything, uint64(5), false, true).Return(nil)
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/auth/otp", token, otpToggleRequest{Enabled: false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/auth/otp", token, otpToggleRequest{Enabled: false, Confirm: true})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
