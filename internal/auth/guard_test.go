package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

func TestAccountGuard_CheckAccount(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name      string
		principal common.Principal
		mockSetup func(*MockAccountRepository)
		wantErr   error
	}{
		{
			name:      "active user",
			principal: common.Principal{ID: 1, Kind: common.KindUser},
			mockSetup: func(repo *MockAccountRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(&dbmysql.User{ID: 1}, nil)
			},
		},
		{
			name:      "suspension over",
			principal: common.Principal{ID: 1, Kind: common.KindUser},
			mockSetup: func(repo *MockAccountRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(&dbmysql.User{ID: 1, DisabledUntil: &earlier}, nil)
			},
		},
		{
			name:      "suspended user",
			principal: common.Principal{ID: 1, Kind: common.KindUser},
			mockSetup: func(repo *MockAccountRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), uint64(1)).Return(&dbmysql.User{ID: 1, DisabledUntil: &later}, nil)
			},
			wantErr: common.ErrAccountDisabled,
		},
		{
			name:      "deleted user",
			principal: common.Principal{ID: 2, Kind: common.KindUser},
			mockSetup: func(repo *MockAccountRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), uint64(2)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: common.ErrUnauthorized,
		},
		{
			name:      "database error",
			principal: common.Principal{ID: 3, Kind: common.KindUser},
			mockSetup: func(repo *MockAccountRepository) {
				repo.EXPECT().GetUserByID(gomock.Any(), uint64(3)).Return(nil, errors.New("connection lost"))
			},
			wantErr: errors.New("connection lost"),
		},
		{
			name:      "moderator skips lookup",
			principal: common.Principal{ID: 7, Kind: common.KindModerator, ModLevel: common.ModLevelUser},
			mockSetup: func(*MockAccountRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockAccountRepository(ctrl)
			tt.mockSetup(repo)
			guard := NewAccountGuard(repo)
			guard.now = func() time.Time { return now }

			err := guard.CheckAccount(context.Background(), tt.principal)
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, common.ErrAccountDisabled), errors.Is(tt.wantErr, common.ErrUnauthorized):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestAccountGuard_RevokesExistingSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.verifiedUser(t, "carol", "carol@example.com", "secret123")

	token, err := f.tokens.GenerateToken(user.ID, common.KindUser, 0)
	require.NoError(t, err)

	guard := NewAccountGuard(f.repo)
	guard.now = f.clock.Now

	r := mux.NewRouter()
	r.Use(common.AuthMiddleware(f.tokens))
	r.Use(common.ActiveAccountMiddleware(guard))
	r.HandleFunc("/posts", common.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		common.WriteMessage(w, http.StatusCreated, "post created")
	})).Methods(http.MethodPost)

	call := func() int {
		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusCreated, call())

	stored, err := f.repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	until := f.clock.Now().Add(24 * time.Hour)
	stored.DisabledUntil = &until
	require.NoError(t, f.repo.UpdateUser(ctx, stored))
	assert.Equal(t, http.StatusForbidden, call(), "suspended while signed in")

	f.clock.Advance(25 * time.Hour)
	assert.Equal(t, http.StatusCreated, call(), "suspension has run out")

	require.NoError(t, dbDelete(f, user.ID))
	assert.Equal(t, http.StatusUnauthorized, call(), "account deleted")
}

func dbDelete(f *authFixture, userID uint64) error {
	return f.repo.(*accountRepository).db.Delete(&dbmysql.User{}, userID).Error
}
