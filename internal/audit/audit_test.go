package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

type MockObserver struct {
	mock.Mock
	name string
}

func (m *MockObserver) Name() string {
	return m.name
}

func (m *MockObserver) Update(ctx context.Context, event common.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestManager_NotifyDeliversToAllObservers(t *testing.T) {
	first := &MockObserver{name: "first"}
	second := &MockObserver{name: "second"}

	first.On("Update", mock.Anything, mock.MatchedBy(func(e common.AuditEvent) bool {
		return e.Action == common.ActionCreatePost && !e.OccurredAt.IsZero()
	})).Return(errors.New("disk full")).Once()
	second.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	m := NewManager(first, second)
	Record(context.Background(), m, 1, common.ActionCreatePost, 10, "Post")

	// a failing observer does not stop delivery
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestManager_Unsubscribe(t *testing.T) {
	obs := &MockObserver{name: "only"}
	m := NewManager(obs)
	m.Unsubscribe(obs)

	m.Notify(context.Background(), common.AuditEvent{Action: common.ActionLikePost})
	obs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecord_NilSubject(t *testing.T) {
	assert.NotPanics(t, func() {
		Record(context.Background(), nil, 1, common.ActionLikePost, 1, "Post")
		RecordModerator(context.Background(), nil, 1, common.ActionDisableUser, 1, "User")
	})
}

func TestDatabaseObserver_WritesApplicationLog(t *testing.T) {
	db, err := dbmysql.NewInMemory()
	require.NoError(t, err)

	repo := NewLogRepository(db)
	m := NewManager(NewDatabaseObserver(repo), NewLoggerObserver(), NewMetricsObserver())
	ctx := context.Background()

	Record(ctx, m, 1, common.ActionCreatePost, 10, "Post")
	Record(ctx, m, 2, common.ActionFollowUser, 1, "User")
	RecordModerator(ctx, m, 9, common.ActionDisableUser, 2, "User")

	all, total, err := repo.List(ctx, LogFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, common.ActionDisableUser, all[0].Action)
	assert.Equal(t, common.KindModerator, all[0].ActorKind)

	byUser, total, err := repo.List(ctx, LogFilter{UserID: 1}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint64(10), byUser[0].TargetID)

	byAction, total, err := repo.List(ctx, LogFilter{Action: common.ActionFollowUser}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint64(2), byAction[0].UserID)

	page, total, err := repo.List(ctx, LogFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, common.ActionCreatePost, page[0].Action)
}

func TestNotify_KeepsExplicitTimestamp(t *testing.T) {
	obs := &MockObserver{name: "ts"}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	obs.On("Update", mock.Anything, mock.MatchedBy(func(e common.AuditEvent) bool {
		return e.OccurredAt.Equal(at)
	})).Return(nil).Once()

	NewManager(obs).Notify(context.Background(), common.AuditEvent{Action: common.ActionLikePost, OccurredAt: at})
	obs.AssertExpectations(t)
}
