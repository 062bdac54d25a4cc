package profile

import (
	"context"
	"time"

	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

//go:generate mockgen -source=follow_repository.go -destination=mock_follow_repository.go -package=profile

// Edge is one side of a follow relationship: the other user and when the edge was created.
type Edge struct {
	User  dbmysql.User
	Since time.Time
}

type FollowRepository interface {
	CreateEdge(ctx context.Context, edge *dbmysql.Follower) error
	GetEdge(ctx context.Context, followerID, followedID uint64) (*dbmysql.Follower, error)
	// SetStatus moves an edge from one status to another and reports whether a row changed.
	SetStatus(ctx context.Context, followerID, followedID uint64, from, to common.FollowStatus) (bool, error)
	// DeleteEdge removes the edge, restricted to the given statuses when any are passed.
	DeleteEdge(ctx context.Context, followerID, followedID uint64, statuses ...common.FollowStatus) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error)
	PendingRequests(ctx context.Context, userID uint64) ([]Edge, error)
	Followers(ctx context.Context, userID uint64, limit, offset int) ([]Edge, int64, error)
	Following(ctx context.Context, userID uint64, limit, offset int) ([]Edge, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateEdge(ctx context.Context, edge *dbmysql.Follower) error {
	return r.db.WithContext(ctx).Create(edge).Error
}

func (r *followRepository) GetEdge(ctx context.Context, followerID, followedID uint64) (*dbmysql.Follower, error) {
	var edge dbmysql.Follower
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *followRepository) SetStatus(ctx context.Context, followerID, followedID uint64, from, to common.FollowStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&dbmysql.Follower{}).
		Where("follower_id = ? AND followed_id = ? AND status = ?", followerID, followedID, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) DeleteEdge(ctx context.Context, followerID, followedID uint64, statuses ...common.FollowStatus) (bool, error) {
	q := r.db.WithContext(ctx).Where("follower_id = ? AND followed_id = ?", followerID, followedID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	res := q.Delete(&dbmysql.Follower{})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Follower{}).
		Where("follower_id = ? AND followed_id = ? AND status = ?", followerID, followedID, common.FollowAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) PendingRequests(ctx context.Context, userID uint64) ([]Edge, error) {
	var edges []dbmysql.Follower
	err := r.db.WithContext(ctx).
		Where("followed_id = ? AND status = ?", userID, common.FollowPending).
		Order("created_at DESC, id DESC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return r.withUsers(ctx, edges, func(e dbmysql.Follower) uint64 { return e.FollowerID })
}

func (r *followRepository) Followers(ctx context.Context, userID uint64, limit, offset int) ([]Edge, int64, error) {
	return r.page(ctx, "followed_id", userID, limit, offset, func(e dbmysql.Follower) uint64 { return e.FollowerID })
}

func (r *followRepository) Following(ctx context.Context, userID uint64, limit, offset int) ([]Edge, int64, error) {
	return r.page(ctx, "follower_id", userID, limit, offset, func(e dbmysql.Follower) uint64 { return e.FollowedID })
}

func (r *followRepository) page(ctx context.Context, column string, userID uint64, limit, offset int,
	other func(dbmysql.Follower) uint64) ([]Edge, int64, error) {
	accepted := func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ? AND status = ?", userID, common.FollowAccepted)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&dbmysql.Follower{}).Scopes(accepted).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var edges []dbmysql.Follower
	err := r.db.WithContext(ctx).Scopes(accepted).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&edges).Error
	if err != nil {
		return nil, 0, err
	}

	out, err := r.withUsers(ctx, edges, other)
	return out, total, err
}

// withUsers loads the counterpart of every edge with a single IN query and
// keeps the edge order.
func (r *followRepository) withUsers(ctx context.Context, edges []dbmysql.Follower, other func(dbmysql.Follower) uint64) ([]Edge, error) {
	out := make([]Edge, 0, len(edges))
	if len(edges) == 0 {
		return out, nil
	}

	ids := make([]uint64, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, other(e))
	}
	var users []dbmysql.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]dbmysql.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, e := range edges {
		u, ok := byID[other(e)]
		if !ok {
			continue
		}
		out = append(out, Edge{User: u, Since: e.CreatedAt})
	}
	return out, nil
}
