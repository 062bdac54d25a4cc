package feed

import (
	"context"

	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

// Query selects the slice of visible posts a page is drawn from.
type Query struct {
	ViewerID uint64
	Mode     Mode
	AuthorID uint64 // optional
	PostID   uint64 // optional
}

//go:generate mockgen -source=feed_repo.go -destination=mock_feed_repo.go -package=feed

type FeedRepository interface {
	VisiblePosts(ctx context.Context, q Query, limit, offset int) ([]dbmysql.Post, int64, error)
	CommentCounts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	LikedBy(ctx context.Context, viewerID uint64, postIDs []uint64) (map[uint64]bool, error)
	Authors(ctx context.Context, userIDs []uint64) (map[uint64]common.UserSummary, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// acceptedEdge matches an accepted follow from the viewer (first arg) to the post author.
const acceptedEdge = `EXISTS (SELECT 1 FROM followers f
	WHERE f.follower_id = ? AND f.followed_id = posts.author_id AND f.status = ?)`

// scope applies the visibility rules in SQL: own posts, Public authors, and
// FollowersOnly authors the viewer follows with an accepted edge. Private authors
// are seen only by themselves.
func (q Query) scope(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN users ON users.id = posts.author_id")

	switch q.Mode {
	case ModeFollowing:
		db = db.Where("(posts.author_id = ? OR (users.visibility IN ? AND "+acceptedEdge+"))",
			q.ViewerID,
			[]common.Visibility{common.VisibilityPublic, common.VisibilityFollowersOnly},
			q.ViewerID, common.FollowAccepted)
	default:
		db = db.Where("(posts.author_id = ? OR users.visibility = ? OR (users.visibility = ? AND "+acceptedEdge+"))",
			q.ViewerID,
			common.VisibilityPublic,
			common.VisibilityFollowersOnly,
			q.ViewerID, common.FollowAccepted)
	}

	if q.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", q.AuthorID)
	}
	if q.PostID != 0 {
		db = db.Where("posts.id = ?", q.PostID)
	}
	return db
}

func (r *feedRepository) VisiblePosts(ctx context.Context, q Query, limit, offset int) ([]dbmysql.Post, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Scopes(q.scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var posts []dbmysql.Post
	err = r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Select("posts.*").
		Scopes(q.scope).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, total, err
}

// CommentCounts counts comments and replies per post in one grouped query.
func (r *feedRepository) CommentCounts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint64
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}

func (r *feedRepository) LikedBy(ctx context.Context, viewerID uint64, postIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if viewerID == 0 || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *feedRepository) Authors(ctx context.Context, userIDs []uint64) (map[uint64]common.UserSummary, error) {
	authors := make(map[uint64]common.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return authors, nil
	}

	var users []dbmysql.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "profile_picture", "visibility").
		Where("id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for i := range users {
		authors[users[i].ID] = users[i].Summary()
	}
	return authors, nil
}
