package feed

import (
	"context"
	"fmt"
	"time"

	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/dbmysql"
	"socialhub/internal/metrics"
)

type Mode string

const (
	ModeAll       Mode = "all"
	ModeFollowing Mode = "following"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeFollowing:
		return ModeFollowing, nil
	default:
		return "", fmt.Errorf("%w: mode must be all or following", common.ErrInvalidInput)
	}
}

// PostView is a post decorated for one viewer.
type PostView struct {
	ID            uint64             `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	ImageURL      string             `json:"image_url,omitempty"`
	Author        common.UserSummary `json:"author"`
	LikeCount     int64              `json:"like_count"`
	CommentCount  int64              `json:"comment_count"`
	LikedByViewer bool               `json:"liked_by_viewer"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type FeedService interface {
	Feed(ctx context.Context, viewerID uint64, mode Mode, page, perPage int) (common.Page[PostView], error)
	Post(ctx context.Context, viewerID, postID uint64) (*PostView, error)
	AuthorPosts(ctx context.Context, viewerID, authorID uint64, page, perPage int) (common.Page[PostView], error)
}

type feedService struct {
	repo        FeedRepository
	pageSize    int
	maxPageSize int
}

func NewFeedService(repo FeedRepository, pageSize, maxPageSize int) FeedService {
	if pageSize <= 0 {
		pageSize = 20
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &feedService{repo: repo, pageSize: pageSize, maxPageSize: maxPageSize}
}

func ProvideFeedService(repo FeedRepository, cfg *config.Config) FeedService {
	return NewFeedService(repo, cfg.Feed.DefaultPageSize, cfg.Feed.MaxPageSize)
}

func (s *feedService) Feed(ctx context.Context, viewerID uint64, mode Mode, page, perPage int) (common.Page[PostView], error) {
	start := time.Now()
	defer func() {
		metrics.Get().FeedPageDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	}()

	if mode == ModeFollowing && viewerID == 0 {
		return common.Page[PostView]{}, fmt.Errorf("%w: sign in to see the following feed", common.ErrUnauthorized)
	}
	return s.page(ctx, Query{ViewerID: viewerID, Mode: mode}, page, perPage)
}

func (s *feedService) AuthorPosts(ctx context.Context, viewerID, authorID uint64, page, perPage int) (common.Page[PostView], error) {
	return s.page(ctx, Query{ViewerID: viewerID, Mode: ModeAll, AuthorID: authorID}, page, perPage)
}

// Post returns one decorated post, or ErrNotFound when the viewer may not see it.
func (s *feedService) Post(ctx context.Context, viewerID, postID uint64) (*PostView, error) {
	posts, _, err := s.repo.VisiblePosts(ctx, Query{ViewerID: viewerID, Mode: ModeAll, PostID: postID}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: post %d", common.ErrNotFound, postID)
	}
	views, err := s.decorate(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *feedService) page(ctx context.Context, q Query, page, perPage int) (common.Page[PostView], error) {
	page, perPage = common.NormalizePage(page, perPage, s.pageSize, s.maxPageSize)
	posts, total, err := s.repo.VisiblePosts(ctx, q, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[PostView]{}, err
	}
	views, err := s.decorate(ctx, q.ViewerID, posts)
	if err != nil {
		return common.Page[PostView]{}, err
	}
	return common.NewPage(views, page, perPage, total), nil
}

// decorate attaches authors, comment counts and the viewer's likes with one
// query each, whatever the page size.
func (s *feedService) decorate(ctx context.Context, viewerID uint64, posts []dbmysql.Post) ([]PostView, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	authorIDs := make([]uint64, 0, len(posts))
	seen := make(map[uint64]struct{}, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	authors, err := s.repo.Authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.repo.LikedBy(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.AuthorID]
		if !ok {
			author = common.UserSummary{ID: p.AuthorID}
		}
		views = append(views, PostView{
			ID:            p.ID,
			Title:         p.Title,
			Content:       p.Content,
			ImageURL:      p.ImageURL,
			Author:        author,
			LikeCount:     p.LikeCount,
			CommentCount:  comments[p.ID],
			LikedByViewer: liked[p.ID],
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return views, nil
}
