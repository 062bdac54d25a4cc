package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"socialhub/internal/audit"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

const (
	commentPageSize    = 20
	maxCommentPageSize = 100
	targetPost         = "post"
	targetComment      = "comment"
)

// AccessChecker decides whether a viewer may see an author's posts.
type AccessChecker interface {
	CanSeePosts(ctx context.Context, viewerID, authorID uint64) (bool, error)
}

// AuthorDirectory resolves user summaries in bulk.
type AuthorDirectory interface {
	Authors(ctx context.Context, userIDs []uint64) (map[uint64]common.UserSummary, error)
}

// StatsInvalidator drops cached profile counters.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uint64)
}

// CommentView is a comment with its author and the size of its thread.
type CommentView struct {
	ID         uint64             `json:"id"`
	PostID     uint64             `json:"post_id"`
	ParentID   *uint64            `json:"parent_id,omitempty"`
	Content    string             `json:"content"`
	Author     common.UserSummary `json:"author"`
	ReplyCount int64              `json:"reply_count"`
	CreatedAt  time.Time          `json:"created_at"`
	EditedAt   *time.Time         `json:"edited_at,omitempty"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, title, content, imageURL string) (*dbmysql.Post, error)
	EditPost(ctx context.Context, authorID, postID uint64, title, content string) (*dbmysql.Post, error)
	DeletePost(ctx context.Context, actorID, postID uint64) error
	LikePost(ctx context.Context, userID, postID uint64) error
	UnlikePost(ctx context.Context, userID, postID uint64) error

	AddComment(ctx context.Context, userID, postID uint64, content string, parentID *uint64) (*dbmysql.Comment, error)
	EditComment(ctx context.Context, userID, commentID uint64, content string) (*dbmysql.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	PostComments(ctx context.Context, viewerID, postID uint64, page, perPage int) (common.Page[CommentView], error)
	CommentReplies(ctx context.Context, viewerID, commentID uint64) ([]CommentView, error)
}

type postService struct {
	posts    PostRepository
	comments CommentRepository
	access   AccessChecker
	authors  AuthorDirectory
	stats    StatsInvalidator
	audit    common.Subject
	now      func() time.Time
}

func NewPostService(posts PostRepository, comments CommentRepository, access AccessChecker,
	authors AuthorDirectory, stats StatsInvalidator, subject common.Subject) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		access:   access,
		authors:  authors,
		stats:    stats,
		audit:    subject,
		now:      time.Now,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID uint64, title, content, imageURL string) (*dbmysql.Post, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if err := common.ValidateText("title", title, common.MaxTitleLength); err != nil {
		return nil, err
	}
	if err := common.ValidateText("content", content, common.MaxPostContentLength); err != nil {
		return nil, err
	}

	post := &dbmysql.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		ImageURL: strings.TrimSpace(imageURL),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx, authorID)
	audit.Record(ctx, s.audit, authorID, common.ActionCreatePost, post.ID, targetPost)
	return post, nil
}

func (s *postService) EditPost(ctx context.Context, authorID, postID uint64, title, content string) (*dbmysql.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, fmt.Errorf("%w: only the author can edit this post", common.ErrForbidden)
	}

	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if err := common.ValidateText("title", title, common.MaxTitleLength); err != nil {
		return nil, err
	}
	if err := common.ValidateText("content", content, common.MaxPostContentLength); err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	audit.Record(ctx, s.audit, authorID, common.ActionUpdatePost, post.ID, targetPost)
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, actorID, postID uint64) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return fmt.Errorf("%w: only the author can delete this post", common.ErrForbidden)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.stats.Invalidate(ctx, post.AuthorID)
	audit.Record(ctx, s.audit, actorID, common.ActionDeletePost, postID, targetPost)
	return nil
}

func (s *postService) LikePost(ctx context.Context, userID, postID uint64) error {
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.posts.Like(ctx, postID, userID); err != nil {
		return err
	}
	audit.Record(ctx, s.audit, userID, common.ActionLikePost, postID, targetPost)
	return nil
}

func (s *postService) UnlikePost(ctx context.Context, userID, postID uint64) error {
	if _, err := s.getPost(ctx, postID); err != nil {
		return err
	}
	if err := s.posts.Unlike(ctx, postID, userID); err != nil {
		return err
	}
	audit.Record(ctx, s.audit, userID, common.ActionUnlikePost, postID, targetPost)
	return nil
}

// AddComment attaches a comment to a visible post. Replies to a reply join
// the root comment's thread.
func (s *postService) AddComment(ctx context.Context, userID, postID uint64, content string, parentID *uint64) (*dbmysql.Comment, error) {
	content = strings.TrimSpace(content)
	if err := common.ValidateText("comment", content, common.MaxCommentLength); err != nil {
		return nil, err
	}
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	comment := &dbmysql.Comment{PostID: postID, AuthorID: userID, Content: content}
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, notFound(err, "parent comment", *parentID)
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", common.ErrInvalidInput)
		}
		root := parent.ID
		if parent.ParentID != nil {
			root = *parent.ParentID
		}
		comment.ParentID = &root
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	audit.Record(ctx, s.audit, userID, common.ActionCreateComment, comment.ID, targetComment)
	return comment, nil
}

func (s *postService) EditComment(ctx context.Context, userID, commentID uint64, content string) (*dbmysql.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	if comment.AuthorID != userID {
		return nil, fmt.Errorf("%w: only the author can edit this comment", common.ErrForbidden)
	}
	content = strings.TrimSpace(content)
	if err := common.ValidateText("comment", content, common.MaxCommentLength); err != nil {
		return nil, err
	}

	edited := s.now()
	comment.Content = content
	comment.EditedAt = &edited
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	audit.Record(ctx, s.audit, userID, common.ActionUpdateComment, comment.ID, targetComment)
	return comment, nil
}

// DeleteComment is allowed to the comment's author and to the post's author.
func (s *postService) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return notFound(err, "comment", commentID)
	}
	if comment.AuthorID != userID {
		post, err := s.getPost(ctx, comment.PostID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if post == nil || post.AuthorID != userID {
			return fmt.Errorf("%w: not allowed to delete this comment", common.ErrForbidden)
		}
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	audit.Record(ctx, s.audit, userID, common.ActionDeleteComment, commentID, targetComment)
	return nil
}

func (s *postService) PostComments(ctx context.Context, viewerID, postID uint64, page, perPage int) (common.Page[CommentView], error) {
	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return common.Page[CommentView]{}, err
	}

	page, perPage = common.NormalizePage(page, perPage, commentPageSize, maxCommentPageSize)
	comments, total, err := s.comments.TopLevel(ctx, postID, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[CommentView]{}, err
	}

	ids := make([]uint64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	replies, err := s.comments.ReplyCounts(ctx, ids)
	if err != nil {
		return common.Page[CommentView]{}, err
	}

	views, err := s.views(ctx, comments, replies)
	if err != nil {
		return common.Page[CommentView]{}, err
	}
	return common.NewPage(views, page, perPage, total), nil
}

func (s *postService) CommentReplies(ctx context.Context, viewerID, commentID uint64) ([]CommentView, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	if _, err := s.visiblePost(ctx, viewerID, comment.PostID); err != nil {
		return nil, err
	}

	replies, err := s.comments.Replies(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, replies, nil)
}

func (s *postService) views(ctx context.Context, comments []dbmysql.Comment, replies map[uint64]int64) ([]CommentView, error) {
	views := make([]CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	ids := make([]uint64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := s.authors.Authors(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		author, ok := authors[c.AuthorID]
		if !ok {
			author = common.UserSummary{ID: c.AuthorID}
		}
		views = append(views, CommentView{
			ID:         c.ID,
			PostID:     c.PostID,
			ParentID:   c.ParentID,
			Content:    c.Content,
			Author:     author,
			ReplyCount: replies[c.ID],
			CreatedAt:  c.CreatedAt,
			EditedAt:   c.EditedAt,
		})
	}
	return views, nil
}

func (s *postService) getPost(ctx context.Context, postID uint64) (*dbmysql.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	return post, nil
}

// visiblePost hides posts the viewer may not see behind ErrNotFound.
func (s *postService) visiblePost(ctx context.Context, viewerID, postID uint64) (*dbmysql.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.CanSeePosts(ctx, viewerID, post.AuthorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: post %d", common.ErrNotFound, postID)
	}
	return post, nil
}

func notFound(err error, what string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", common.ErrNotFound, what, id)
	}
	return err
}
