package post

import (
	"context"

	"gorm.io/gorm"

	"socialhub/internal/dbmysql"
)

//go:generate mockgen -source=comment_repository.go -destination=mock_comment_repository.go -package=post

type CommentRepository interface {
	Create(ctx context.Context, comment *dbmysql.Comment) error
	GetByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error)
	Update(ctx context.Context, comment *dbmysql.Comment) error
	// Delete removes the comment and its replies.
	Delete(ctx context.Context, commentID uint64) error
	TopLevel(ctx context.Context, postID uint64, limit, offset int) ([]dbmysql.Comment, int64, error)
	Replies(ctx context.Context, parentID uint64) ([]dbmysql.Comment, error)
	ReplyCounts(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error) {
	var comment dbmysql.Comment
	err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Model(comment).
		Select("content", "edited_at").
		Updates(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", commentID).Delete(&dbmysql.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", commentID).Delete(&dbmysql.Comment{}).Error
	})
}

// TopLevel pages through a post's root comments, newest first.
func (r *commentRepository) TopLevel(ctx context.Context, postID uint64, limit, offset int) ([]dbmysql.Comment, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []dbmysql.Comment
	err = r.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

// Replies lists a thread oldest first.
func (r *commentRepository) Replies(ctx context.Context, parentID uint64) ([]dbmysql.Comment, error) {
	var replies []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) ReplyCounts(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ParentID uint64
		N        int64
	}
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Select("parent_id, COUNT(*) AS n").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ParentID] = row.N
	}
	return counts, nil
}
