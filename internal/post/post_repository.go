package post

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

//go:generate mockgen -source=post_repository.go -destination=mock_post_repository.go -package=post

type PostRepository interface {
	Create(ctx context.Context, post *dbmysql.Post) error
	GetByID(ctx context.Context, postID uint64) (*dbmysql.Post, error)
	Update(ctx context.Context, post *dbmysql.Post) error
	// Delete removes the post with its likes and comments.
	Delete(ctx context.Context, postID uint64) error
	Like(ctx context.Context, postID, userID uint64) error
	Unlike(ctx context.Context, postID, userID uint64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, postID uint64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update writes the editable columns only so a concurrent like is not overwritten.
func (r *postRepository) Update(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Model(post).
		Select("title", "content", "image_url", "updated_at").
		Updates(post).Error
}

func (r *postRepository) Delete(ctx context.Context, postID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return DeletePosts(tx, "id", postID)
	})
}

// DeletePosts removes the posts whose column equals value, together with their
// likes and comments. It must run inside a transaction.
func DeletePosts(tx *gorm.DB, column string, value uint64) error {
	cond := column + " = ?"
	ids := tx.Model(&dbmysql.Post{}).Select("id").Where(cond, value)
	if err := tx.Where("post_id IN (?)", ids).Delete(&dbmysql.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id IN (?)", ids).Delete(&dbmysql.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where(cond, value).Delete(&dbmysql.Post{}).Error
}

// Like inserts the junction row and bumps like_count in one transaction.
func (r *postRepository) Like(ctx context.Context, postID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dbmysql.Like{PostID: postID, UserID: userID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.ErrAlreadyLiked
			}
			return err
		}
		return tx.Model(&dbmysql.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Unlike removes the junction row and decrements like_count, never below zero.
func (r *postRepository) Unlike(ctx context.Context, postID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&dbmysql.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.ErrNotLiked
		}
		return tx.Model(&dbmysql.Post{}).
			Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}
