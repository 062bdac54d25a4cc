package profile

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"socialhub/internal/cache"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/post"
)

//go:generate mockgen -source=user_repository.go -destination=mock_user_repository.go -package=profile

type UserRepository interface {
	GetByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	Update(ctx context.Context, user *dbmysql.User) error
	UsernameTaken(ctx context.Context, username string, exceptID uint64) (bool, error)
	Search(ctx context.Context, query string, limit, offset int) ([]dbmysql.User, int64, error)
	// Suggested lists Public users with no edge from userID, newest first.
	Suggested(ctx context.Context, userID uint64, limit int) ([]dbmysql.User, error)
	Stats(ctx context.Context, userID uint64) (*cache.ProfileStats, error)
	// DeleteAccount removes the user and everything they own in one transaction.
	// It returns the users whose follow edges were removed with the account.
	DeleteAccount(ctx context.Context, userID uint64) ([]uint64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Model(user).
		Select("username", "bio", "profile_picture", "visibility", "updated_at").
		Updates(user).Error
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string, exceptID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

// likeEscaper makes user input literal inside a LIKE pattern using '!' as the
// escape character, which mysql and sqlite both accept.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]dbmysql.User, int64, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	match := func(db *gorm.DB) *gorm.DB {
		return db.Where("username LIKE ? ESCAPE '!'", pattern)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&dbmysql.User{}).Scopes(match).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []dbmysql.User
	err := r.db.WithContext(ctx).Scopes(match).
		Order("username ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Suggested(ctx context.Context, userID uint64, limit int) ([]dbmysql.User, error) {
	db := r.db.WithContext(ctx)
	related := db.Model(&dbmysql.Follower{}).Select("followed_id").Where("follower_id = ?", userID)

	var users []dbmysql.User
	err := db.
		Where("id <> ? AND visibility = ?", userID, common.VisibilityPublic).
		Where("id NOT IN (?)", related).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Stats(ctx context.Context, userID uint64) (*cache.ProfileStats, error) {
	var stats cache.ProfileStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&dbmysql.Post{}).Where("author_id = ?", userID).Count(&stats.Posts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&dbmysql.Follower{}).
		Where("followed_id = ? AND status = ?", userID, common.FollowAccepted).
		Count(&stats.Followers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&dbmysql.Follower{}).
		Where("follower_id = ? AND status = ?", userID, common.FollowAccepted).
		Count(&stats.Following).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *userRepository) DeleteAccount(ctx context.Context, userID uint64) ([]uint64, error) {
	var related []uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// give back the likes this user handed out
		liked := tx.Model(&dbmysql.Like{}).Select("post_id").Where("user_id = ?", userID)
		if err := tx.Model(&dbmysql.Post{}).
			Where("id IN (?) AND like_count > 0", liked).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}

		if err := post.DeletePosts(tx, "author_id", userID); err != nil {
			return err
		}

		var commentIDs []uint64
		if err := tx.Model(&dbmysql.Comment{}).Where("author_id = ?", userID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("parent_id IN ?", commentIDs).Delete(&dbmysql.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&dbmysql.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("reporter_id = ?", userID).Delete(&dbmysql.Report{}).Error; err != nil {
			return err
		}

		var edges []dbmysql.Follower
		if err := tx.Where("follower_id = ? OR followed_id = ?", userID, userID).Find(&edges).Error; err != nil {
			return err
		}
		for _, e := range edges {
			if e.FollowerID == userID {
				related = append(related, e.FollowedID)
			} else {
				related = append(related, e.FollowerID)
			}
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", userID, userID).Delete(&dbmysql.Follower{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&dbmysql.User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return related, nil
}
