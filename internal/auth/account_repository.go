package auth

import (
	"context"

	"gorm.io/gorm"

	"socialhub/internal/dbmysql"
)

//go:generate mockgen -source=account_repository.go -destination=mock_account_repository.go -package=auth

// AccountRepository covers the two principal tables: users and moderators.
type AccountRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error)
	GetUserByEmail(ctx context.Context, email string) (*dbmysql.User, error)
	UpdateUser(ctx context.Context, user *dbmysql.User) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailInUse(ctx context.Context, email string) (bool, error)

	CreateModerator(ctx context.Context, mod *dbmysql.Moderator) error
	GetModeratorByEmail(ctx context.Context, email string) (*dbmysql.Moderator, error)
	UpdateModerator(ctx context.Context, mod *dbmysql.Moderator) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *accountRepository) GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) GetUserByEmail(ctx context.Context, email string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) UpdateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *accountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailInUse checks both the confirmed and the pending address of every user.
func (r *accountRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("email = ? OR pending_email = ?", email, email).
		Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) CreateModerator(ctx context.Context, mod *dbmysql.Moderator) error {
	return r.db.WithContext(ctx).Create(mod).Error
}

func (r *accountRepository) GetModeratorByEmail(ctx context.Context, email string) (*dbmysql.Moderator, error) {
	var mod dbmysql.Moderator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&mod).Error
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

func (r *accountRepository) UpdateModerator(ctx context.Context, mod *dbmysql.Moderator) error {
	return r.db.WithContext(ctx).Save(mod).Error
}
