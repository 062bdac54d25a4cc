package audit

import (
	"context"

	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

// LogFilter narrows an audit trail query. Zero values mean "any".
type LogFilter struct {
	UserID uint64
	Action common.ActionType
}

type LogRepository interface {
	Create(ctx context.Context, entry *dbmysql.ApplicationLog) error
	List(ctx context.Context, filter LogFilter, limit, offset int) ([]dbmysql.ApplicationLog, int64, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, entry *dbmysql.ApplicationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) List(ctx context.Context, filter LogFilter, limit, offset int) ([]dbmysql.ApplicationLog, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&dbmysql.ApplicationLog{}).
		Scopes(filter.scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entries []dbmysql.ApplicationLog
	err = r.db.WithContext(ctx).
		Scopes(filter.scope).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, total, err
}

func (f LogFilter) scope(db *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	return db
}
