package moderation

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

//go:generate mockgen -source=report_repository.go -destination=mock_report_repository.go -package=moderation

type ReportRepository interface {
	Create(ctx context.Context, report *dbmysql.Report) error
	GetByID(ctx context.Context, reportID uint64) (*dbmysql.Report, error)
	// List returns reports against the given target types, newest first.
	// An empty status matches every status.
	List(ctx context.Context, targets []common.ReportTarget, status common.ReportStatus, limit, offset int) ([]dbmysql.Report, int64, error)
	// Queue returns the pending reports against the given target types, oldest first.
	Queue(ctx context.Context, targets []common.ReportTarget) ([]dbmysql.Report, error)
	// Transition moves a report from one status to another only if it is still
	// in the from status, and reports whether it did.
	Transition(ctx context.Context, reportID uint64, from, to common.ReportStatus, reviewerID *uint64) (bool, error)
	// TargetOwner returns the account behind a report target: the author of a
	// post or comment, or the user itself.
	TargetOwner(ctx context.Context, target common.ReportTarget, targetID uint64) (uint64, error)
	DisableUser(ctx context.Context, userID uint64, until time.Time) (bool, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *dbmysql.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, reportID uint64) (*dbmysql.Report, error) {
	var report dbmysql.Report
	err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, targets []common.ReportTarget, status common.ReportStatus, limit, offset int) ([]dbmysql.Report, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("target_type IN ?", targets)
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&dbmysql.Report{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []dbmysql.Report
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) Queue(ctx context.Context, targets []common.ReportTarget) ([]dbmysql.Report, error) {
	var reports []dbmysql.Report
	err := r.db.WithContext(ctx).
		Where("target_type IN ? AND status = ?", targets, common.ReportPending).
		Order("created_at ASC, id ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Transition(ctx context.Context, reportID uint64, from, to common.ReportStatus, reviewerID *uint64) (bool, error) {
	updates := map[string]interface{}{"status": to, "updated_at": time.Now()}
	if reviewerID != nil {
		updates["reviewer_id"] = *reviewerID
	}
	res := r.db.WithContext(ctx).Model(&dbmysql.Report{}).
		Where("id = ? AND status = ?", reportID, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *reportRepository) TargetOwner(ctx context.Context, target common.ReportTarget, targetID uint64) (uint64, error) {
	var owner struct {
		ID uint64
	}
	q := r.db.WithContext(ctx)
	switch target {
	case common.TargetPost:
		q = q.Model(&dbmysql.Post{}).Select("author_id AS id")
	case common.TargetComment:
		q = q.Model(&dbmysql.Comment{}).Select("author_id AS id")
	case common.TargetUser:
		q = q.Model(&dbmysql.User{}).Select("id")
	default:
		return 0, fmt.Errorf("%w: unknown report target %q", common.ErrInvalidInput, target)
	}
	if err := q.Where("id = ?", targetID).Take(&owner).Error; err != nil {
		return 0, err
	}
	return owner.ID, nil
}

func (r *reportRepository) DisableUser(ctx context.Context, userID uint64, until time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("id = ?", userID).
		UpdateColumn("disabled_until", until)
	return res.RowsAffected > 0, res.Error
}
