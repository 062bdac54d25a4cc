package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"socialhub/internal/audit"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/logger"
	"socialhub/internal/metrics"
	"socialhub/internal/post"
)

const (
	reportPageSize    = 20
	maxReportPageSize = 100
	targetReport      = "report"
)

type ModerationService interface {
	SubmitReport(ctx context.Context, reporterID uint64, target common.ReportTarget, targetID uint64, reason string) (*dbmysql.Report, error)

	ReportQueue(ctx context.Context, level common.ModLevel) ([]dbmysql.Report, error)
	Reports(ctx context.Context, level common.ModLevel, page, perPage int) (common.Page[dbmysql.Report], error)
	Report(ctx context.Context, level common.ModLevel, reportID uint64) (*dbmysql.Report, error)

	ReviewReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error)
	ResolveReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error)
	RejectReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error)

	DisableUser(ctx context.Context, mod common.Principal, reportID uint64, days int) (time.Time, error)
	RemoveReportedPost(ctx context.Context, mod common.Principal, reportID uint64) error
	RemoveReportedComment(ctx context.Context, mod common.Principal, reportID uint64) error

	ApplicationLog(ctx context.Context, filter audit.LogFilter, page, perPage int) (common.Page[dbmysql.ApplicationLog], error)
}

type moderationService struct {
	reports  ReportRepository
	posts    post.PostRepository
	comments post.CommentRepository
	logs     audit.LogRepository
	stats    post.StatsInvalidator
	audit    common.Subject
	now      func() time.Time
}

func NewModerationService(reports ReportRepository, posts post.PostRepository, comments post.CommentRepository,
	logs audit.LogRepository, stats post.StatsInvalidator, subject common.Subject) ModerationService {
	return &moderationService{
		reports:  reports,
		posts:    posts,
		comments: comments,
		logs:     logs,
		stats:    stats,
		audit:    subject,
		now:      time.Now,
	}
}

// SubmitReport files a report. Users cannot report themselves or their own
// content, and may report a given target once.
func (s *moderationService) SubmitReport(ctx context.Context, reporterID uint64, target common.ReportTarget, targetID uint64, reason string) (*dbmysql.Report, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: target type must be Post, Comment or User", common.ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > common.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", common.ErrInvalidInput, common.MaxReasonLength)
	}

	owner, err := s.reports.TargetOwner(ctx, target, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %d", common.ErrNotFound, strings.ToLower(string(target)), targetID)
	}
	if err != nil {
		return nil, err
	}
	if owner == reporterID {
		return nil, fmt.Errorf("%w: you cannot report your own %s", common.ErrInvalidInput, strings.ToLower(string(target)))
	}

	report := &dbmysql.Report{
		ReporterID: reporterID,
		TargetType: target,
		TargetID:   targetID,
		Reason:     reason,
		Status:     common.ReportPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you already reported this %s", common.ErrConflict, strings.ToLower(string(target)))
		}
		return nil, err
	}

	audit.Record(ctx, s.audit, reporterID, common.ActionSubmitReport, report.ID, targetReport)
	return report, nil
}

func (s *moderationService) ReportQueue(ctx context.Context, level common.ModLevel) ([]dbmysql.Report, error) {
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown moderator level %d", common.ErrForbidden, level)
	}
	return s.reports.Queue(ctx, level.Targets())
}

func (s *moderationService) Reports(ctx context.Context, level common.ModLevel, page, perPage int) (common.Page[dbmysql.Report], error) {
	if !level.IsValid() {
		return common.Page[dbmysql.Report]{}, fmt.Errorf("%w: unknown moderator level %d", common.ErrForbidden, level)
	}
	page, perPage = common.NormalizePage(page, perPage, reportPageSize, maxReportPageSize)
	reports, total, err := s.reports.List(ctx, level.Targets(), "", perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[dbmysql.Report]{}, err
	}
	return common.NewPage(reports, page, perPage, total), nil
}

// Report hides reports outside the moderator's scope behind ErrNotFound.
func (s *moderationService) Report(ctx context.Context, level common.ModLevel, reportID uint64) (*dbmysql.Report, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !level.Covers(report.TargetType) {
		return nil, fmt.Errorf("%w: report %d", common.ErrNotFound, reportID)
	}
	return report, nil
}

func (s *moderationService) ReviewReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	return s.transition(ctx, mod, reportID, common.ReportUnderReview, common.ActionReviewReport)
}

func (s *moderationService) ResolveReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	return s.transition(ctx, mod, reportID, common.ReportResolved, common.ActionResolveReport)
}

func (s *moderationService) RejectReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	return s.transition(ctx, mod, reportID, common.ReportRejected, common.ActionRejectReport)
}

// transition applies a status change as a compare-and-set on the status the
// report was read with, so two moderators cannot both move the same report.
func (s *moderationService) transition(ctx context.Context, mod common.Principal, reportID uint64,
	to common.ReportStatus, action common.ActionType) (*dbmysql.Report, error) {
	report, err := s.scopedReport(ctx, mod, reportID)
	if err != nil {
		return nil, err
	}
	from := report.Status
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: report %d is %s", common.ErrInvalidTransition, reportID, from)
	}

	var reviewer *uint64
	if to == common.ReportUnderReview {
		reviewer = &mod.ID
	}
	ok, err := s.reports.Transition(ctx, reportID, from, to, reviewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: report %d is no longer %s", common.ErrInvalidTransition, reportID, from)
	}

	report.Status = to
	if reviewer != nil {
		report.ReviewerID = reviewer
	}
	metrics.Get().ReportTransitions.WithLabelValues(string(to)).Inc()
	audit.RecordModerator(ctx, s.audit, mod.ID, action, reportID, targetReport)
	return report, nil
}

// DisableUser suspends the account behind a User report for one of the
// allowed numbers of days.
func (s *moderationService) DisableUser(ctx context.Context, mod common.Principal, reportID uint64, days int) (time.Time, error) {
	if mod.ModLevel != common.ModLevelUser {
		return time.Time{}, fmt.Errorf("%w: only user moderators may disable users", common.ErrForbidden)
	}
	if !common.ValidDisableDays(days) {
		return time.Time{}, fmt.Errorf("%w: days must be one of %v", common.ErrInvalidInput, common.DisableDays)
	}
	report, err := s.scopedReport(ctx, mod, reportID)
	if err != nil {
		return time.Time{}, err
	}

	until := s.now().Add(time.Duration(days) * 24 * time.Hour)
	ok, err := s.reports.DisableUser(ctx, report.TargetID, until)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: user %d", common.ErrNotFound, report.TargetID)
	}

	audit.RecordModerator(ctx, s.audit, mod.ID, common.ActionDisableUser, report.TargetID, "user")
	logger.Log.Info("user disabled",
		logger.WithRequestID(common.RequestIDFromContext(ctx)),
		zap.Uint64("moderator_id", mod.ID),
		zap.Uint64("user_id", report.TargetID),
		zap.Int("days", days),
	)
	return until, nil
}

func (s *moderationService) RemoveReportedPost(ctx context.Context, mod common.Principal, reportID uint64) error {
	report, err := s.contentReport(ctx, mod, reportID, common.TargetPost)
	if err != nil {
		return err
	}
	p, err := s.posts.GetByID(ctx, report.TargetID)
	if err != nil {
		return notFound(err, "post", report.TargetID)
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.stats.Invalidate(ctx, p.AuthorID)
	audit.RecordModerator(ctx, s.audit, mod.ID, common.ActionRemovePost, p.ID, "post")
	return nil
}

func (s *moderationService) RemoveReportedComment(ctx context.Context, mod common.Principal, reportID uint64) error {
	report, err := s.contentReport(ctx, mod, reportID, common.TargetComment)
	if err != nil {
		return err
	}
	c, err := s.comments.GetByID(ctx, report.TargetID)
	if err != nil {
		return notFound(err, "comment", report.TargetID)
	}
	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return err
	}
	audit.RecordModerator(ctx, s.audit, mod.ID, common.ActionRemoveComment, c.ID, "comment")
	return nil
}

func (s *moderationService) ApplicationLog(ctx context.Context, filter audit.LogFilter, page, perPage int) (common.Page[dbmysql.ApplicationLog], error) {
	page, perPage = common.NormalizePage(page, perPage, reportPageSize, maxReportPageSize)
	entries, total, err := s.logs.List(ctx, filter, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[dbmysql.ApplicationLog]{}, err
	}
	return common.NewPage(entries, page, perPage, total), nil
}

func (s *moderationService) contentReport(ctx context.Context, mod common.Principal, reportID uint64, want common.ReportTarget) (*dbmysql.Report, error) {
	if mod.ModLevel != common.ModLevelContent {
		return nil, fmt.Errorf("%w: only content moderators may remove content", common.ErrForbidden)
	}
	report, err := s.scopedReport(ctx, mod, reportID)
	if err != nil {
		return nil, err
	}
	if report.TargetType != want {
		return nil, fmt.Errorf("%w: report %d targets a %s", common.ErrInvalidInput, reportID, report.TargetType)
	}
	return report, nil
}

// scopedReport loads a report the moderator is about to act on. Reports of
// the other level are forbidden rather than hidden.
func (s *moderationService) scopedReport(ctx context.Context, mod common.Principal, reportID uint64) (*dbmysql.Report, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !mod.ModLevel.Covers(report.TargetType) {
		if report.TargetType == common.TargetUser {
			return nil, fmt.Errorf("%w: only user moderators may manage user reports", common.ErrForbidden)
		}
		return nil, fmt.Errorf("%w: only content moderators may manage content reports", common.ErrForbidden)
	}
	return report, nil
}

func (s *moderationService) getReport(ctx context.Context, reportID uint64) (*dbmysql.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, notFound(err, "report", reportID)
	}
	return report, nil
}

func notFound(err error, what string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", common.ErrNotFound, what, id)
	}
	return err
}
