package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/logger"
	"socialhub/internal/metrics"
)

// DatabaseObserver appends each event to the application_log table.
type DatabaseObserver struct {
	repo LogRepository
}

func NewDatabaseObserver(repo LogRepository) *DatabaseObserver {
	return &DatabaseObserver{repo: repo}
}

func (d *DatabaseObserver) Name() string {
	return "database_observer"
}

func (d *DatabaseObserver) Update(ctx context.Context, event common.AuditEvent) error {
	entry := &dbmysql.ApplicationLog{
		UserID:     event.ActorID,
		ActorKind:  event.ActorKind,
		Action:     event.Action,
		TargetID:   event.TargetID,
		TargetType: event.TargetType,
		CreatedAt:  event.OccurredAt,
	}
	if err := d.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}
	return nil
}

// LoggerObserver mirrors events into the structured log.
type LoggerObserver struct{}

func NewLoggerObserver() *LoggerObserver {
	return &LoggerObserver{}
}

func (l *LoggerObserver) Name() string {
	return "logger_observer"
}

func (l *LoggerObserver) Update(ctx context.Context, event common.AuditEvent) error {
	logger.Log.Info("audit",
		logger.WithRequestID(common.RequestIDFromContext(ctx)),
		zap.Uint64("actor_id", event.ActorID),
		zap.String("actor_kind", string(event.ActorKind)),
		zap.String("action", string(event.Action)),
		zap.Uint64("target_id", event.TargetID),
		zap.String("target_type", event.TargetType),
	)
	return nil
}

// MetricsObserver counts events per action.
type MetricsObserver struct{}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (MetricsObserver) Name() string {
	return "metrics_observer"
}

func (MetricsObserver) Update(_ context.Context, event common.AuditEvent) error {
	metrics.Get().AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
	return nil
}
