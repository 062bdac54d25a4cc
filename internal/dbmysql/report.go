package dbmysql

import (
	"time"

	"socialhub/internal/common"
)

type Report struct {
	ID         uint64              `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID uint64              `gorm:"column:reporter_id;not null;uniqueIndex:idx_report_once,priority:1" json:"reporter_id"`
	TargetType common.ReportTarget `gorm:"column:target_type;size:20;not null;uniqueIndex:idx_report_once,priority:2;index:idx_report_scope,priority:1" json:"target_type"`
	TargetID   uint64              `gorm:"column:target_id;not null;uniqueIndex:idx_report_once,priority:3" json:"target_id"`
	Reason     string              `gorm:"column:reason;type:text;not null" json:"reason"`
	Status     common.ReportStatus `gorm:"column:status;size:20;not null;default:'Pending';index:idx_report_scope,priority:2" json:"status"`
	ReviewerID *uint64             `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// ApplicationLog is the append-only audit trail.
type ApplicationLog struct {
	ID         uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64               `gorm:"column:user_id;not null;index" json:"user_id"`
	ActorKind  common.PrincipalKind `gorm:"column:actor_kind;size:20;not null;default:'user'" json:"actor_kind"`
	Action     common.ActionType    `gorm:"column:action;size:64;not null;index" json:"action"`
	TargetID   uint64               `gorm:"column:target_id" json:"target_id"`
	TargetType string               `gorm:"column:target_type;size:20" json:"target_type"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ApplicationLog) TableName() string {
	return "application_log"
}
