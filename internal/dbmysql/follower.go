package dbmysql

import (
	"time"

	"socialhub/internal/common"
)

// Follower is a directed edge: FollowerID follows FollowedID.
type Follower struct {
	ID         uint64              `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uint64              `gorm:"column:follower_id;not null;uniqueIndex:idx_follow_pair,priority:1" json:"follower_id"`
	FollowedID uint64              `gorm:"column:followed_id;not null;uniqueIndex:idx_follow_pair,priority:2;index:idx_followed_status,priority:1" json:"followed_id"`
	Status     common.FollowStatus `gorm:"column:status;size:20;not null;default:'pending';index:idx_followed_status,priority:2" json:"status"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
