package dbmysql

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  uint64    `gorm:"column:author_id;not null;index:idx_post_author_created,priority:1" json:"author_id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	ImageURL  string    `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	LikeCount int64     `gorm:"column:like_count;not null;default:0" json:"like_count"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index;index:idx_post_author_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type Comment struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64     `gorm:"column:post_id;not null;index" json:"post_id"`
	AuthorID  uint64     `gorm:"column:author_id;not null;index" json:"author_id"`
	ParentID  *uint64    `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	EditedAt  *time.Time `gorm:"column:edited_at" json:"edited_at,omitempty"`
}

// Like is the junction row behind Post.LikeCount.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:idx_like_post_user,priority:1" json:"post_id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:idx_like_post_user,priority:2;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
