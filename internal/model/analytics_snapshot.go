package model

import (
	"time"
)

// AnalyticsSnapshot 账号每日滚存快照，创建后不可变更
type AnalyticsSnapshot struct {
	ID                uint64    `gorm:"primaryKey"`
	SocialAccountID   uint64    `gorm:"not null;index:idx_account_date,unique;column:social_account_id" json:"social_account_id"`
	SnapshotDate      time.Time `gorm:"type:date;not null;index:idx_account_date,unique;column:snapshot_date" json:"snapshot_date"`
	FollowersCount    int       `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount    int       `gorm:"not null;default:0" json:"following_count"`
	PostsCount        int       `gorm:"not null;default:0" json:"posts_count"`
	TotalLikes        int       `gorm:"not null;default:0" json:"total_likes"`
	TotalComments     int       `gorm:"not null;default:0" json:"total_comments"`
	TotalShares       int       `gorm:"not null;default:0" json:"total_shares"`
	TotalViews        int       `gorm:"not null;default:0" json:"total_views"`
	AvgEngagementRate float64   `gorm:"type:decimal(5,2);not null;default:0" json:"avg_engagement_rate"`
	CreatedAt         time.Time `json:"created_at"`
}

func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}
