package model

import (
	"time"
)

// 帖子类型枚举
const (
	PostTypeImage    = "image"
	PostTypeVideo    = "video"
	PostTypeCarousel = "carousel"
	PostTypeText     = "text"
)

type Post struct {
	ID              uint64    `gorm:"primaryKey"`
	SocialAccountID uint64    `gorm:"not null;index:idx_account_post,unique;column:social_account_id" json:"social_account_id"`
	PlatformPostID  string    `gorm:"type:varchar(255);not null;index:idx_account_post,unique;column:platform_post_id" json:"platform_post_id"`
	Content         string    `gorm:"type:text" json:"content"`
	PostType        string    `gorm:"type:varchar(20)" json:"post_type"`
	PostURL         string    `gorm:"type:varchar(500)" json:"post_url"`
	LikesCount      int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount   int       `gorm:"not null;default:0" json:"comments_count"`
	SharesCount     int       `gorm:"not null;default:0" json:"shares_count"`
	ViewsCount      int       `gorm:"not null;default:0" json:"views_count"`
	EngagementRate  float64   `gorm:"type:decimal(5,2);not null;default:0" json:"engagement_rate"`
	PublishedAt     time.Time `gorm:"index" json:"published_at"`
	FetchedAt       time.Time `json:"fetched_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
