package model

import (
	"time"
)

// 支持的平台枚举
const (
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
	PlatformLinkedin  = "linkedin"
	PlatformFacebook  = "facebook"
)

// IsValidPlatform 校验平台枚举值
func IsValidPlatform(p string) bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformLinkedin, PlatformFacebook:
		return true
	}
	return false
}

type SocialAccount struct {
	ID                uint64    `gorm:"primaryKey"`
	UserID            uint64    `gorm:"not null;index:idx_user_platform_account,unique" json:"user_id"`
	Platform          string    `gorm:"type:varchar(20);not null;index:idx_user_platform_account,unique" json:"platform"`
	AccountID         string    `gorm:"type:varchar(255);not null;index:idx_user_platform_account,unique;column:account_id" json:"account_id"`
	AccountName       string    `gorm:"type:varchar(255)" json:"account_name"`
	AccountUsername   string    `gorm:"type:varchar(255)" json:"account_username"`
	AccessToken       string    `gorm:"type:text" json:"-"`
	ProfilePictureURL string    `gorm:"type:varchar(500)" json:"profile_picture_url"`
	FollowerCount     int       `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount    int       `gorm:"not null;default:0" json:"following_count"`
	IsActive          bool      `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// 关联关系（仅用于级联删除，不做内存图遍历）
	Posts     []Post              `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Snapshots []AnalyticsSnapshot `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
