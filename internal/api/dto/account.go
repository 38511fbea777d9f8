package dto

// ConnectAccountDTO 连接社交账号
type ConnectAccountDTO struct {
	Platform        string `json:"platform" binding:"required,oneof=twitter instagram linkedin facebook"`
	AccountID       string `json:"account_id" binding:"required,max=255"`
	AccountName     string `json:"account_name" binding:"max=255"`
	AccountUsername string `json:"account_username" binding:"max=255"`
	AccessToken     string `json:"access_token"`
}

// AccountDTO 社交账号展示信息，不回传令牌
type AccountDTO struct {
	ID                uint64 `json:"id"`
	Platform          string `json:"platform"`
	AccountID         string `json:"account_id"`
	AccountName       string `json:"account_name"`
	AccountUsername   string `json:"account_username"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowerCount     int    `json:"follower_count"`
	FollowingCount    int    `json:"following_count"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
}
