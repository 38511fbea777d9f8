package dto

// PlatformPostEventDTO 平台帖子指标事件（采集流）
// 计数为平台侧最新值，覆盖本地记录而非累加
type PlatformPostEventDTO struct {
	SocialAccountID uint64 `json:"social_account_id"`
	PlatformPostID  string `json:"platform_post_id"`
	Content         string `json:"content"`
	PostType        string `json:"post_type"`
	PostURL         string `json:"post_url"`
	LikesCount      int    `json:"likes_count"`
	CommentsCount   int    `json:"comments_count"`
	SharesCount     int    `json:"shares_count"`
	ViewsCount      int    `json:"views_count"`
	PublishedAt     string `json:"published_at"`
}

// AccountProfileEventDTO 平台账号画像事件（采集流）
type AccountProfileEventDTO struct {
	SocialAccountID   uint64 `json:"social_account_id"`
	FollowerCount     int    `json:"follower_count"`
	FollowingCount    int    `json:"following_count"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
