package dto

// PostListQueryDTO 帖子分页查询参数
type PostListQueryDTO struct {
	SocialAccountID uint64 `form:"socialAccountId"`
	Platform        string `form:"platform" binding:"omitempty,oneof=twitter instagram linkedin facebook"`
	StartDate       string `form:"startDate"`
	EndDate         string `form:"endDate"`
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
}

// PostDTO 帖子完整信息
type PostDTO struct {
	ID              uint64  `json:"id"`
	SocialAccountID uint64  `json:"social_account_id"`
	PlatformPostID  string  `json:"platform_post_id"`
	Content         string  `json:"content"`
	PostType        string  `json:"post_type"`
	PostURL         string  `json:"post_url"`
	LikesCount      int     `json:"likes_count"`
	CommentsCount   int     `json:"comments_count"`
	SharesCount     int     `json:"shares_count"`
	ViewsCount      int     `json:"views_count"`
	EngagementRate  float64 `json:"engagement_rate"`
	PublishedAt     string  `json:"published_at"`
	FetchedAt       string  `json:"fetched_at"`
}

// PostListDTO 帖子分页返回包装
type PostListDTO struct {
	Data       []*PostDTO `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int64      `json:"total_pages"`
}

// UpdatePostMetricsDTO 手动修正帖子计数，全部字段可选但必须非负
type UpdatePostMetricsDTO struct {
	LikesCount    *int `json:"likes_count" binding:"omitempty,gte=0"`
	CommentsCount *int `json:"comments_count" binding:"omitempty,gte=0"`
	SharesCount   *int `json:"shares_count" binding:"omitempty,gte=0"`
	ViewsCount    *int `json:"views_count" binding:"omitempty,gte=0"`
}

// PostAnalyticsDTO 帖子计数汇总
type PostAnalyticsDTO struct {
	TotalPosts        int64   `json:"total_posts"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
	TotalViews        int64   `json:"total_views"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}
