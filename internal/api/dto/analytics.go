package dto

// 时间窗口枚举
const (
	PeriodLast7Days  = "7d"
	PeriodLast30Days = "30d"
	PeriodLast90Days = "90d"
	PeriodThisMonth  = "month"
	PeriodThisYear   = "year"
)

// AnalyticsQueryDTO 分析查询参数，日期为 ISO-8601 字符串
type AnalyticsQueryDTO struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Period    string `form:"period" binding:"omitempty,oneof=7d 30d 90d month year"`
}

// GrowthPointDTO 粉丝增长曲线上的一个点
type GrowthPointDTO struct {
	Date      string `json:"date"`
	Followers int    `json:"followers"`
}

// TopPostDTO 高互动帖子条目，内容截断展示
type TopPostDTO struct {
	ID             uint64  `json:"id"`
	Content        string  `json:"content"`
	Platform       string  `json:"platform"`
	LikesCount     int     `json:"likes_count"`
	CommentsCount  int     `json:"comments_count"`
	SharesCount    int     `json:"shares_count"`
	EngagementRate float64 `json:"engagement_rate"`
	PublishedAt    string  `json:"published_at"`
}

// PlatformStatsDTO 单平台聚合行，同平台多账号合并
type PlatformStatsDTO struct {
	Platform      string  `json:"platform"`
	Followers     int     `json:"followers"`
	Posts         int     `json:"posts"`
	AvgEngagement float64 `json:"avg_engagement"`
	TotalLikes    int     `json:"total_likes"`
}

// OverviewDTO 仪表盘总览
type OverviewDTO struct {
	TotalFollowers    int               `json:"total_followers"`
	FollowerGrowth    []*GrowthPointDTO `json:"follower_growth"`
	TotalPosts        int64             `json:"total_posts"`
	AvgEngagement     float64           `json:"avg_engagement"`
	ConnectedAccounts int               `json:"connected_accounts"`
}

// DateRangeDTO 解析后的查询窗口回显
type DateRangeDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DashboardDTO 仪表盘组合结果
type DashboardDTO struct {
	Overview          *OverviewDTO        `json:"overview"`
	TopPosts          []*TopPostDTO       `json:"top_posts"`
	PlatformBreakdown []*PlatformStatsDTO `json:"platform_breakdown"`
	DateRange         *DateRangeDTO       `json:"date_range"`
}

// ExportResultDTO 分析数据导出结果
type ExportResultDTO struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Rows       int    `json:"rows"`
}
