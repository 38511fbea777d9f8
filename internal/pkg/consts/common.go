package consts

const (
	TopPostsDefaultLimit = 10
	TopPostsMaxLimit     = 50
	DashboardTopPosts    = 5
)

const (
	ContentPreviewLength = 100
)
