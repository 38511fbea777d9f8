package consts

const (
	PlatformBreakdownKey = "analytics:platforms:"
	TopPostsKey          = "analytics:top:"
	GrowthKey            = "analytics:growth:"
	AccountListKey       = "account:list:"
)

const (
	SnapshotJobLock = "lock:snapshot:daily"
)
