package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateRange 查询时间窗口，按 published_at 过滤
type DateRange struct {
	Start time.Time
	End   time.Time
}

// CounterTotals 帖子计数聚合结果
type CounterTotals struct {
	TotalLikes    int64 `gorm:"column:total_likes"`
	TotalComments int64 `gorm:"column:total_comments"`
	TotalShares   int64 `gorm:"column:total_shares"`
	TotalViews    int64 `gorm:"column:total_views"`
	Count         int64 `gorm:"column:count"`
}

// PostFilter 分页查询过滤条件
type PostFilter struct {
	AccountIDs []uint64
	Range      *DateRange
	Limit      int
	Offset     int
}

type PostRepo interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	FindByAccountIDs(ctx context.Context, accountIDs []uint64, dateRange *DateRange) ([]*model.Post, error)
	FindPage(ctx context.Context, filter PostFilter) ([]*model.Post, int64, error)
	TopByEngagement(ctx context.Context, accountIDs []uint64, limit int) ([]*model.Post, error)
	CountByAccountIDs(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (int64, error)
	SumCounters(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (*CounterTotals, error)
	AvgEngagementRate(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (float64, error)
	UpsertPlatformPost(ctx context.Context, post *model.Post) error
	UpdateMetrics(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, post *model.Post) error
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (r *postRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func scopeAccountsAndRange(accountIDs []uint64, dateRange *DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("social_account_id IN ?", accountIDs)
		if dateRange != nil {
			db = db.Where("published_at BETWEEN ? AND ?", dateRange.Start, dateRange.End)
		}
		return db
	}
}

func (r *postRepoImpl) FindByAccountIDs(ctx context.Context, accountIDs []uint64, dateRange *DateRange) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	if len(accountIDs) == 0 {
		return posts, nil
	}
	result := r.db.WithContext(ctx).
		Scopes(scopeAccountsAndRange(accountIDs, dateRange)).
		Order("published_at DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (r *postRepoImpl) FindPage(ctx context.Context, filter PostFilter) ([]*model.Post, int64, error) {
	posts := make([]*model.Post, 0)
	if len(filter.AccountIDs) == 0 {
		return posts, 0, nil
	}

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(scopeAccountsAndRange(filter.AccountIDs, filter.Range)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	result := r.db.WithContext(ctx).
		Scopes(scopeAccountsAndRange(filter.AccountIDs, filter.Range)).
		Order("published_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return posts, total, nil
}

// TopByEngagement 按互动率降序取前 limit 条，同分时保持存储顺序
func (r *postRepoImpl) TopByEngagement(ctx context.Context, accountIDs []uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	if len(accountIDs) == 0 {
		return posts, nil
	}
	result := r.db.WithContext(ctx).
		Where("social_account_id IN ?", accountIDs).
		Order("engagement_rate DESC").
		Limit(limit).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (r *postRepoImpl) CountByAccountIDs(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(scopeAccountsAndRange(accountIDs, dateRange)).
		Count(&count).Error
	return count, err
}

func (r *postRepoImpl) SumCounters(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (*CounterTotals, error) {
	totals := &CounterTotals{}
	if len(accountIDs) == 0 {
		return totals, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select("COALESCE(SUM(likes_count),0) AS total_likes," +
			"COALESCE(SUM(comments_count),0) AS total_comments," +
			"COALESCE(SUM(shares_count),0) AS total_shares," +
			"COALESCE(SUM(views_count),0) AS total_views," +
			"COUNT(*) AS count").
		Scopes(scopeAccountsAndRange(accountIDs, dateRange)).
		Scan(totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// AvgEngagementRate 已存互动率的非加权平均，无帖子时为 0
func (r *postRepoImpl) AvgEngagementRate(ctx context.Context, accountIDs []uint64, dateRange *DateRange) (float64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select("COALESCE(AVG(engagement_rate),0)").
		Scopes(scopeAccountsAndRange(accountIDs, dateRange)).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// UpsertPlatformPost 采用 Upsert 逻辑。(social_account_id, platform_post_id) 已存在时
// 刷新各项计数与互动率（覆盖，不是累加）
func (r *postRepoImpl) UpsertPlatformPost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "social_account_id"}, {Name: "platform_post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"likes_count",
			"comments_count",
			"shares_count",
			"views_count",
			"engagement_rate",
			"fetched_at",
			"updated_at",
		}),
	}).Create(post).Error
}

func (r *postRepoImpl) UpdateMetrics(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"likes_count":     post.LikesCount,
			"comments_count":  post.CommentsCount,
			"shares_count":    post.SharesCount,
			"views_count":     post.ViewsCount,
			"engagement_rate": post.EngagementRate,
		}).Error
}

func (r *postRepoImpl) DeletePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Delete(post).Error
}
