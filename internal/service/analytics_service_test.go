package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnalyticsService(db *gorm.DB) AnalyticsService {
	return NewAnalyticsService(
		repository.NewSocialAccountRepository(db),
		repository.NewPostRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

func seedSnapshot(t *testing.T, db *gorm.DB, accountID uint64, date time.Time, followers int) {
	t.Helper()
	require.NoError(t, db.Create(&model.AnalyticsSnapshot{
		SocialAccountID: accountID,
		SnapshotDate:    date,
		FollowersCount:  followers,
	}).Error)
}

func TestGetFollowerGrowth(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()

	a := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a", IsActive: true,
	})
	b := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "b", IsActive: true,
	})

	day1 := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	seedSnapshot(t, db, a.ID, day1, 100)
	seedSnapshot(t, db, b.ID, day1, 200)
	seedSnapshot(t, db, a.ID, day3, 150)

	points, err := svc.GetFollowerGrowth(ctx, 1, &dto.AnalyticsQueryDTO{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-10",
	})
	require.NoError(t, err)

	// 同日多账号折叠求和，无快照的日期不出现
	require.Len(t, points, 2)
	assert.Equal(t, "2026-08-01", points[0].Date)
	assert.Equal(t, 300, points[0].Followers)
	assert.Equal(t, "2026-08-03", points[1].Date)
	assert.Equal(t, 150, points[1].Followers)
}

func TestGetFollowerGrowthExcludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)

	a := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a", IsActive: true,
	})
	inactive := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "b", IsActive: false,
	})

	day := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	seedSnapshot(t, db, a.ID, day, 100)
	seedSnapshot(t, db, inactive.ID, day, 999)

	points, err := svc.GetFollowerGrowth(context.Background(), 1, &dto.AnalyticsQueryDTO{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-02",
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 100, points[0].Followers)
}

func TestGetTopPosts(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformFacebook, AccountID: "a", IsActive: true,
	})

	longContent := strings.Repeat("长", 150)
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1",
		Content: longContent, EngagementRate: 9.0, PublishedAt: time.Now(),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p2",
		Content: "short", EngagementRate: 4.2, PublishedAt: time.Now(),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p3",
		Content: "lowest", EngagementRate: 1.0, PublishedAt: time.Now(),
	})

	posts, err := svc.GetTopPosts(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, 9.0, posts[0].EngagementRate)
	assert.Equal(t, 4.2, posts[1].EngagementRate)
	assert.Equal(t, model.PlatformFacebook, posts[0].Platform)

	// 长内容截断为 100 字符加省略号
	assert.Equal(t, strings.Repeat("长", 100)+"...", posts[0].Content)
	assert.Equal(t, "short", posts[1].Content)
}

func TestGetTopPostsLimitFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "a", IsActive: true,
	})
	for i := 0; i < 15; i++ {
		seedPost(t, db, &model.Post{
			SocialAccountID: account.ID,
			PlatformPostID:  fmt.Sprintf("p%d", i),
			EngagementRate:  float64(i),
			PublishedAt:     time.Now(),
		})
	}

	// 越界 limit 回落默认 10
	posts, err := svc.GetTopPosts(ctx, 1, 500)
	require.NoError(t, err)
	assert.Len(t, posts, consts.TopPostsDefaultLimit)

	posts, err = svc.GetTopPosts(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, posts, consts.TopPostsDefaultLimit)
}

func TestGetPlatformBreakdown(t *testing.T) {
	db := newTestDB(t)
	mr := newTestRedis(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()

	ig1 := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "ig1",
		FollowerCount: 100, IsActive: true,
	})
	ig2 := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "ig2",
		FollowerCount: 200, IsActive: true,
	})
	tw := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "tw",
		FollowerCount: 50, IsActive: true,
	})

	seedPost(t, db, &model.Post{
		SocialAccountID: ig1.ID, PlatformPostID: "p1",
		LikesCount: 10, EngagementRate: 4.0, PublishedAt: time.Now(),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: ig2.ID, PlatformPostID: "p2",
		LikesCount: 30, EngagementRate: 6.0, PublishedAt: time.Now(),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: tw.ID, PlatformPostID: "p3",
		LikesCount: 5, EngagementRate: 2.0, PublishedAt: time.Now(),
	})

	stats, err := svc.GetPlatformBreakdown(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// 同平台账号合并
	assert.Equal(t, model.PlatformInstagram, stats[0].Platform)
	assert.Equal(t, 300, stats[0].Followers)
	assert.Equal(t, 2, stats[0].Posts)
	assert.Equal(t, 40, stats[0].TotalLikes)
	assert.Equal(t, 5.0, stats[0].AvgEngagement)

	assert.Equal(t, model.PlatformTwitter, stats[1].Platform)
	assert.Equal(t, 50, stats[1].Followers)

	// 结果写入缓存
	assert.True(t, mr.Exists(fmt.Sprintf("%s%d", consts.PlatformBreakdownKey, 1)))

	// 命中缓存时不再查库
	cached, err := svc.GetPlatformBreakdown(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, stats, cached)
}

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a",
		FollowerCount: 400, IsActive: true,
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1",
		LikesCount: 40, CommentsCount: 5, SharesCount: 5, ViewsCount: 1000,
		EngagementRate: 5.0, PublishedAt: time.Now().AddDate(0, 0, -1),
	})
	seedSnapshot(t, db, account.ID, time.Now().AddDate(0, 0, -1), 400)

	dashboard, err := svc.GetDashboard(ctx, 1, &dto.AnalyticsQueryDTO{Period: dto.PeriodLast7Days})
	require.NoError(t, err)
	require.NotNil(t, dashboard.Overview)

	assert.Equal(t, 400, dashboard.Overview.TotalFollowers)
	assert.EqualValues(t, 1, dashboard.Overview.TotalPosts)
	assert.Equal(t, 5.0, dashboard.Overview.AvgEngagement)
	assert.Equal(t, 1, dashboard.Overview.ConnectedAccounts)
	assert.Len(t, dashboard.Overview.FollowerGrowth, 1)
	assert.Len(t, dashboard.TopPosts, 1)
	assert.Len(t, dashboard.PlatformBreakdown, 1)
	require.NotNil(t, dashboard.DateRange)
	assert.NotEmpty(t, dashboard.DateRange.StartDate)
	assert.NotEmpty(t, dashboard.DateRange.EndDate)
}

type failingPostRepo struct {
	repository.PostRepo
}

func (r failingPostRepo) AvgEngagementRate(context.Context, []uint64, *repository.DateRange) (float64, error) {
	return 0, errors.New("db down")
}

func TestGetDashboardFailsAsWhole(t *testing.T) {
	db := newTestDB(t)
	accountRepo := repository.NewSocialAccountRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	svc := NewAnalyticsService(accountRepo, failingPostRepo{repository.NewPostRepository(db)}, snapshotRepo)

	seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "a", IsActive: true,
	})

	// 任一子查询失败，整个仪表盘请求失败，不返回部分结果
	_, err := svc.GetDashboard(context.Background(), 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
