package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/repository"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) PostService {
	return NewPostService(
		repository.NewSocialAccountRepository(db),
		repository.NewPostRepository(db),
	)
}

func intPtr(v int) *int { return &v }

func TestIngestPlatformPost(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a", IsActive: true,
	})

	event := &dto.PlatformPostEventDTO{
		SocialAccountID: account.ID,
		PlatformPostID:  "ig-post-1",
		Content:         "hello",
		PostType:        model.PostTypeImage,
		LikesCount:      40, CommentsCount: 5, SharesCount: 5, ViewsCount: 1000,
		PublishedAt: time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
	}
	require.NoError(t, svc.IngestPlatformPost(ctx, event))

	var post model.Post
	require.NoError(t, db.Where("platform_post_id = ?", "ig-post-1").First(&post).Error)
	// 互动率以曝光量为分母
	assert.Equal(t, 5.0, post.EngagementRate)

	// 同一帖子再次上报覆盖计数，不新增记录
	event.LikesCount = 90
	require.NoError(t, svc.IngestPlatformPost(ctx, event))

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Where("platform_post_id = ?", "ig-post-1").First(&post).Error)
	assert.Equal(t, 90, post.LikesCount)
	assert.Equal(t, 10.0, post.EngagementRate)
}

func TestIngestPlatformPostUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)

	// 未知账号事件丢弃不报错
	require.NoError(t, svc.IngestPlatformPost(context.Background(), &dto.PlatformPostEventDTO{
		SocialAccountID: 777,
		PlatformPostID:  "x",
		PublishedAt:     time.Now().Format(time.RFC3339),
	}))

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListPostsPagination(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "a", IsActive: true,
	})
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedPost(t, db, &model.Post{
			SocialAccountID: account.ID,
			PlatformPostID:  fmt.Sprintf("p%d", i),
			PublishedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}

	result, err := svc.ListPosts(ctx, 1, &dto.PostListQueryDTO{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, result.Total)
	assert.Len(t, result.Data, 10)
	assert.EqualValues(t, 3, result.TotalPages)
	// 按发布时间倒序
	assert.Equal(t, "p14", result.Data[0].PlatformPostID)
}

func TestListPostsPlatformFilter(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	ig := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "ig", IsActive: true,
	})
	tw := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "tw", IsActive: true,
	})
	seedPost(t, db, &model.Post{SocialAccountID: ig.ID, PlatformPostID: "ig-1", PublishedAt: time.Now()})
	seedPost(t, db, &model.Post{SocialAccountID: tw.ID, PlatformPostID: "tw-1", PublishedAt: time.Now()})

	result, err := svc.ListPosts(ctx, 1, &dto.PostListQueryDTO{
		Platform: model.PlatformTwitter, Page: 1, Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "tw-1", result.Data[0].PlatformPostID)
}

func TestGetPostOwnership(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformLinkedin, AccountID: "a", IsActive: true,
	})
	post := seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1", PublishedAt: time.Now(),
	})

	got, err := svc.GetPost(ctx, 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	// 他人的帖子按不存在处理
	_, err = svc.GetPost(ctx, 2, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPost(ctx, 1, 99999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdateMetricsRecalculatesRate(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a",
		FollowerCount: 200, IsActive: true,
	})
	post := seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1",
		LikesCount: 10, CommentsCount: 0, SharesCount: 0, ViewsCount: 1000,
		EngagementRate: 1.0, PublishedAt: time.Now(),
	})

	// 手动修正以粉丝数为分母重算：(30+10+10)/200*100 = 25
	updated, err := svc.UpdateMetrics(ctx, 1, post.ID, &dto.UpdatePostMetricsDTO{
		LikesCount:    intPtr(30),
		CommentsCount: intPtr(10),
		SharesCount:   intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.LikesCount)
	assert.Equal(t, 25.0, updated.EngagementRate)
	// 未提供的字段保持原值
	assert.Equal(t, 1000, updated.ViewsCount)
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "a", IsActive: true,
	})
	post := seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1", PublishedAt: time.Now(),
	})

	assert.ErrorIs(t, svc.DeletePost(ctx, 2, post.ID), ErrPostNotFound)
	require.NoError(t, svc.DeletePost(ctx, 1, post.ID))

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetPostAnalytics(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	svc := newPostService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "a", IsActive: true,
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1",
		LikesCount: 10, CommentsCount: 2, SharesCount: 1, ViewsCount: 100,
		EngagementRate: 13.0, PublishedAt: time.Now().AddDate(0, 0, -1),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p2",
		LikesCount: 20, CommentsCount: 4, SharesCount: 3, ViewsCount: 300,
		EngagementRate: 9.0, PublishedAt: time.Now().AddDate(0, 0, -2),
	})
	// 窗口外的帖子不计入
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p-old",
		LikesCount: 999, PublishedAt: time.Now().AddDate(0, 0, -60),
	})

	result, err := svc.GetPostAnalytics(ctx, 1, &dto.AnalyticsQueryDTO{Period: dto.PeriodLast7Days})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.TotalPosts)
	assert.EqualValues(t, 30, result.TotalLikes)
	assert.EqualValues(t, 6, result.TotalComments)
	assert.EqualValues(t, 4, result.TotalShares)
	assert.EqualValues(t, 400, result.TotalViews)
	assert.Equal(t, 11.0, result.AvgEngagementRate)
}
