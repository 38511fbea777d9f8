package service

import (
	"Beacon/internal/model"
	"Beacon/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSnapshotService(db *gorm.DB) SnapshotService {
	return NewSnapshotService(
		repository.NewSocialAccountRepository(db),
		repository.NewPostRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

func TestCreateDailySnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := newSnapshotService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformInstagram, AccountID: "acc-1",
		FollowerCount: 500, FollowingCount: 80, IsActive: true,
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p1",
		LikesCount: 10, CommentsCount: 5, SharesCount: 5, ViewsCount: 400,
		EngagementRate: 5.0, PublishedAt: time.Now().AddDate(0, 0, -2),
	})
	seedPost(t, db, &model.Post{
		SocialAccountID: account.ID, PlatformPostID: "p2",
		LikesCount: 20, CommentsCount: 10, SharesCount: 0, ViewsCount: 600,
		EngagementRate: 5.0, PublishedAt: time.Now().AddDate(0, 0, -1),
	})

	snapshot, err := svc.CreateDailySnapshot(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 500, snapshot.FollowersCount)
	assert.Equal(t, 80, snapshot.FollowingCount)
	assert.Equal(t, 2, snapshot.PostsCount)
	assert.Equal(t, 30, snapshot.TotalLikes)
	assert.Equal(t, 15, snapshot.TotalComments)
	assert.Equal(t, 5, snapshot.TotalShares)
	assert.Equal(t, 1000, snapshot.TotalViews)
	assert.Equal(t, 5.0, snapshot.AvgEngagementRate)
}

func TestCreateDailySnapshotIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newSnapshotService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformTwitter, AccountID: "acc-1",
		FollowerCount: 100, IsActive: true,
	})

	first, err := svc.CreateDailySnapshot(ctx, account.ID)
	require.NoError(t, err)

	// 粉丝数变化后同日重建，返回已有快照而不是新记录
	require.NoError(t, db.Model(&model.SocialAccount{}).
		Where("id = ?", account.ID).
		Update("follower_count", 999).Error)

	second, err := svc.CreateDailySnapshot(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 100, second.FollowersCount)

	var count int64
	require.NoError(t, db.Model(&model.AnalyticsSnapshot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateDailySnapshotUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newSnapshotService(db)

	_, err := svc.CreateDailySnapshot(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreateDailySnapshotForUserOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newSnapshotService(db)
	ctx := context.Background()

	account := seedAccount(t, db, &model.SocialAccount{
		UserID: 1, Platform: model.PlatformLinkedin, AccountID: "acc-1", IsActive: true,
	})

	// 其他用户的账号按不存在处理
	_, err := svc.CreateDailySnapshotForUser(ctx, 2, account.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	snapshot, err := svc.CreateDailySnapshotForUser(ctx, 1, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, snapshot.SocialAccountID)
}
