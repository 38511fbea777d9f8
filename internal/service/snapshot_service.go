package service

import (
	"Beacon/internal/model"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type SnapshotService interface {
	// CreateDailySnapshot 为账号创建当日快照，同日重复调用幂等返回已有记录
	CreateDailySnapshot(ctx context.Context, accountID uint64) (*model.AnalyticsSnapshot, error)
	// CreateDailySnapshotForUser 归属校验后创建快照，账号不属于该用户时按不存在处理
	CreateDailySnapshotForUser(ctx context.Context, userID, accountID uint64) (*model.AnalyticsSnapshot, error)
}

type snapshotServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	postRepo     repository.PostRepo
	snapshotRepo repository.SnapshotRepo
}

func NewSnapshotService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	snapshotRepo repository.SnapshotRepo,
) SnapshotService {
	return &snapshotServiceImpl{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *snapshotServiceImpl) CreateDailySnapshot(ctx context.Context, accountID uint64) (*model.AnalyticsSnapshot, error) {
	account, err := s.accountRepo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	today := util.GetMidnight(time.Now())

	existing, err := s.snapshotRepo.GetByAccountAndDate(ctx, accountID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// 快照记录的是账号全量帖子的滚存总量，不是当日增量；
	// 粉丝数取构建时刻的实时值
	totals, err := s.postRepo.SumCounters(ctx, []uint64{accountID}, nil)
	if err != nil {
		return nil, err
	}
	avgRate, err := s.postRepo.AvgEngagementRate(ctx, []uint64{accountID}, nil)
	if err != nil {
		return nil, err
	}

	snapshot := &model.AnalyticsSnapshot{
		SocialAccountID:   accountID,
		SnapshotDate:      today,
		FollowersCount:    account.FollowerCount,
		FollowingCount:    account.FollowingCount,
		PostsCount:        int(totals.Count),
		TotalLikes:        int(totals.TotalLikes),
		TotalComments:     int(totals.TotalComments),
		TotalShares:       int(totals.TotalShares),
		TotalViews:        int(totals.TotalViews),
		AvgEngagementRate: util.Round2(avgRate),
	}

	inserted, err := s.snapshotRepo.Insert(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// 唯一键竞争：并发任务已写入当日快照，回读即可
		log.InfoContext(ctx, "snapshot already created concurrently", "account_id", accountID)
		return s.snapshotRepo.GetByAccountAndDate(ctx, accountID, today)
	}

	return snapshot, nil
}

func (s *snapshotServiceImpl) CreateDailySnapshotForUser(ctx context.Context, userID, accountID uint64) (*model.AnalyticsSnapshot, error) {
	account, err := s.accountRepo.GetAccountByUser(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return s.CreateDailySnapshot(ctx, accountID)
}
