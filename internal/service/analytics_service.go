package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type AnalyticsService interface {
	// GetDashboard 仪表盘聚合，各子查询并发执行，任一失败整体失败
	GetDashboard(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.DashboardDTO, error)
	// GetFollowerGrowth 粉丝增长曲线，按快照日期聚合多账号
	GetFollowerGrowth(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) ([]*dto.GrowthPointDTO, error)
	// GetTopPosts 互动率最高的帖子，limit 超界时回落默认值
	GetTopPosts(ctx context.Context, userID uint64, limit int) ([]*dto.TopPostDTO, error)
	// GetPlatformBreakdown 按平台聚合账号与帖子统计，同平台多账号合并
	GetPlatformBreakdown(ctx context.Context, userID uint64) ([]*dto.PlatformStatsDTO, error)
}

type analyticsServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	postRepo     repository.PostRepo
	snapshotRepo repository.SnapshotRepo
}

func NewAnalyticsService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	snapshotRepo repository.SnapshotRepo,
) AnalyticsService {
	return &analyticsServiceImpl{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		snapshotRepo: snapshotRepo,
	}
}

func collectAccountIDs(accounts []*model.SocialAccount) []uint64 {
	ids := make([]uint64, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func (s *analyticsServiceImpl) GetDashboard(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.DashboardDTO, error) {
	start, end, err := ResolveDateRange(q, time.Now())
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	accountIDs := collectAccountIDs(accounts)
	dateRange := &repository.DateRange{Start: start, End: end}

	var (
		growth     []*dto.GrowthPointDTO
		topPosts   []*dto.TopPostDTO
		breakdown  []*dto.PlatformStatsDTO
		totalPosts int64
		avgRate    float64
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		growth, err = s.followerGrowthBetween(egCtx, userID, start, end)
		return err
	})
	eg.Go(func() error {
		var err error
		topPosts, err = s.topPostsOf(egCtx, accounts, consts.DashboardTopPosts)
		return err
	})
	eg.Go(func() error {
		var err error
		breakdown, err = s.platformBreakdownOf(egCtx, accounts)
		return err
	})
	eg.Go(func() error {
		var err error
		totalPosts, err = s.postRepo.CountByAccountIDs(egCtx, accountIDs, dateRange)
		return err
	})
	eg.Go(func() error {
		var err error
		avgRate, err = s.postRepo.AvgEngagementRate(egCtx, accountIDs, dateRange)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	totalFollowers := 0
	for _, a := range accounts {
		totalFollowers += a.FollowerCount
	}

	return &dto.DashboardDTO{
		Overview: &dto.OverviewDTO{
			TotalFollowers:    totalFollowers,
			FollowerGrowth:    growth,
			TotalPosts:        totalPosts,
			AvgEngagement:     util.Round2(avgRate),
			ConnectedAccounts: len(accounts),
		},
		TopPosts:          topPosts,
		PlatformBreakdown: breakdown,
		DateRange: &dto.DateRangeDTO{
			StartDate: start.Format(time.RFC3339),
			EndDate:   end.Format(time.RFC3339),
		},
	}, nil
}

func (s *analyticsServiceImpl) GetFollowerGrowth(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) ([]*dto.GrowthPointDTO, error) {
	start, end, err := ResolveDateRange(q, time.Now())
	if err != nil {
		return nil, err
	}
	return s.followerGrowthBetween(ctx, userID, start, end)
}

// followerGrowthBetween 把多账号同日快照的粉丝数折叠为单点，缺快照的日期不补零
func (s *analyticsServiceImpl) followerGrowthBetween(ctx context.Context, userID uint64, start, end time.Time) ([]*dto.GrowthPointDTO, error) {
	snapshots, err := s.snapshotRepo.FindByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	points := make([]*dto.GrowthPointDTO, 0)
	index := make(map[string]*dto.GrowthPointDTO)
	for _, snap := range snapshots {
		date := snap.SnapshotDate.Format(time.DateOnly)
		point, ok := index[date]
		if !ok {
			point = &dto.GrowthPointDTO{Date: date}
			index[date] = point
			points = append(points, point)
		}
		point.Followers += snap.FollowersCount
	}
	return points, nil
}

func (s *analyticsServiceImpl) GetTopPosts(ctx context.Context, userID uint64, limit int) ([]*dto.TopPostDTO, error) {
	if limit <= 0 || limit > consts.TopPostsMaxLimit {
		limit = consts.TopPostsDefaultLimit
	}
	accounts, err := s.accountRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	return s.topPostsOf(ctx, accounts, limit)
}

func (s *analyticsServiceImpl) topPostsOf(ctx context.Context, accounts []*model.SocialAccount, limit int) ([]*dto.TopPostDTO, error) {
	platformByAccount := make(map[uint64]string, len(accounts))
	for _, a := range accounts {
		platformByAccount[a.ID] = a.Platform
	}

	posts, err := s.postRepo.TopByEngagement(ctx, collectAccountIDs(accounts), limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TopPostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, &dto.TopPostDTO{
			ID:             post.ID,
			Content:        util.TruncateContent(post.Content, consts.ContentPreviewLength),
			Platform:       platformByAccount[post.SocialAccountID],
			LikesCount:     post.LikesCount,
			CommentsCount:  post.CommentsCount,
			SharesCount:    post.SharesCount,
			EngagementRate: post.EngagementRate,
			PublishedAt:    post.PublishedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *analyticsServiceImpl) GetPlatformBreakdown(ctx context.Context, userID uint64) ([]*dto.PlatformStatsDTO, error) {
	cacheKey := fmt.Sprintf("%s%d", consts.PlatformBreakdownKey, userID)
	cached, err := redis.GetValue(ctx, cacheKey)
	if err != nil {
		log.WarnContext(ctx, "read platform breakdown cache failed", "err", err)
	} else if cached != "" {
		stats := make([]*dto.PlatformStatsDTO, 0)
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
		log.WarnContext(ctx, "decode platform breakdown cache failed", "key", cacheKey)
	}

	accounts, err := s.accountRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	stats, err := s.platformBreakdownOf(ctx, accounts)
	if err != nil {
		return nil, err
	}

	if err := redis.SetWithMidnightExpiration(ctx, cacheKey, stats); err != nil {
		log.WarnContext(ctx, "write platform breakdown cache failed", "err", err)
	}
	return stats, nil
}

// platformBreakdownOf 按账号首次出现的平台顺序输出，保证结果稳定
func (s *analyticsServiceImpl) platformBreakdownOf(ctx context.Context, accounts []*model.SocialAccount) ([]*dto.PlatformStatsDTO, error) {
	order := make([]string, 0)
	grouped := make(map[string][]*model.SocialAccount)
	for _, a := range accounts {
		if _, ok := grouped[a.Platform]; !ok {
			order = append(order, a.Platform)
		}
		grouped[a.Platform] = append(grouped[a.Platform], a)
	}

	stats := make([]*dto.PlatformStatsDTO, 0, len(order))
	for _, platform := range order {
		group := grouped[platform]
		ids := collectAccountIDs(group)

		totals, err := s.postRepo.SumCounters(ctx, ids, nil)
		if err != nil {
			return nil, err
		}
		avgRate, err := s.postRepo.AvgEngagementRate(ctx, ids, nil)
		if err != nil {
			return nil, err
		}

		followers := 0
		for _, a := range group {
			followers += a.FollowerCount
		}
		stats = append(stats, &dto.PlatformStatsDTO{
			Platform:      platform,
			Followers:     followers,
			Posts:         int(totals.Count),
			AvgEngagement: util.Round2(avgRate),
			TotalLikes:    int(totals.TotalLikes),
		})
	}
	return stats, nil
}
