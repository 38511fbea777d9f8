package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	// IngestPlatformPost 采集流写入帖子，互动率以曝光量为分母
	IngestPlatformPost(ctx context.Context, event *dto.PlatformPostEventDTO) error
	ListPosts(ctx context.Context, userID uint64, q *dto.PostListQueryDTO) (*dto.PostListDTO, error)
	GetPost(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error)
	// UpdateMetrics 手动修正计数并以当前粉丝数为分母重算互动率
	UpdateMetrics(ctx context.Context, userID, postID uint64, req *dto.UpdatePostMetricsDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
	// GetPostAnalytics 用户全部启用账号的帖子计数汇总
	GetPostAnalytics(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.PostAnalyticsDTO, error)
}

type postServiceImpl struct {
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
}

func NewPostService(accountRepo repository.SocialAccountRepo, postRepo repository.PostRepo) PostService {
	return &postServiceImpl{accountRepo: accountRepo, postRepo: postRepo}
}

func (s *postServiceImpl) IngestPlatformPost(ctx context.Context, event *dto.PlatformPostEventDTO) error {
	account, err := s.accountRepo.GetAccount(ctx, event.SocialAccountID)
	if err != nil {
		return err
	}
	if account == nil {
		log.WarnContext(ctx, "post event for unknown account, skipped", "account_id", event.SocialAccountID)
		return nil
	}

	publishedAt, err := time.Parse(time.RFC3339, event.PublishedAt)
	if err != nil {
		log.WarnContext(ctx, "post event with malformed published_at, skipped",
			"account_id", event.SocialAccountID, "platform_post_id", event.PlatformPostID)
		return nil
	}

	now := time.Now()
	post := &model.Post{
		SocialAccountID: event.SocialAccountID,
		PlatformPostID:  event.PlatformPostID,
		Content:         event.Content,
		PostType:        event.PostType,
		PostURL:         event.PostURL,
		LikesCount:      event.LikesCount,
		CommentsCount:   event.CommentsCount,
		SharesCount:     event.SharesCount,
		ViewsCount:      event.ViewsCount,
		EngagementRate: CalculateEngagementRate(
			event.LikesCount, event.CommentsCount, event.SharesCount, event.ViewsCount),
		PublishedAt: publishedAt,
		FetchedAt:   now,
	}
	if err := s.postRepo.UpsertPlatformPost(ctx, post); err != nil {
		return err
	}
	invalidateBreakdownCache(ctx, account.UserID)
	return nil
}

// accountIDsForQuery 解析查询作用域：指定账号需归属校验，指定平台过滤账号集合
func (s *postServiceImpl) accountIDsForQuery(ctx context.Context, userID uint64, accountID uint64, platform string) ([]uint64, error) {
	if accountID != 0 {
		account, err := s.accountRepo.GetAccountByUser(ctx, accountID, userID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, ErrAccountNotFound
		}
		if platform != "" && account.Platform != platform {
			return []uint64{}, nil
		}
		return []uint64{account.ID}, nil
	}

	accounts, err := s.accountRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(accounts))
	for _, a := range accounts {
		if platform != "" && a.Platform != platform {
			continue
		}
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, userID uint64, q *dto.PostListQueryDTO) (*dto.PostListDTO, error) {
	ids, err := s.accountIDsForQuery(ctx, userID, q.SocialAccountID, q.Platform)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var dateRange *repository.DateRange
	if q.StartDate != "" || q.EndDate != "" {
		start, end, err := ResolveDateRange(&dto.AnalyticsQueryDTO{
			StartDate: q.StartDate,
			EndDate:   q.EndDate,
		}, time.Now())
		if err != nil {
			return nil, err
		}
		dateRange = &repository.DateRange{Start: start, End: end}
	}

	posts, total, err := s.postRepo.FindPage(ctx, repository.PostFilter{
		AccountIDs: ids,
		Range:      dateRange,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		data = append(data, toPostDTO(post))
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &dto.PostListDTO{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// getOwnedPost 归属校验，帖子不存在与不属于当前用户统一按不存在处理
func (s *postServiceImpl) getOwnedPost(ctx context.Context, userID, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	account, err := s.accountRepo.GetAccountByUser(ctx, post.SocialAccountID, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) UpdateMetrics(ctx context.Context, userID, postID uint64, req *dto.UpdatePostMetricsDTO) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.GetAccount(ctx, post.SocialAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrPostNotFound
	}

	if req.LikesCount != nil {
		post.LikesCount = *req.LikesCount
	}
	if req.CommentsCount != nil {
		post.CommentsCount = *req.CommentsCount
	}
	if req.SharesCount != nil {
		post.SharesCount = *req.SharesCount
	}
	if req.ViewsCount != nil {
		post.ViewsCount = *req.ViewsCount
	}
	// 手动修正没有可信曝光量，以账号当前粉丝数为分母重算
	post.EngagementRate = CalculateEngagementRate(
		post.LikesCount, post.CommentsCount, post.SharesCount, account.FollowerCount)

	if err := s.postRepo.UpdateMetrics(ctx, post); err != nil {
		return nil, err
	}
	invalidateBreakdownCache(ctx, userID)
	return toPostDTO(post), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.DeletePost(ctx, post); err != nil {
		return err
	}
	invalidateBreakdownCache(ctx, userID)
	return nil
}

func (s *postServiceImpl) GetPostAnalytics(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.PostAnalyticsDTO, error) {
	start, end, err := ResolveDateRange(q, time.Now())
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	dateRange := &repository.DateRange{Start: start, End: end}

	totals, err := s.postRepo.SumCounters(ctx, ids, dateRange)
	if err != nil {
		return nil, err
	}
	avgRate, err := s.postRepo.AvgEngagementRate(ctx, ids, dateRange)
	if err != nil {
		return nil, err
	}
	return &dto.PostAnalyticsDTO{
		TotalPosts:        totals.Count,
		TotalLikes:        totals.TotalLikes,
		TotalComments:     totals.TotalComments,
		TotalShares:       totals.TotalShares,
		TotalViews:        totals.TotalViews,
		AvgEngagementRate: avgRate,
	}, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	result := &dto.PostDTO{}
	_ = copier.Copy(result, post)
	result.PublishedAt = post.PublishedAt.Format(time.RFC3339)
	result.FetchedAt = post.FetchedAt.Format(time.RFC3339)
	return result
}
