package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type SocialAccountService interface {
	// Connect 连接社交账号，同一用户同平台同账号重复连接视为冲突
	Connect(ctx context.Context, userID uint64, req *dto.ConnectAccountDTO) (*dto.AccountDTO, error)
	// Disconnect 断开账号，关联帖子与快照级联删除
	Disconnect(ctx context.Context, userID, accountID uint64) error
	ListAccounts(ctx context.Context, userID uint64) ([]*dto.AccountDTO, error)
	ToggleActive(ctx context.Context, userID, accountID uint64, active bool) error
	// SyncProfile 采集流回写账号画像，账号不存在时跳过
	SyncProfile(ctx context.Context, event *dto.AccountProfileEventDTO) error
}

type socialAccountServiceImpl struct {
	accountRepo repository.SocialAccountRepo
}

func NewSocialAccountService(accountRepo repository.SocialAccountRepo) SocialAccountService {
	return &socialAccountServiceImpl{accountRepo: accountRepo}
}

// invalidateBreakdownCache 账号集合变化后清掉平台聚合缓存
func invalidateBreakdownCache(ctx context.Context, userID uint64) {
	key := fmt.Sprintf("%s%d", consts.PlatformBreakdownKey, userID)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "invalidate breakdown cache failed", "key", key, "err", err)
	}
}

func (s *socialAccountServiceImpl) Connect(ctx context.Context, userID uint64, req *dto.ConnectAccountDTO) (*dto.AccountDTO, error) {
	if !model.IsValidPlatform(req.Platform) {
		return nil, ErrParamInvalid
	}

	account := &model.SocialAccount{
		UserID:          userID,
		Platform:        req.Platform,
		AccountID:       req.AccountID,
		AccountName:     req.AccountName,
		AccountUsername: req.AccountUsername,
		AccessToken:     req.AccessToken,
		IsActive:        true,
	}
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountExist
		}
		return nil, err
	}
	invalidateBreakdownCache(ctx, userID)

	return toAccountDTO(account), nil
}

func (s *socialAccountServiceImpl) Disconnect(ctx context.Context, userID, accountID uint64) error {
	account, err := s.accountRepo.GetAccountByUser(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if err := s.accountRepo.DeleteAccount(ctx, account); err != nil {
		return err
	}
	invalidateBreakdownCache(ctx, userID)
	return nil
}

func (s *socialAccountServiceImpl) ListAccounts(ctx context.Context, userID uint64) ([]*dto.AccountDTO, error) {
	accounts, err := s.accountRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, toAccountDTO(account))
	}
	return result, nil
}

func (s *socialAccountServiceImpl) ToggleActive(ctx context.Context, userID, accountID uint64, active bool) error {
	account, err := s.accountRepo.GetAccountByUser(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if err := s.accountRepo.SetActive(ctx, accountID, active); err != nil {
		return err
	}
	invalidateBreakdownCache(ctx, userID)
	return nil
}

func (s *socialAccountServiceImpl) SyncProfile(ctx context.Context, event *dto.AccountProfileEventDTO) error {
	account, err := s.accountRepo.GetAccount(ctx, event.SocialAccountID)
	if err != nil {
		return err
	}
	if account == nil {
		// 采集流可能晚于账号断开到达，丢弃而不是报错，避免毒消息阻塞消费
		log.WarnContext(ctx, "profile event for unknown account, skipped", "account_id", event.SocialAccountID)
		return nil
	}

	account.FollowerCount = event.FollowerCount
	account.FollowingCount = event.FollowingCount
	if event.ProfilePictureURL != "" {
		account.ProfilePictureURL = event.ProfilePictureURL
	}
	if err := s.accountRepo.UpdateProfile(ctx, account); err != nil {
		return err
	}
	invalidateBreakdownCache(ctx, account.UserID)
	return nil
}

func toAccountDTO(account *model.SocialAccount) *dto.AccountDTO {
	result := &dto.AccountDTO{}
	_ = copier.Copy(result, account)
	result.CreatedAt = account.CreatedAt.Format(time.RFC3339)
	return result
}
