package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SocialAccountRepo interface {
	GetAccount(ctx context.Context, id uint64) (*model.SocialAccount, error)
	GetAccountByUser(ctx context.Context, id uint64, userID uint64) (*model.SocialAccount, error)
	FindByUser(ctx context.Context, userID uint64, activeOnly bool) ([]*model.SocialAccount, error)
	FindAllActive(ctx context.Context) ([]*model.SocialAccount, error)
	CreateAccount(ctx context.Context, account *model.SocialAccount) error
	DeleteAccount(ctx context.Context, account *model.SocialAccount) error
	UpdateFollowCounts(ctx context.Context, id uint64, followers, following int) error
	UpdateProfile(ctx context.Context, account *model.SocialAccount) error
	SetActive(ctx context.Context, id uint64, active bool) error
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

func (r *socialAccountRepoImpl) GetAccount(ctx context.Context, id uint64) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByUser 按归属查询，查不到与不属于当前用户统一返回 nil
func (r *socialAccountRepoImpl) GetAccountByUser(ctx context.Context, id uint64, userID uint64) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepoImpl) FindByUser(ctx context.Context, userID uint64, activeOnly bool) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	result := query.Order("id ASC").Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

// FindAllActive 全量启用账号，供每日快照任务遍历
func (r *socialAccountRepoImpl) FindAllActive(ctx context.Context) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

// CreateAccount 唯一索引 (user_id, platform, account_id) 冲突时返回 gorm.ErrDuplicatedKey
func (r *socialAccountRepoImpl) CreateAccount(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// DeleteAccount 删除账号，帖子与快照由外键级联删除
func (r *socialAccountRepoImpl) DeleteAccount(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Delete(account).Error
}

func (r *socialAccountRepoImpl) UpdateFollowCounts(ctx context.Context, id uint64, followers, following int) error {
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"follower_count":  followers,
			"following_count": following,
		}).Error
}

func (r *socialAccountRepoImpl) UpdateProfile(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"follower_count":      account.FollowerCount,
			"following_count":     account.FollowingCount,
			"profile_picture_url": account.ProfilePictureURL,
		}).Error
}

func (r *socialAccountRepoImpl) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
