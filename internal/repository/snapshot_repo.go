package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo interface {
	GetByAccountAndDate(ctx context.Context, accountID uint64, date time.Time) (*model.AnalyticsSnapshot, error)
	Insert(ctx context.Context, snapshot *model.AnalyticsSnapshot) (bool, error)
	FindByUserBetween(ctx context.Context, userID uint64, start, end time.Time) ([]*model.AnalyticsSnapshot, error)
	FindByAccountBetween(ctx context.Context, accountID uint64, start, end time.Time) ([]*model.AnalyticsSnapshot, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

func (r *snapshotRepoImpl) GetByAccountAndDate(ctx context.Context, accountID uint64, date time.Time) (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	err := r.db.WithContext(ctx).
		Where("social_account_id = ? AND snapshot_date = ?", accountID, date).
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// Insert 单条原子插入。(social_account_id, snapshot_date) 唯一键冲突视为良性竞争，
// 返回 inserted=false，由调用方回读当日已有快照
func (r *snapshotRepoImpl) Insert(ctx context.Context, snapshot *model.AnalyticsSnapshot) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "social_account_id"}, {Name: "snapshot_date"}},
		DoNothing: true,
	}).Create(snapshot)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByUserBetween 查询用户全部启用账号在窗口内的快照，按日期升序
func (r *snapshotRepoImpl) FindByUserBetween(ctx context.Context, userID uint64, start, end time.Time) ([]*model.AnalyticsSnapshot, error) {
	snapshots := make([]*model.AnalyticsSnapshot, 0)
	result := r.db.WithContext(ctx).
		Joins("JOIN social_accounts ON social_accounts.id = analytics_snapshots.social_account_id").
		Where("social_accounts.user_id = ? AND social_accounts.is_active = ?", userID, true).
		Where("analytics_snapshots.snapshot_date BETWEEN ? AND ?", start, end).
		Order("analytics_snapshots.snapshot_date ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}

func (r *snapshotRepoImpl) FindByAccountBetween(ctx context.Context, accountID uint64, start, end time.Time) ([]*model.AnalyticsSnapshot, error) {
	snapshots := make([]*model.AnalyticsSnapshot, 0)
	result := r.db.WithContext(ctx).
		Where("social_account_id = ? AND snapshot_date BETWEEN ? AND ?", accountID, start, end).
		Order("snapshot_date ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}
