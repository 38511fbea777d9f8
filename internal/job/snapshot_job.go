package job

import (
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/logger"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/repository"
	"Beacon/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SnapshotJob 每日零点为全部启用账号落一份分析快照。
// 多实例部署时用分布式锁保证只有一个实例执行，单账号失败不影响其余账号
type SnapshotJob struct {
	accountRepo repository.SocialAccountRepo
	snapshotSvc service.SnapshotService
}

func NewSnapshotJob(accountRepo repository.SocialAccountRepo, snapshotSvc service.SnapshotService) *SnapshotJob {
	return &SnapshotJob{
		accountRepo: accountRepo,
		snapshotSvc: snapshotSvc,
	}
}

func (s *SnapshotJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := traceID
	locked, err := redis.TryLock(ctx, consts.SnapshotJobLock, lockValue, time.Minute*30, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire snapshot job lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "snapshot job already running elsewhere, skipped")
		return
	}
	defer redis.UnLock(ctx, consts.SnapshotJobLock, lockValue)

	accounts, err := s.accountRepo.FindAllActive(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list active accounts error", "err", err)
		return
	}

	succeeded := 0
	for _, account := range accounts {
		if _, err := s.snapshotSvc.CreateDailySnapshot(ctx, account.ID); err != nil {
			log.ErrorContext(ctx, "create daily snapshot error", "account_id", account.ID, "err", err)
			continue
		}
		succeeded++
	}

	log.InfoContext(ctx, "daily snapshot job finished",
		"total", len(accounts), "succeeded", succeeded, "date", time.Now().Format(time.DateOnly))
}
