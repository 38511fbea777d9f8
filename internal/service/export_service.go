package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/pkg/minio"
	"Beacon/internal/repository"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var exportHeader = []string{
	"snapshot_date",
	"social_account_id",
	"followers_count",
	"following_count",
	"posts_count",
	"total_likes",
	"total_comments",
	"total_shares",
	"total_views",
	"avg_engagement_rate",
}

type ExportService interface {
	// ExportSnapshots 把窗口内的快照导出为 CSV 并上传对象存储，窗口内无数据时报错
	ExportSnapshots(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.ExportResultDTO, error)
}

type exportServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
}

func NewExportService(snapshotRepo repository.SnapshotRepo) ExportService {
	return &exportServiceImpl{snapshotRepo: snapshotRepo}
}

func (s *exportServiceImpl) ExportSnapshots(ctx context.Context, userID uint64, q *dto.AnalyticsQueryDTO) (*dto.ExportResultDTO, error) {
	start, end, err := ResolveDateRange(q, time.Now())
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.FindByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, ErrExportEmpty
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, snap := range snapshots {
		record := []string{
			snap.SnapshotDate.Format(time.DateOnly),
			strconv.FormatUint(snap.SocialAccountID, 10),
			strconv.Itoa(snap.FollowersCount),
			strconv.Itoa(snap.FollowingCount),
			strconv.Itoa(snap.PostsCount),
			strconv.Itoa(snap.TotalLikes),
			strconv.Itoa(snap.TotalComments),
			strconv.Itoa(snap.TotalShares),
			strconv.Itoa(snap.TotalViews),
			strconv.FormatFloat(snap.AvgEngagementRate, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("analytics/%d/%s-%s.csv",
		userID, time.Now().Format("20060102"), uuid.NewString())
	if _, err := minio.UploadFile(ctx, objectName, &buf, int64(buf.Len()), "text/csv"); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "analytics export uploaded", "object", objectName, "rows", len(snapshots))

	return &dto.ExportResultDTO{
		ObjectName: objectName,
		URL:        minio.GetPublicURL(objectName),
		Rows:       len(snapshots),
	}, nil
}
