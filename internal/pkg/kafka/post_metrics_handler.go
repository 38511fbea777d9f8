package kafka

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// PostMetricsHandler 消费帖子指标采集流，Upsert 本地帖子记录
type PostMetricsHandler struct {
	postSvc service.PostService
}

func NewPostMetricsHandler(postSvc service.PostService) *PostMetricsHandler {
	return &PostMetricsHandler{postSvc: postSvc}
}

func (s *PostMetricsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post metrics consumer setup")
	return nil
}

func (s *PostMetricsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post metrics consumer cleanup")
	return nil
}

func (s *PostMetricsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post-metrics consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post-metrics process batch error", "err", err)
		return err
	}
	log.Info("topic-post-metrics consume claim end")
	return nil
}

func (s *PostMetricsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event dto.PlatformPostEventDTO
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 坏消息直接丢弃，重试无意义
		log.ErrorContext(ctx, "unmarshal post metrics event error", "err", err, "offset", msg.Offset)
		return nil
	}
	if event.SocialAccountID == 0 || event.PlatformPostID == "" {
		log.WarnContext(ctx, "post metrics event missing identity, skipped", "offset", msg.Offset)
		return nil
	}

	if err := s.postSvc.IngestPlatformPost(ctx, &event); err != nil {
		return errors.Wrap(err, "ingest platform post")
	}
	return nil
}
