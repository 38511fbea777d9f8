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

// AccountProfileHandler 消费账号画像采集流，回写粉丝与关注数
type AccountProfileHandler struct {
	accountSvc service.SocialAccountService
}

func NewAccountProfileHandler(accountSvc service.SocialAccountService) *AccountProfileHandler {
	return &AccountProfileHandler{accountSvc: accountSvc}
}

func (s *AccountProfileHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("account profile consumer setup")
	return nil
}

func (s *AccountProfileHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("account profile consumer cleanup")
	return nil
}

func (s *AccountProfileHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-account-profile consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-account-profile process batch error", "err", err)
		return err
	}
	log.Info("topic-account-profile consume claim end")
	return nil
}

func (s *AccountProfileHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event dto.AccountProfileEventDTO
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.ErrorContext(ctx, "unmarshal account profile event error", "err", err, "offset", msg.Offset)
		return nil
	}
	if event.SocialAccountID == 0 {
		log.WarnContext(ctx, "account profile event missing identity, skipped", "offset", msg.Offset)
		return nil
	}

	if err := s.accountSvc.SyncProfile(ctx, &event); err != nil {
		return errors.Wrap(err, "sync account profile")
	}
	return nil
}
