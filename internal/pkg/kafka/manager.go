package kafka

import (
	"Beacon/internal/api/config"
	"Beacon/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	postMetricsConsumer sarama.ConsumerGroup
	postMetricsHandler  sarama.ConsumerGroupHandler

	accountProfileConsumer sarama.ConsumerGroup
	accountProfileHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	postSvc service.PostService,
	accountSvc service.SocialAccountService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	postMetricsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPostMetricsConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	postMetricsHandler := NewPostMetricsHandler(postSvc)

	accountProfileConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaAccountProfileConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	accountProfileHandler := NewAccountProfileHandler(accountSvc)

	return &ConsumerManager{
		postMetricsConsumer:    postMetricsConsumer,
		postMetricsHandler:     postMetricsHandler,
		accountProfileConsumer: accountProfileConsumer,
		accountProfileHandler:  accountProfileHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Post Metrics Consumer
	go func() {
		topic := cfg.KafkaPostMetricsConsumer.Topic
		log.Info("Post metrics consumer started", "topic", topic)
		for {
			if err := m.postMetricsConsumer.Consume(ctx, []string{topic}, m.postMetricsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Account Profile Consumer
	go func() {
		topic := cfg.KafkaAccountProfileConsumer.Topic
		log.Info("Account profile consumer started", "topic", topic)
		for {
			if err := m.accountProfileConsumer.Consume(ctx, []string{topic}, m.accountProfileHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.postMetricsConsumer.Close(); err != nil {
		log.Error("Failed to close post metrics consumer", "err", err)
	}
	if err := m.accountProfileConsumer.Close(); err != nil {
		log.Error("Failed to close account profile consumer", "err", err)
	}

	return nil
}
