package wire

import (
	"Beacon/internal/api"
	"Beacon/internal/api/config"
	"Beacon/internal/api/handler"
	"Beacon/internal/job"
	"Beacon/internal/pkg/cron"
	"Beacon/internal/pkg/kafka"
	"Beacon/internal/repository"
	"Beacon/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	userService := service.NewUserService(userRepo)
	accountService := service.NewSocialAccountService(accountRepo)
	postService := service.NewPostService(accountRepo, postRepo)
	snapshotService := service.NewSnapshotService(accountRepo, postRepo, snapshotRepo)
	analyticsService := service.NewAnalyticsService(accountRepo, postRepo, snapshotRepo)
	exportService := service.NewExportService(snapshotRepo)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService),
		AccountHandler:   handler.NewAccountHandler(accountService),
		PostHandler:      handler.NewPostHandler(postService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService, snapshotService, exportService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, postService, accountService)
	if err != nil {
		return nil, err
	}

	snapshotJob := job.NewSnapshotJob(accountRepo, snapshotService)
	cronMgr := cron.NewCronManager(snapshotJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
