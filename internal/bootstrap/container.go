package bootstrap

import (
	"context"
	"log"

	"shift-tracking-be/internal/config"
	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/controller"
	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/handler/dialogstates"
	"shift-tracking-be/internal/pkg/logger"
	"shift-tracking-be/internal/repository/implementation"
	"shift-tracking-be/internal/repository/memory"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/internal/service"
	pkgNats "shift-tracking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	AuthController    controller.IAuthController
	ShiftController   controller.IShiftController
	WorkLogController controller.IWorkLogController
	ReportController  controller.IReportController
	AuditController   controller.IAuditController

	// Background services (exposed for main.go to run)
	AuditConsumerService service.IAuditConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var natsPub service.INatsPublisher
	if pub, err := pkgNats.NewPublisher(cfg.App.NatsURL); err != nil {
		// The audit trail still lands in the database without a broker.
		log.Printf("Warn: NATS unavailable, audit events stay local: %v", err)
	} else {
		natsPub = pub
	}

	redisOpts, err := redis.ParseURL(cfg.App.RedisURL)
	var redisClient *redis.Client
	if err != nil {
		log.Printf("Warn: invalid REDIS_URL, webhook dedup disabled: %v", err)
	} else {
		redisClient = redis.NewClient(redisOpts)
	}

	// 3. Dialog engine
	sessionRepo := memory.NewCachedSessionRepository(implementation.NewSessionRepository(db))
	registry := dialog.NewRegistry()
	engine := dialog.NewEngine(sessionRepo, dialog.DefaultGraph(), registry)

	// 4. Services
	auditService := service.NewAuditService(cfg.Audit.Strict, pubSub, sysLogger)
	employeeService := service.NewEmployeeService(uowFactory, auditService)
	siteService := service.NewSiteService(uowFactory, auditService)
	shiftService := service.NewShiftService(uowFactory, auditService)
	workLogService := service.NewWorkLogService(uowFactory, auditService)
	reportService := service.NewReportService(uowFactory)
	auditQueryService := service.NewAuditQueryService(uowFactory)

	auditConsumer := service.NewAuditConsumerService(
		pubSub,
		constant.AuditTopicName,
		uowFactory,
		natsPub,
		sysLogger,
	)

	// 5. Conversation flows
	flows := dialogstates.NewFlows(engine, employeeService, siteService, shiftService, workLogService, reportService)
	dialogstates.Register(registry, flows)

	dialogHandler := service.NewDialogHandlerService(engine, employeeService, redisClient, sysLogger)

	// 6. Controllers
	return &Container{
		WebhookController: controller.NewWebhookController(dialogHandler, cfg, sysLogger),
		AuthController:    controller.NewAuthController(employeeService),
		ShiftController:   controller.NewShiftController(shiftService),
		WorkLogController: controller.NewWorkLogController(workLogService),
		ReportController:  controller.NewReportController(reportService),
		AuditController:   controller.NewAuditController(auditQueryService),

		AuditConsumerService: auditConsumer,
	}
}

// StartConsumers launches the background pipelines that drain the in-process
// bus. Called once from main after the container is assembled.
func (c *Container) StartConsumers(ctx context.Context) error {
	return c.AuditConsumerService.Consume(ctx)
}
