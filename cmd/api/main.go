package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/agencydesk/backoffice/internal/api/http"
	"github.com/agencydesk/backoffice/internal/api/http/handlers"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/config"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/observability"
	"github.com/agencydesk/backoffice/internal/persistence"
	"github.com/agencydesk/backoffice/internal/repository"
	"github.com/agencydesk/backoffice/internal/service"
	"github.com/agencydesk/backoffice/internal/storage"
	"github.com/agencydesk/backoffice/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	fileStore, err := storage.NewFileStore(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	claimRepo := repository.NewClaimRepository(pool)
	commissionRepo := repository.NewCommissionRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	financialRepo := repository.NewFinancialTransactionRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	agencyRepo := repository.NewAgencyRepository(pool)
	companyRepo := repository.NewInsuranceCompanyRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	activityRecorder := service.NewActivityRecorder(activityRepo, logger)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	customerService := service.NewCustomerService(customerRepo)
	policyService := service.NewPolicyService(policyRepo, customerRepo, dispatcher)
	claimService := service.NewClaimService(claimRepo, policyRepo, financialRepo, dispatcher)
	commissionService := service.NewCommissionService(commissionRepo, policyRepo, financialRepo, dispatcher)
	transactionService := service.NewTransactionService(transactionRepo)
	documentService := service.NewDocumentService(documentRepo, fileStore, logger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, cfg.Notify, logger)
	agencyService := service.NewAgencyService(agencyRepo)
	companyService := service.NewInsuranceCompanyService(companyRepo)
	reportService := service.NewReportService(reportRepo, policyRepo, activityRepo, redis.Client, logger)
	reportService.BindInvalidation(dispatcher)

	notificationWorker := worker.NewNotificationWorker(dispatcher, notificationService, policyRepo, logger)
	notificationWorker.Start(ctx)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxFileSizeByte) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:              handlers.NewUsersHandler(authService),
		Customers:          handlers.NewCustomersHandler(customerService, activityRecorder),
		Policies:           handlers.NewPoliciesHandler(policyService, claimService, activityRecorder),
		Claims:             handlers.NewClaimsHandler(claimService, activityRecorder),
		Commissions:        handlers.NewCommissionsHandler(commissionService, activityRecorder),
		Transactions:       handlers.NewTransactionsHandler(transactionService, activityRecorder),
		Documents:          handlers.NewDocumentsHandler(documentService, activityRecorder),
		Notifications:      handlers.NewNotificationsHandler(notificationService),
		Agencies:           handlers.NewAgenciesHandler(agencyService, activityRecorder),
		InsuranceCompanies: handlers.NewInsuranceCompaniesHandler(companyService, activityRecorder),
		Reports:            handlers.NewReportsHandler(reportService),
		AuthMiddleware:     authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
