package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/consulting-backend/internal/config"
	"github.com/ignatzorin/consulting-backend/internal/db"
	appevent "github.com/ignatzorin/consulting-backend/internal/event"
	"github.com/ignatzorin/consulting-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/consulting-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/consulting-backend/internal/http/router"
	"github.com/ignatzorin/consulting-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/consulting-backend/internal/logger"
	"github.com/ignatzorin/consulting-backend/internal/repository"
	"github.com/ignatzorin/consulting-backend/internal/service"
	"github.com/ignatzorin/consulting-backend/internal/storage"
	ucacceptance "github.com/ignatzorin/consulting-backend/internal/usecase/acceptance"
	ucdispute "github.com/ignatzorin/consulting-backend/internal/usecase/dispute"
	ucproject "github.com/ignatzorin/consulting-backend/internal/usecase/project"
	ucproposal "github.com/ignatzorin/consulting-backend/internal/usecase/proposal"
	"github.com/ignatzorin/consulting-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	evidenceStorage, err := storage.NewEvidenceStorage(cfg.EvidenceStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище доказательств: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	auditRepo := repository.NewAuditRepository(dbConn)
	projectRepo := persistence.NewProjectRepositoryAdapter(dbConn)
	proposalRepo := persistence.NewProposalRepositoryAdapter(dbConn)
	disputeRepo := persistence.NewDisputeRepositoryAdapter(dbConn)
	acceptanceStore := persistence.NewAcceptanceStoreAdapter(dbConn, cfg.LockWaitTimeout)

	// Вебсокеты и доставка событий.
	hub := ws.NewHub()
	go hub.Run()

	emitter := appevent.NewEmitter(notificationRepo, hub, auditRepo)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	notificationService := service.NewNotificationService(notificationRepo)

	// Use cases: проекты.
	createProject := ucproject.NewCreateProjectUseCase(projectRepo)
	updateProject := ucproject.NewUpdateProjectUseCase(projectRepo)
	publishProject := ucproject.NewPublishProjectUseCase(projectRepo, emitter)
	cancelProject := ucproject.NewCancelProjectUseCase(projectRepo, proposalRepo, emitter)
	completeProject := ucproject.NewCompleteProjectUseCase(projectRepo, proposalRepo, emitter)
	deleteProject := ucproject.NewDeleteProjectUseCase(projectRepo)
	getProject := ucproject.NewGetProjectUseCase(projectRepo)
	listProjects := ucproject.NewListProjectsUseCase(projectRepo)

	// Use cases: предложения и принятие.
	submitProposal := ucproposal.NewSubmitProposalUseCase(proposalRepo, projectRepo, emitter)
	withdrawProposal := ucproposal.NewWithdrawProposalUseCase(proposalRepo, projectRepo, emitter)
	rejectProposal := ucproposal.NewRejectProposalUseCase(proposalRepo, projectRepo, emitter)
	reviewProposal := ucproposal.NewMarkUnderReviewUseCase(proposalRepo, projectRepo)
	listProposals := ucproposal.NewListProposalsUseCase(proposalRepo, projectRepo)
	acceptProposal := ucacceptance.NewAcceptProposalUseCase(acceptanceStore, projectRepo, emitter)

	// Use cases: споры.
	openDispute := ucdispute.NewOpenDisputeUseCase(disputeRepo, projectRepo, proposalRepo, emitter)
	assignDispute := ucdispute.NewAssignDisputeUseCase(disputeRepo, emitter)
	requestResponse := ucdispute.NewRequestResponseUseCase(disputeRepo, emitter, cfg.DisputeResponseTTL)
	submitResponse := ucdispute.NewSubmitResponseUseCase(disputeRepo)
	acknowledgeResponse := ucdispute.NewAcknowledgeResponseUseCase(disputeRepo)
	resolveDispute := ucdispute.NewResolveDisputeUseCase(disputeRepo, emitter)
	escalateDispute := ucdispute.NewEscalateDisputeUseCase(disputeRepo, emitter)
	closeDispute := ucdispute.NewCloseDisputeUseCase(disputeRepo, emitter)
	addMessage := ucdispute.NewAddMessageUseCase(disputeRepo)
	attachEvidence := ucdispute.NewAttachEvidenceUseCase(disputeRepo, evidenceStorage)
	readDisputes := ucdispute.NewReadDisputesUseCase(disputeRepo)

	// Фоновая эскалация просроченных споров.
	sweeper := ucdispute.NewDeadlineSweeper(disputeRepo, emitter, cfg.DisputeSweepInterval)
	goroutine.SafeGoWithContext(ctx, sweeper.Run)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	projectHandler := httpHandlers.NewProjectHandler(
		createProject, updateProject, publishProject, cancelProject,
		completeProject, deleteProject, getProject, listProjects,
	)
	proposalHandler := httpHandlers.NewProposalHandler(
		submitProposal, withdrawProposal, rejectProposal, reviewProposal,
		listProposals, acceptProposal,
	)
	disputeHandler := httpHandlers.NewDisputeHandler(
		openDispute, assignDispute, requestResponse, submitResponse,
		acknowledgeResponse, resolveDispute, escalateDispute, closeDispute,
		addMessage, attachEvidence, readDisputes,
	)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, projectHandler, proposalHandler, disputeHandler, notificationHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
