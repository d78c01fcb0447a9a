package main

import (
	"context"
	"fmt"
	"log"

	_ "github.com/tutorhubbd/tutorhub-api/api/swagger"
	"github.com/tutorhubbd/tutorhub-api/internal/repository"
	"github.com/tutorhubbd/tutorhub-api/internal/router"
	"github.com/tutorhubbd/tutorhub-api/internal/service"
	"github.com/tutorhubbd/tutorhub-api/pkg/cache"
	"github.com/tutorhubbd/tutorhub-api/pkg/config"
	"github.com/tutorhubbd/tutorhub-api/pkg/database"
	"github.com/tutorhubbd/tutorhub-api/pkg/jobs"
	"github.com/tutorhubbd/tutorhub-api/pkg/logger"
	"github.com/tutorhubbd/tutorhub-api/pkg/mailer"
)

// @title TutorHubBD API
// @version 1.0.0
// @description Tutoring marketplace backend: OTP-verified registration, job board, applications and hiring
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	mailQueue := jobs.NewQueue("mail", service.NewMailHandler(mailer.New(cfg.SMTP, logr)), jobs.QueueConfig{
		Workers:    cfg.Mail.Workers,
		BufferSize: cfg.Mail.BufferSize,
		MaxRetries: cfg.Mail.MaxRetries,
		RetryDelay: cfg.Mail.RetryDelay,
		Logger:     logr,
	})
	mailQueue.Start(context.Background())
	defer mailQueue.Stop()

	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	otpThrottle := repository.NewOTPThrottle(redisClient, cfg.OTP.ResendCooldown)
	jobCache := repository.NewJobListCache(redisClient, cfg.Jobs.ListCacheTTL)

	metricsService := service.NewMetricsService()
	mailDispatcher := service.NewMailDispatcher(mailQueue, logr, cfg.OTP.TTL)

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	verificationService := service.NewVerificationService(userRepo, verificationRepo, otpThrottle, mailDispatcher, nil, logr, service.VerificationConfig{
		TTL:         cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
		BypassCode:  cfg.OTP.BypassCode,
	})
	jobService := service.NewJobService(jobRepo, jobCache, metricsService, nil, logr)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, userRepo, nil, logr)
	hiringService := service.NewHiringService(jobRepo, applicationRepo, userRepo, invoiceRepo, notificationRepo, mailDispatcher, logr, cfg.Commission.Rate)
	notificationService := service.NewNotificationService(notificationRepo, logr)
	invoiceService := service.NewInvoiceService(invoiceRepo, jobRepo, userRepo, logr)
	reviewService := service.NewReviewService(reviewRepo, jobRepo, nil, logr)
	recommendService := service.NewRecommendService(cfg.Recommender, logr)

	engine := router.New(router.Deps{
		Config: cfg,
		Logger: logr,
		DB:     db,
		Redis:  redisClient,

		Auth:          authService,
		Verification:  verificationService,
		Jobs:          jobService,
		Applications:  applicationService,
		Hiring:        hiringService,
		Notifications: notificationService,
		Invoices:      invoiceService,
		Reviews:       reviewService,
		Recommend:     recommendService,
		Metrics:       metricsService,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
