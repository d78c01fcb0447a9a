package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/handler"
	"github.com/tutorhubbd/tutorhub-api/internal/middleware"
	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/internal/service"
	"github.com/tutorhubbd/tutorhub-api/pkg/config"
	"github.com/tutorhubbd/tutorhub-api/pkg/logger"
	corsmiddleware "github.com/tutorhubbd/tutorhub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tutorhubbd/tutorhub-api/pkg/middleware/requestid"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	Auth          *service.AuthService
	Verification  *service.VerificationService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Hiring        *service.HiringService
	Notifications *service.NotificationService
	Invoices      *service.InvoiceService
	Reviews       *service.ReviewService
	Recommend     *service.RecommendService
	Metrics       *service.MetricsService
}

// New assembles the gin engine with all middleware and routes.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := d.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		if err := d.Redis.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(d.Auth, d.Verification, d.Metrics)
	jobHandler := handler.NewJobHandler(d.Jobs, d.Hiring, d.Metrics)
	applicationHandler := handler.NewApplicationHandler(d.Applications, d.Metrics)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	invoiceHandler := handler.NewInvoiceHandler(d.Invoices)
	reviewHandler := handler.NewReviewHandler(d.Reviews)
	recommendHandler := handler.NewRecommendHandler(d.Recommend)

	authRequired := middleware.JWT(d.Auth)
	guardianOnly := middleware.RequireRoles(models.RoleGuardian, models.RoleAdmin)
	teacherOnly := middleware.RequireRoles(models.RoleTeacher)

	api := r.Group(d.Config.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/resend-otp", authHandler.ResendOTP)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
		}

		jobsGroup := api.Group("/jobs")
		{
			jobsGroup.GET("", jobHandler.Browse)
			jobsGroup.POST("", authRequired, guardianOnly, jobHandler.Create)
			jobsGroup.GET("/mine", authRequired, guardianOnly, jobHandler.Mine)
			jobsGroup.DELETE("/:id", authRequired, guardianOnly, jobHandler.Cancel)
			jobsGroup.GET("/:id/applicants", authRequired, guardianOnly, jobHandler.Applicants)
			jobsGroup.POST("/:id/hire", authRequired, guardianOnly, jobHandler.Hire)
			jobsGroup.POST("/:id/apply", authRequired, teacherOnly, applicationHandler.Apply)
			jobsGroup.POST("/:id/review", authRequired, guardianOnly, reviewHandler.Submit)
		}

		api.GET("/teachers/:id/reviews", reviewHandler.ForTeacher)

		api.GET("/applications/mine", authRequired, teacherOnly, applicationHandler.Mine)

		api.GET("/notifications", authRequired, notificationHandler.List)
		api.POST("/notifications/:id/read", authRequired, notificationHandler.MarkRead)

		api.GET("/invoices", authRequired, invoiceHandler.List)
		api.GET("/invoices/:id/pdf", authRequired, invoiceHandler.DownloadPDF)
		api.POST("/invoices/:id/pay", authRequired, teacherOnly, invoiceHandler.Pay)

		api.POST("/recommend", recommendHandler.Recommend)
	}

	return r
}
