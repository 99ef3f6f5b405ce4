package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/handler"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/router"
	"github.com/ramdanolii14/nyantube-sub000/internal/captcha"
	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/internal/infra/database"
	infraES "github.com/ramdanolii14/nyantube-sub000/internal/infra/elasticsearch"
	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
	infraMinio "github.com/ramdanolii14/nyantube-sub000/internal/infra/minio"
	infraRedis "github.com/ramdanolii14/nyantube-sub000/internal/infra/redis"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	_ "github.com/ramdanolii14/nyantube-sub000/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// viewDedupWindow is how long one viewer's repeat views of the same video do
// not count.
const viewDedupWindow = 6 * time.Hour

// @title Nyantube API
// @version 1.0
// @description Video sharing platform API.

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Format: Bearer {token}

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Vote{},
		&model.Report{},
		&model.IPRegister{},
		&model.Notification{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// Elasticsearch is optional; search falls back to the database.
	esEnabled := true
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		esEnabled = false
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	ipRepo := repository.NewIPRegisterRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	store := infraMinio.NewStore(&cfg.MinIO)
	deduper := infraRedis.NewViewDeduper(viewDedupWindow)
	captchaVerifier := captcha.NewVerifier(&cfg.Captcha)
	events := infraKafka.NewNotificationPublisher(cfg.Kafka.Topics["notifications"])

	searchService := service.NewSearchService(videoRepo, esEnabled)

	authService := service.NewAuthService(userRepo, ipRepo, captchaVerifier)
	userService := service.NewUserService(userRepo)
	videoService := service.NewVideoService(videoRepo, userRepo, store, deduper, searchService)
	voteService := service.NewVoteService(voteRepo, videoRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo, events)
	moderationService := service.NewModerationService(videoRepo, userRepo, commentRepo, voteRepo, store, searchService)
	reportService := service.NewReportService(reportRepo, videoRepo, userRepo, moderationService, events)
	notificationService := service.NewNotificationService(notificationRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	voteHandler := handler.NewVoteHandler(voteService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	searchHandler := handler.NewSearchHandler(searchService)
	adminHandler := handler.NewAdminHandler(moderationService)

	roleFetcher := func(userID int64) (string, error) {
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
	staffMiddleware := middleware.StaffRequired(roleFetcher)
	adminMiddleware := middleware.AdminRequired(roleFetcher)

	r.GET("/healthz", healthCheckHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r,
		authHandler, userHandler, videoHandler, commentHandler, voteHandler,
		reportHandler, notificationHandler, searchHandler, adminHandler,
		staffMiddleware, adminMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}
