package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/controller"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/pkg/configwatcher"
	"quiz_assessment_backend/pkg/database"
	"quiz_assessment_backend/pkg/logger"
	"quiz_assessment_backend/pkg/monitoring"
	"quiz_assessment_backend/pkg/security"
	"quiz_assessment_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	project  *repository.ProjectRepository
	question *repository.QuestionRepository
	result   *repository.ResultRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	project   *service.ProjectService
	question  *service.QuestionService
	result    *service.ResultService
	analytics *service.AnalyticsService
	export    *service.ExportService
}

type controllers struct {
	auth      *controller.AuthController
	project   *controller.ProjectController
	question  *controller.QuestionController
	result    *controller.ResultController
	analytics *controller.AnalyticsController
	export    *controller.ExportController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		project:  repository.NewProjectRepository(db),
		question: repository.NewQuestionRepository(db),
		result:   repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(cfg)
	s.project = service.NewProjectService(repos.project, repos.question, cfg.Quiz)
	s.question = service.NewQuestionService(repos.question, repos.project)
	s.question.SetRevealAnswers(cfg.Quiz.RevealAnswers)
	s.result = service.NewResultService(
		repos.result,
		repos.project,
		repos.question,
		service.NewSubmissionValidator(cfg.Quiz.DefaultPeriod),
		service.NewEventPublisher(rdb, cfg.Redis.Channel),
	)
	s.analytics = service.NewAnalyticsService(repos.result, repos.project, cfg.Analytics)
	s.export = service.NewExportService(repos.result, repos.project, s.storage, cfg.Export.QuestionCount)
	s.export.SetMaxQuestionCount(cfg.Export.MaxQuestionCount)

	// 配置文件变更后热更新，数据库和存储连接不在此列
	a.RegisterConfigCallback(s.auth.UpdateCredentials)
	a.RegisterConfigCallback(func(c *config.Config) {
		s.project.UpdateConfig(c.Quiz)
		s.question.SetRevealAnswers(c.Quiz.RevealAnswers)
		s.analytics.UpdateConfig(c.Analytics)
		s.export.SetQuestionCount(c.Export.QuestionCount)
		s.export.SetMaxQuestionCount(c.Export.MaxQuestionCount)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		project:   controller.NewProjectController(s.project),
		question:  controller.NewQuestionController(s.question),
		result:    controller.NewResultController(s.result),
		analytics: controller.NewAnalyticsController(s.analytics),
		export:    controller.NewExportController(s.export),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers)

	// 以实际生效的存储为准，对象存储初始化失败时也会回退到本地目录
	if dir, ok := services.storage.LocalDir(); ok {
		router.Static("/uploads", dir)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.FilePath != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.Config.FilePath, a.reloadConfig); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
