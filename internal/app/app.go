package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proctor_backend/internal/config"
	"proctor_backend/internal/controller"
	"proctor_backend/internal/middleware"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/service"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/configwatcher"
	"proctor_backend/pkg/database"
	"proctor_backend/pkg/logger"
	"proctor_backend/pkg/monitoring"
	"proctor_backend/pkg/security"
	"proctor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigDir is where config.yaml is read from and watched.
const ConfigDir = "configs"

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
	users    repository.UserStore
	tests    repository.TestStore
	attempts repository.AttemptStore
	sessions repository.SessionRegistry
}

type services struct {
	hasher  *service.PasswordHasher
	auth    *service.AuthService
	user    *service.UserService
	test    *service.TestService
	attempt *service.AttemptService
	storage *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	testSetter  *controller.TestSetterController
	testTaker   *controller.TestTakerController
	invigilator *controller.InvigilatorController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		users:    repository.NewUserRepository(db),
		tests:    repository.NewTestRepository(db),
		attempts: repository.NewAttemptRepository(db),
		sessions: repository.NewRedisSessionRegistry(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	hasher, err := service.NewPasswordHasher(cfg.Bcrypt.Cost)
	if err != nil {
		return nil, err
	}

	s := &services{hasher: hasher}
	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.users, repos.sessions, hasher, &cfg.Session)
	s.user = service.NewUserService(repos.users)
	s.test = service.NewTestService(repos.tests, repos.attempts)
	s.attempt = service.NewAttemptService(repos.tests, repos.attempts, repos.users, s.storage)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, &a.Config.Session),
		user:        controller.NewUserController(s.user, s.auth),
		testSetter:  controller.NewTestSetterController(s.test),
		testTaker:   controller.NewTestTakerController(s.attempt),
		invigilator: controller.NewInvigilatorController(s.attempt),
		health:      controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure(cfg.Server.Mode != "release"))
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build wires services, controllers and routes on top of repos. tx wraps
// every API request; see middleware.Transaction.
func (a *App) build(repos *repositories, tx gin.HandlerFunc) error {
	s, err := a.initServices(repos, a.Config)
	if err != nil {
		return err
	}
	a.services = s
	c := a.initControllers(s)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, c, s, tx)

	if a.Config.Storage.Type == util.StorageLocal {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
	a.Router = router

	a.RegisterConfigCallback(func(cfg *config.Config) {
		if err := s.hasher.SetCost(cfg.Bcrypt.Cost); err != nil {
			logger.Log.Error("Failed to apply bcrypt cost", zap.Int("cost", cfg.Bcrypt.Cost), zap.Error(err))
		}
		logger.SetMode(cfg.Server.Mode)
	})
	return nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if err := app.build(app.initRepositories(db, rdb), middleware.Transaction(db)); err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	return app
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if a.Config.Server.WatchConfig {
		go func() {
			if err := configwatcher.WatchConfig(ctx, ConfigDir, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
