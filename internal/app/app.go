package app

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/controller"
	"arch_quiz_backend/internal/repository"
	"arch_quiz_backend/internal/service"
	"arch_quiz_backend/pkg/database"
	"arch_quiz_backend/pkg/logger"
	"arch_quiz_backend/pkg/monitoring"
	"arch_quiz_backend/pkg/security"
	"arch_quiz_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user            *repository.UserRepository
	question        *repository.QuestionRepository
	attempt         *repository.AttemptRepository
	feedback        *repository.FeedbackRepository
	lectureMaterial *repository.LectureMaterialRepository
}

type services struct {
	auth            *service.AuthService
	storage         *service.StorageService
	bank            *service.CSVBankService
	results         *service.ResultsLog
	sessions        *service.SessionStore
	generation      *service.GenerationService
	quiz            *service.QuizService
	question        *service.QuestionService
	report          *service.ReportService
	lectureMaterial *service.LectureMaterialService
}

type controllers struct {
	auth            *controller.AuthController
	quiz            *controller.QuizController
	question        *controller.QuestionController
	report          *controller.ReportController
	lectureMaterial *controller.LectureMaterialController
	health          *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs every registered reload callback against a freshly
// loaded configuration.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:            repository.NewUserRepository(db),
		question:        repository.NewQuestionRepository(db),
		attempt:         repository.NewAttemptRepository(db),
		feedback:        repository.NewFeedbackRepository(db),
		lectureMaterial: repository.NewLectureMaterialRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.bank = service.NewCSVBankService(&cfg.Quiz)
	s.results = service.NewResultsLog(cfg.Quiz.ResultsCSV)
	s.sessions = service.NewSessionStore(rdb, cfg.Quiz.SessionTTL)
	s.generation = service.NewGenerationService(cfg.AI)

	s.quiz = service.NewQuizService(
		repos.question,
		repos.attempt,
		repos.feedback,
		s.sessions,
		s.bank,
		s.results,
	)
	s.question = service.NewQuestionService(repos.question, s.bank, s.generation)
	s.report = service.NewReportService(repos.attempt, repos.feedback, repos.user)
	s.lectureMaterial = service.NewLectureMaterialService(repos.lectureMaterial, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:            controller.NewAuthController(s.auth),
		quiz:            controller.NewQuizController(s.quiz),
		question:        controller.NewQuestionController(s.question),
		report:          controller.NewReportController(s.report),
		lectureMaterial: controller.NewLectureMaterialController(s.lectureMaterial),
		health:          controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database, database.ShouldMigrate(cfg))
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
		log.Fatalf("failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to initialize redis", zap.Error(err))
		log.Fatalf("failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("arch-quiz", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Config = newCfg
		logger.Log.Info("configuration reloaded")
	})

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exiting")
}
