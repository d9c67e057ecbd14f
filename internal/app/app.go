package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/controller"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/pkg/configwatcher"
	"math_quiz_backend/pkg/logger"
	"math_quiz_backend/pkg/monitoring"
	"math_quiz_backend/pkg/security"
	"math_quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
}

type repositories struct {
	ledger   *repository.LedgerRepository
	ranking  *repository.RankingRepository
	accounts *repository.AccountRepository
}

type services struct {
	question *service.QuestionService
	grading  *service.GradingService
	progress *service.ProgressService
	ranking  *service.RankingService
	sitting  *service.SittingService
	auth     *service.AuthService
	admin    *service.AdminService
}

type controllers struct {
	auth    *controller.AuthController
	quiz    *controller.QuizController
	sitting *controller.SittingController
	ranking *controller.RankingController
	admin   *controller.AdminController
	health  *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) *repositories {
	dataFile := func(name string) string {
		return filepath.Join(cfg.Storage.DataDir, name)
	}
	return &repositories{
		ledger:   repository.NewLedgerRepository(dataFile(cfg.Storage.LedgerFile)),
		ranking:  repository.NewRankingRepository(dataFile(cfg.Storage.RankingFile)),
		accounts: repository.NewAccountRepository(dataFile(cfg.Storage.AccountsFile)),
	}
}

func (a *App) initServices(repos *repositories, store *config.Store) *services {
	s := &services{}

	s.question = service.NewQuestionService(store)
	s.grading = service.NewGradingService()
	s.progress = service.NewProgressService(repos.ledger)
	s.ranking = service.NewRankingService(repos.ranking)
	s.sitting = service.NewSittingService(s.question, s.grading, s.progress)
	s.auth = service.NewAuthService(repos.accounts, store)
	s.admin = service.NewAdminService(store, s.question, s.progress, s.ranking, s.auth)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	isRelease := cfg.Server.Mode == "release"
	cookieMaxAge := int(cfg.JWT.ExpireTime / time.Second)

	return &controllers{
		auth:    controller.NewAuthController(s.auth, s.progress, cookieMaxAge, isRelease),
		quiz:    controller.NewQuizController(s.question),
		sitting: controller.NewSittingController(s.sitting),
		ranking: controller.NewRankingController(s.ranking, s.progress),
		admin:   controller.NewAdminController(s.admin, s.sitting),
		health:  controller.NewHealthController(cfg, s.question),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
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

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}
	store := config.NewStore(cfg)

	repos := app.initRepositories(cfg)
	services := app.initServices(repos, store)
	controllers := app.initControllers(services, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("math-quiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, store)

	// 문제 이미지 정적 서빙
	if cfg.Quiz.ImageDir != "" {
		router.Static("/images", cfg.Quiz.ImageDir)
	}

	// 시트 링크/관리자 해시를 재시작 없이 바꿀 수 있게 설정 파일을 감시.
	// 요청 처리와 동시에 일어나므로 덮어쓰지 않고 스냅샷을 통째로 교체한다.
	// 서버 포트/저장 경로처럼 기동 시 묶인 값은 재시작해야 반영된다.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		store.Swap(newCfg)
		logger.Log.Info("config reloaded")
	})

	// 기본 시트 링크가 있으면 기동 시 미리 로드. 실패해도 치명적이지 않다.
	if cfg.Quiz.SheetURL != "" {
		go func() {
			if _, err := services.question.Load(context.Background(), ""); err != nil {
				logger.Log.Warn("initial sheet load failed", zap.Error(err))
			}
		}()
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
