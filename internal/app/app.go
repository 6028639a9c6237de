package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/controller"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/pkg/logger"
	"github.com/tuanminh7/website-lms/pkg/monitoring"
	"github.com/tuanminh7/website-lms/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	Store  *repository.Store
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	progress   *repository.ProgressRepository
	submission *repository.SubmissionRepository
	document   *repository.DocumentRepository
	forum      *repository.ForumRepository
	chat       *repository.ChatRepository
	exam       *repository.ExamRepository
	result     *repository.ResultRepository
}

type services struct {
	auth     *service.AuthService
	course   *service.CourseService
	progress *service.ProgressService
	exercise *service.ExerciseService
	document *service.DocumentService
	forum    *service.ForumService
	chat     *service.ChatService
	ai       *service.AIService
	exam     *service.ExamService
	storage  service.StorageProvider
}

type controllers struct {
	auth     *controller.AuthController
	site     *controller.SiteController
	course   *controller.CourseController
	progress *controller.ProgressController
	exercise *controller.ExerciseController
	document *controller.DocumentController
	forum    *controller.ForumController
	chat     *controller.ChatController
	ai       *controller.AIController
	exam     *controller.ExamController
}

func (a *App) initRepositories(store *repository.Store) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(store),
		course:     repository.NewCourseRepository(store),
		progress:   repository.NewProgressRepository(store),
		submission: repository.NewSubmissionRepository(store),
		document:   repository.NewDocumentRepository(store),
		forum:      repository.NewForumRepository(store),
		chat:       repository.NewChatRepository(store),
		exam:       repository.NewExamRepository(store),
		result:     repository.NewResultRepository(store),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, logger.Log)
	s.course = service.NewCourseService(repos.course, repos.user, logger.Log)
	s.progress = service.NewProgressService(repos.progress, repos.course)
	s.exercise = service.NewExerciseService(repos.course, repos.submission)
	s.document = service.NewDocumentService(repos.document)
	s.forum = service.NewForumService(repos.forum, storage, cfg.Upload.MaxFileSize, logger.Log)
	s.chat = service.NewChatService(repos.chat)
	s.ai = service.NewAIService(cfg.AI, logger.Log)
	s.exam = service.NewExamService(repos.exam, repos.result, service.NewExamSessionService(), logger.Log)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, a.Config),
		site:     controller.NewSiteController(s.course, s.document),
		course:   controller.NewCourseController(s.course, s.progress, s.auth),
		progress: controller.NewProgressController(s.progress),
		exercise: controller.NewExerciseController(s.exercise),
		document: controller.NewDocumentController(s.document),
		forum:    controller.NewForumController(s.forum),
		chat:     controller.NewChatController(s.chat),
		ai:       controller.NewAIController(s.ai),
		exam:     controller.NewExamController(s.exam, s.auth, a.Config),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("logger đã khởi tạo")

	store, err := repository.NewStore(cfg.Data.Dir)
	if err != nil {
		logger.Log.Error("không mở được thư mục dữ liệu", zap.Error(err))
		return nil, err
	}

	app := &App{
		Config: cfg,
		Store:  store,
	}

	repos := app.initRepositories(store)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Error("không khởi tạo được dịch vụ", zap.Error(err))
		return nil, err
	}
	controllers := app.initControllers(services)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	// File đính kèm lưu cục bộ được phục vụ thẳng từ đĩa.
	if cfg.Storage.Type != "minio" && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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
