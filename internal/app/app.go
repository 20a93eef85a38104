package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_admin_backend/internal/config"
	"quiz_admin_backend/internal/controller"
	"quiz_admin_backend/internal/middleware"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/pkg/database"
	"quiz_admin_backend/pkg/logger"
	"quiz_admin_backend/pkg/monitoring"
	"quiz_admin_backend/pkg/security"
	"quiz_admin_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	department *repository.DepartmentRepository
	student    *repository.StudentRepository
	teacher    *repository.TeacherRepository
	quiz       *repository.QuizRepository
	assignment *repository.AssignmentRepository
	answer     *repository.AnswerRepository
	result     *repository.ResultRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	department  *service.DepartmentService
	student     *service.StudentService
	teacher     *service.TeacherService
	quiz        *service.QuizService
	assignment  *service.AssignmentService
	studentQuiz *service.StudentQuizService
	result      *service.ResultService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	department  *controller.DepartmentController
	student     *controller.StudentController
	teacher     *controller.TeacherController
	quiz        *controller.QuizController
	studentQuiz *controller.StudentQuizController
	result      *controller.ResultController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		department: repository.NewDepartmentRepository(db),
		student:    repository.NewStudentRepository(db),
		teacher:    repository.NewTeacherRepository(db),
		quiz:       repository.NewQuizRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		answer:     repository.NewAnswerRepository(db),
		result:     repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	keyCache := service.NewAnswerKeyCache(rdb)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.department = service.NewDepartmentService(repos.department)
	s.student = service.NewStudentService(repos.student, repos.user, repos.department)
	s.teacher = service.NewTeacherService(repos.teacher, repos.user, repos.department)
	s.quiz = service.NewQuizService(repos.quiz, repos.user, keyCache)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.quiz, repos.student)
	s.studentQuiz = service.NewStudentQuizService(repos.quiz, repos.assignment, repos.answer, repos.student, keyCache)
	s.result = service.NewResultService(repos.result)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		department:  controller.NewDepartmentController(s.department),
		student:     controller.NewStudentController(s.student),
		teacher:     controller.NewTeacherController(s.teacher),
		quiz:        controller.NewQuizController(s.quiz, s.assignment),
		studentQuiz: controller.NewStudentQuizController(s.studentQuiz),
		result:      controller.NewResultController(s.result),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
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

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认跳过自动迁移，除非显式传 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.Seed(db); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-admin", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
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

	logger.Log.Sync()
	log.Println("Server exiting")
}
