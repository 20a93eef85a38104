package app

import (
	"quiz_admin_backend/docs"
	"quiz_admin_backend/internal/config"
	"quiz_admin_backend/internal/middleware"
	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		// 学生答题接口
		student := authGroup.Group("/student")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.GET("/quizzes", c.studentQuiz.AssignedQuizzes)
			student.GET("/quizzes/:id", c.studentQuiz.Attempt)
			student.POST("/quizzes/:id/submit", c.studentQuiz.Submit)
			student.GET("/quizzes/:id/result", c.studentQuiz.Result)
		}

		// 教师出卷和指派接口
		teacher := authGroup.Group("/quizzes")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("", c.quiz.Create)
			teacher.GET("", c.quiz.List)
			teacher.GET("/:id", c.quiz.Get)
			teacher.PUT("/:id", c.quiz.Update)
			teacher.DELETE("/:id", c.quiz.Delete)
			teacher.POST("/:id/assign", c.quiz.Assign)
			teacher.POST("/:id/assign-rule", c.quiz.AssignRule)
			teacher.GET("/:id/assignments", c.quiz.Assignments)
			teacher.DELETE("/:id/assign/:studentId", c.quiz.Unassign)
		}

		// 成绩报表：教师和管理员
		results := authGroup.Group("/results")
		results.Use(middleware.RoleMiddleware(model.Teacher))
		{
			results.GET("", c.result.List)
		}

		// 院系列表对教师开放，方便出卷时选择指派范围
		authGroup.GET("/departments", middleware.RoleMiddleware(model.Teacher), c.department.List)

		// 3. 管理员接口
		admin := authGroup.Group("/")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.user.List)
			admin.GET("/users/:id", c.user.Get)
			admin.PUT("/users/:id", c.user.Update)
			admin.DELETE("/users/:id", c.user.Delete)

			admin.POST("/departments", c.department.Create)
			admin.GET("/departments/:id", c.department.Get)
			admin.PUT("/departments/:id", c.department.Update)
			admin.DELETE("/departments/:id", c.department.Delete)

			admin.POST("/students", c.student.Create)
			admin.GET("/students", c.student.List)
			admin.GET("/students/:id", c.student.Get)
			admin.PUT("/students/:id", c.student.Update)
			admin.DELETE("/students/:id", c.student.Delete)

			admin.POST("/teachers", c.teacher.Create)
			admin.GET("/teachers", c.teacher.List)
			admin.GET("/teachers/:id", c.teacher.Get)
			admin.PUT("/teachers/:id", c.teacher.Update)
			admin.DELETE("/teachers/:id", c.teacher.Delete)
		}
	}
}
