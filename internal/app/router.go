package app

import (
	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/middleware"
	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(middleware.Session(cfg))

	// Route công khai, không cần đăng nhập.
	public := router.Group("/api")
	{
		public.GET("/health", c.site.Health)
		public.GET("/stats", c.site.Stats)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
	}

	// Route cho mọi tài khoản đã đăng nhập.
	authorized := router.Group("/api")
	authorized.Use(middleware.LoginRequired())
	{
		authorized.GET("/profile", c.auth.Profile)

		authorized.GET("/courses", c.course.List)
		authorized.GET("/courses/:id", c.course.Detail)

		authorized.POST("/progress", c.progress.Mark)
		authorized.GET("/progress", c.progress.Mine)

		authorized.POST("/exercises/submit", c.exercise.Submit)
		authorized.GET("/exercises/mine", c.exercise.Mine)

		authorized.GET("/documents", c.document.List)

		forum := authorized.Group("/forum")
		{
			forum.GET("/posts", c.forum.List)
			forum.GET("/posts/:id", c.forum.Detail)
			forum.POST("/posts", c.forum.Create)
			forum.PUT("/posts/:id", c.forum.Update)
			forum.DELETE("/posts/:id", c.forum.Delete)
			forum.POST("/posts/:id/comments", c.forum.AddComment)
			forum.DELETE("/comments/:id", c.forum.DeleteComment)
		}

		chat := authorized.Group("/chat")
		{
			chat.GET("/messages", c.chat.List)
			chat.POST("/messages", c.chat.Send)
			chat.DELETE("/messages/:id", c.chat.Delete)
		}

		authorized.POST("/ai/chat", c.ai.Chat)
	}

	// Route của học sinh: làm bài thi.
	student := router.Group("/api/exams")
	student.Use(middleware.LoginRequired(), middleware.RoleRequired(model.Student))
	{
		student.GET("/history", c.exam.History)
		student.GET("/:grade", c.exam.List)
		student.POST("/:grade/:id/start", c.exam.Start)
		student.GET("/:grade/:id/remaining", c.exam.Remaining)
		student.POST("/:grade/:id/reset", c.exam.Reset)
		student.POST("/:grade/:id/submit", c.exam.Submit)
		student.GET("/:grade/:id/result", c.exam.LatestResult)
	}

	// Route của giáo viên: quản lý khóa học, tài liệu, đề thi.
	teacher := router.Group("/api/teacher")
	teacher.Use(middleware.LoginRequired(), middleware.RoleRequired(model.Teacher))
	{
		teacher.GET("/courses", c.course.MyCourses)
		teacher.POST("/courses", c.course.Create)
		teacher.PUT("/courses/:id", c.course.Update)
		teacher.DELETE("/courses/:id", c.course.Delete)
		teacher.GET("/courses/:id/progress", c.progress.ByCourse)

		teacher.GET("/submissions", c.exercise.ByTeacher)

		teacher.POST("/documents", c.document.Add)

		teacher.GET("/exams", c.exam.MyExams)
		teacher.POST("/exams", c.exam.Import)
		teacher.DELETE("/exams/:grade/:id", c.exam.Delete)
	}
}
