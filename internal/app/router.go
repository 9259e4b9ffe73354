package app

import (
	"arch_quiz_backend/docs"
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/middleware"
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	quiz := rg.Group("/quiz")
	{
		quiz.POST("/start", c.quiz.StartQuiz)
		quiz.GET("/session", c.quiz.GetSession)
		quiz.POST("/submit", c.quiz.Submit)
		quiz.POST("/restart", c.quiz.Restart)
		quiz.POST("/feedback", c.quiz.SubmitFeedback)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/overview", c.report.Overview)
		reports.GET("/chapters", c.report.AccuracyByChapter)
		reports.GET("/difficulty", c.report.AccuracyByDifficulty)
		reports.GET("/daily", c.report.DailyCounts)
		reports.GET("/feedback", c.report.ListFeedback)
	}

	rg.GET("/materials/:week", c.lectureMaterial.ListByWeek)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		questions := admin.Group("/questions")
		{
			questions.GET("", c.question.ListQuestions)
			questions.POST("", c.question.CreateQuestion)
			questions.GET("/sources", c.question.ListSources)
			questions.POST("/import", c.question.ImportCSV)
			questions.GET("/export", c.question.ExportCSV)
			questions.POST("/generate", c.question.Generate)
			questions.POST("/generate/lecture", c.question.GenerateFromLecture)
			questions.POST("/generate/keyword", c.question.GenerateByKeyword)
			questions.GET("/:id", c.question.GetQuestion)
			questions.PUT("/:id", c.question.UpdateQuestion)
			questions.DELETE("/:id", c.question.DeleteQuestion)
			questions.POST("/:id/explanation", c.question.RegenerateExplanation)
		}

		admin.GET("/reports/users", c.report.AccuracyByUser)
		admin.GET("/reports/students", c.report.ListStudents)

		materials := admin.Group("/materials")
		{
			materials.POST("", c.lectureMaterial.Upload)
			materials.DELETE("/:id", c.lectureMaterial.Delete)
		}
	}
}
