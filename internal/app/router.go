package app

import (
	"quiz_assessment_backend/docs"
	"quiz_assessment_backend/internal/middleware"
	"quiz_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(答题端与看板)
	a.registerPublicRoutes(router, c)

	// 2. 管理员相关接口
	a.registerAdminRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/admin/login", c.auth.Login)

		// 答题
		public.POST("/validate-access-code", c.project.ValidateAccessCode)
		public.POST("/submit-quiz", c.result.Submit)

		// 结果与统计
		public.GET("/results", c.result.List)
		public.GET("/results/:project_id", c.result.List)
		public.GET("/stats", c.analytics.Stats)
		public.GET("/stats/:project_id", c.analytics.Stats)
		public.GET("/analytics", c.analytics.Analytics)
		public.GET("/period-comparison/:project_id", c.analytics.PeriodComparison)
		public.GET("/download-csv", c.export.DownloadCSV)

		// 项目与题库只读
		public.GET("/projects", c.project.List)
		public.GET("/projects/:id", c.project.Get)
		public.GET("/questions", middleware.TryAdminMiddleware(c.auth.AuthService), c.question.List)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api")
	admin.Use(middleware.AdminMiddleware(c.auth.AuthService))
	{
		admin.DELETE("/results", c.result.DeleteAll)
		admin.DELETE("/results/:project_id", c.result.DeleteAll)
		admin.DELETE("/results/record/:id", c.result.DeleteRecord)

		admin.POST("/projects", c.project.Create)
		admin.PUT("/projects/:id", c.project.Update)
		admin.PUT("/projects/:id/status", c.project.SetStatus)
		admin.DELETE("/projects/:id", c.project.Delete)

		admin.POST("/questions", c.question.Create)
		admin.POST("/questions/copy", c.question.Copy)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/reports/archive", c.export.Archive)
	}
}
