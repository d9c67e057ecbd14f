package app

import (
	"math_quiz_backend/docs"
	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/middleware"
	"math_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Store) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 공개 라우트(로그인 불필요)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
		public.GET("/ranking", c.ranking.Leaderboard)
		public.GET("/quiz/levels", c.quiz.Levels)
	}

	// 2. 인증 필요 라우트
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/quiz/reload", c.quiz.Reload)
		authGroup.POST("/ranking/save", c.ranking.Save)

		sittings := authGroup.Group("/sittings")
		{
			sittings.POST("", c.sitting.Start)
			sittings.GET("/:id", c.sitting.Get)
			sittings.GET("/:id/question", c.sitting.Question)
			sittings.POST("/:id/answer", c.sitting.Answer)
			sittings.POST("/:id/feedback", c.sitting.Feedback)
			sittings.POST("/:id/review-select", c.sitting.ReviewSelect)
			sittings.POST("/:id/review", c.sitting.Review)
			sittings.POST("/:id/home", c.sitting.Home)
		}
	}

	// 3. 관리자 라우트: 인증 + 관리자 역할 토큰
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// unlock은 일반 토큰으로 호출해 관리자 토큰을 얻는다
		adminGroup.POST("/unlock", c.admin.Unlock)

		guarded := adminGroup.Group("")
		guarded.Use(middleware.AdminMiddleware())
		{
			guarded.POST("/cache/invalidate", c.admin.InvalidateCache)
			guarded.DELETE("/users/:name", c.admin.PurgeUser)
			guarded.DELETE("/ranking", c.admin.WipeRanking)
		}
	}
}
