package api

import (
	"Beacon/internal/api/middleware"
	"Beacon/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		accountGroup := apiGroup.Group("/accounts")
		{
			accountGroup.Use(middleware.AuthMiddleware())
			{
				accountGroup.POST("", group.AccountHandler.Connect)
				accountGroup.GET("", group.AccountHandler.ListAccounts)
				accountGroup.DELETE("/:account_id", group.AccountHandler.Disconnect)
				accountGroup.PUT("/:account_id/activate", group.AccountHandler.Activate)
				accountGroup.PUT("/:account_id/deactivate", group.AccountHandler.Deactivate)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.Use(middleware.AuthMiddleware())
			{
				postGroup.GET("", group.PostHandler.ListPosts)
				postGroup.GET("/analytics", group.PostHandler.GetPostAnalytics)
				postGroup.GET("/:post_id", group.PostHandler.GetPost)
				postGroup.PUT("/:post_id/metrics", group.PostHandler.UpdateMetrics)
				postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			}
		}

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.Use(middleware.AuthMiddleware())
			{
				analyticsGroup.GET("/dashboard", group.AnalyticsHandler.GetDashboard)
				analyticsGroup.GET("/growth", group.AnalyticsHandler.GetFollowerGrowth)
				analyticsGroup.GET("/top-posts", group.AnalyticsHandler.GetTopPosts)
				analyticsGroup.GET("/platforms", group.AnalyticsHandler.GetPlatformBreakdown)
				analyticsGroup.POST("/snapshot/:account_id", group.AnalyticsHandler.CreateSnapshot)
				analyticsGroup.GET("/export", group.AnalyticsHandler.Export)
			}
		}
	}

	return r
}
