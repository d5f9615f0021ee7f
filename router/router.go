package router

import (
	"time"

	"eyewear/api"
	"eyewear/config"
	_ "eyewear/docs"
	"eyewear/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, version string) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CaptureOpenID())

	systemHandler := api.NewSystemHandler(version)

	// 健康检查
	r.GET("/healthz", systemHandler.Healthz)

	// 后台管理 API
	adminHandler := api.NewAdminHandler()
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.LoginRateLimit(5, 10*time.Minute), adminHandler.Login)
		admin.POST("/logout", adminHandler.Logout)

		// 需要 Cookie 认证的后台接口
		adminAuth := admin.Group("")
		adminAuth.Use(middleware.AdminAuth())
		{
			adminAuth.GET("/pageviews", adminHandler.Pageviews)
			adminAuth.GET("/sales_shares", adminHandler.SalesShares)
			adminAuth.GET("/export/sales_shares", adminHandler.ExportSalesShares)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 小程序端 API
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/system/config", systemHandler.Config)

		// 微信登录
		wechatHandler := api.NewWechatHandler()
		apiGroup.POST("/wechat/login", wechatHandler.Code2Session)

		// 商品
		productHandler := api.NewProductHandler()
		apiGroup.GET("/products", productHandler.List)
		apiGroup.GET("/products/:frame_model", productHandler.Get)

		// 用户与推荐关系
		userHandler := api.NewUserHandler()
		users := apiGroup.Group("/users")
		{
			users.POST("/upsert", userHandler.Upsert)
			users.GET("/profile", userHandler.Profile)
			users.POST("/referrer", userHandler.SetReferrer)
			users.POST("/mysales", userHandler.SetMySales)
			users.GET("/role", userHandler.Role)
			users.GET("/referrals", userHandler.Referrals)
		}
		apiGroup.GET("/kf/context", userHandler.KfContext)

		// 推荐（收藏）
		favoriteHandler := api.NewFavoriteHandler()
		favorites := apiGroup.Group("/favorites")
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("", favoriteHandler.Add)
			favorites.DELETE("", favoriteHandler.Remove)
			favorites.GET("/ids", favoriteHandler.ListIDs)
			favorites.POST("/batch", favoriteHandler.AddBatch)
		}

		// 分享推送
		shareHandler := api.NewShareHandler()
		shares := apiGroup.Group("/shares")
		{
			shares.GET("", shareHandler.List)
			shares.POST("/push", shareHandler.CreatePush)
			shares.POST("/open", shareHandler.OpenByDedup)
			shares.POST("/:id/open", shareHandler.Open)
			shares.POST("/:id/sent", shareHandler.MarkSent)
		}

		// 销售名录
		salesHandler := api.NewSalesHandler()
		apiGroup.GET("/sales", salesHandler.List)

		// 访问埋点
		analyticsHandler := api.NewAnalyticsHandler()
		apiGroup.POST("/analytics/pageview", analyticsHandler.PageView)
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
