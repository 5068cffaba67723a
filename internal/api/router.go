package api

import (
	"time"

	"github.com/Muhi2007/eshopping-ai/internal/api/handlers/health"
	recommendHandler "github.com/Muhi2007/eshopping-ai/internal/api/handlers/recommend"
	"github.com/Muhi2007/eshopping-ai/internal/api/middleware"
	"github.com/Muhi2007/eshopping-ai/internal/core/ai/gemini"
	recommendService "github.com/Muhi2007/eshopping-ai/internal/core/recommend"
	"github.com/Muhi2007/eshopping-ai/internal/infrastructure/config"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求體大小限制 (64KB，請求只含連結與數量)
	maxBodySize = 64 << 10
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("Initializing services",
		zap.String("model", cfg.Gemini.Model),
		zap.String("base_url", cfg.Gemini.BaseURL),
	)

	// 初始化 Gemini 客戶端與推薦服務
	geminiClient := gemini.NewClient(cfg)
	recommendSvc := recommendService.NewService(geminiClient)

	// 全局中間件：注入配置與服務
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Set("recommend_service", recommendSvc)
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := recommendHandler.NewHandler(recommendSvc)

		// 商品搭配推薦
		api.POST("/recommendations", handler.HandleRecommendations)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
