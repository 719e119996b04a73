package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ewebb/backend/internal/auth"
	jwtpkg "ewebb/backend/internal/auth/jwt"
	"ewebb/backend/internal/config"
	"ewebb/backend/internal/middleware"
	"ewebb/backend/internal/monitoring"
	"ewebb/backend/internal/service"
	"ewebb/backend/internal/storage"
)

// Handler 聚合所有 HTTP 处理逻辑。
type Handler struct {
	contacts      *service.ContactService
	documents     *service.DocumentService
	authenticator *auth.Authenticator
	jwtManager    *jwtpkg.Manager
	metrics       *monitoring.Metrics
	store         storage.Store
	log           *zap.Logger
}

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config          *config.Config
	ContactService  *service.ContactService
	DocumentService *service.DocumentService
	Authenticator   *auth.Authenticator
	JWTManager      *jwtpkg.Manager
	Metrics         *monitoring.Metrics // 可为 nil（测试环境）
	Store           storage.Store
	Logger          *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// 创建处理器
	handler := &Handler{
		contacts:      deps.ContactService,
		documents:     deps.DocumentService,
		authenticator: deps.Authenticator,
		jwtManager:    deps.JWTManager,
		metrics:       deps.Metrics,
		store:         deps.Store,
		log:           deps.Logger,
	}

	// 创建中间件
	jwtAuth := middleware.NewJWTAuth(deps.JWTManager, deps.Logger)

	var onBlock func()
	if deps.Metrics != nil {
		onBlock = deps.Metrics.RecordRateLimitBlock
	}
	contactLimiter := middleware.NewRateLimiter(
		deps.Config.RateLimit.ContactPerMinute,
		deps.Config.RateLimit.ContactBurst,
		deps.Logger,
		onBlock,
	)

	api := router.Group("/api")
	{
		// 健康检查
		api.GET("/health", handler.health)

		// 联系表单（公开，限流）
		api.POST("/contact",
			contactLimiter.Limit(),
			middleware.BodySizeLimit(deps.Config.Uploads.ContactBody),
			handler.submitContact,
		)

		// 文档列表（公开）
		api.GET("/documents", handler.listDocuments)

		// ========== Admin Routes ==========
		adminRoutes := api.Group("/admin")
		{
			adminRoutes.POST("/login",
				middleware.BodySizeLimit(deps.Config.Uploads.ContactBody),
				handler.login,
			)

			authed := adminRoutes.Group("")
			authed.Use(jwtAuth.RequireAuth())
			{
				authed.GET("/contacts", handler.listContacts)
				authed.PUT("/contacts/:id/status", handler.updateContactStatus)

				authed.POST("/upload",
					middleware.BodySizeLimit(deps.Config.Uploads.MaxSize),
					handler.uploadDocument,
				)
				authed.GET("/documents", handler.listAdminDocuments)
				authed.DELETE("/documents/:id", handler.deleteDocument)
			}
		}
	}

	// Prometheus 指标
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	}

	// 上传文件静态服务
	router.Static("/uploads", deps.Config.Uploads.Dir)

	return router
}

// health 健康检查端点，存储不可达时报告降级。
func (h *Handler) health(c *gin.Context) {
	if err := h.store.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"message": "storage unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "EWEBB API is running",
	})
}
