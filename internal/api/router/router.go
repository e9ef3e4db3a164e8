package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fyb-checkin/config"
	"fyb-checkin/internal/api/handler"
	"fyb-checkin/internal/api/middleware"
	"fyb-checkin/pkg/jwt"
)

// defaultBodyLimit 非上传接口的请求体上限
const defaultBodyLimit = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流（Redis 未启用或不可用）
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 本地存储的截图 ──
	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.Local.Dir)
	}

	smallBody := middleware.BodyLimit(defaultBodyLimit)

	// ── 管理员会话（无需认证）──
	admin := r.Group("/admin", smallBody)
	{
		admin.POST("/login", middleware.RateLimit(limiter, cfg.RateLimit.LoginPerMinute, time.Minute), h.Auth.Login)
		admin.POST("/logout", h.Auth.Logout)
		admin.GET("/session", h.Auth.Session)
	}

	// ── 公开提交 ──
	r.POST("/submit",
		middleware.BodyLimit(cfg.Server.MaxUploadMB<<20),
		middleware.RateLimit(limiter, cfg.RateLimit.SubmitPerMinute, time.Minute),
		h.Submission.Submit,
	)

	// ── 需要管理员会话的路由 ──
	authorized := r.Group("", smallBody, middleware.AdminAuth(jwtMgr, cfg.Auth.Cookie.Name))
	{
		submissions := authorized.Group("/submissions")
		{
			submissions.GET("", h.Submission.ListSubmissions)
			submissions.GET("/stats", h.Submission.GetStats)
			submissions.GET("/export", h.Export.ExportSubmissions)
			if cfg.Feature.AllowDelete {
				submissions.DELETE("/:id", h.Submission.DeleteSubmission)
			}
		}

		authorized.POST("/verify/:id", h.Submission.Verify)
		authorized.POST("/checkin/:id", h.Submission.CheckIn)
		authorized.POST("/uncheckin/:id", h.Submission.Uncheck)
	}

	return r
}
