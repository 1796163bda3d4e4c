package router

import (
	"net/http"
	"slices"

	limit "github.com/bu/gin-access-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/handler"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookieName = "risegum_session"
	// clientIPHeader 由服务端写入，CIDR 校验只读取该值
	clientIPHeader = "X-Risegum-Client-Ip"
)

// Options 汇总路由层需要的配置。
// TrustedProxies 为空时 ClientIP 只取 socket 对端地址。
type Options struct {
	SessionSecret     string
	CORSOrigins       []string
	MetricsAllowedIPs string
	TrustedProxies    []string
	Handler           handler.Options
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("proxies", opts.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(logging.Middleware("/metrics", "/ping"))
	r.Use(corsMiddleware(opts.CORSOrigins))

	// 配置会话中间件
	secret := opts.SessionSecret
	if secret == "" {
		secret = "risegum-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.Handler.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	api := handler.NewAPI(db.DB, opts.Handler)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if opts.MetricsAllowedIPs != "" {
		limit.TrustedHeaderField = clientIPHeader
		r.GET("/metrics", resolvedClientIP(), limit.CIDR(opts.MetricsAllowedIPs), metrics.Handler())
	} else {
		r.GET("/metrics", metrics.Handler())
	}

	// 落地页
	r.GET("/", api.ShowLanding)
	r.POST("/waitlist", api.SubmitWaitlist)
	r.GET("/og.png", api.SocialCard)

	// 候补名单后端接口
	backend := r.Group("/api")
	{
		backend.GET("/", api.Root)
		backend.POST("/waitlist", api.RateLimit(), api.CreateWaitlistEntry)
		backend.GET("/waitlist", api.AdminAPIAuth(), api.ListWaitlistEntries)
		backend.GET("/content", api.GetContent)
		backend.POST("/status", api.CreateStatusCheck)
		backend.GET("/status", api.ListStatusChecks)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/admin/waitlist")
		})
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/waitlist", api.ShowWaitlist)
			auth.GET("/waitlist/export.xlsx", api.ExportWaitlist)
		}

		adminAPI := admin.Group("/api")
		adminAPI.Use(api.AdminAPIAuth())
		{
			adminAPI.PUT("/content", api.ReplaceContent)
			adminAPI.DELETE("/content", api.ResetContent)
		}
	}

	return r
}

// resolvedClientIP 覆盖请求中的 clientIPHeader，值来自按可信代理解析后的 ClientIP。
func resolvedClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Header.Set(clientIPHeader, c.ClientIP())
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", "HX-Request", "HX-Target", "HX-Current-URL"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
