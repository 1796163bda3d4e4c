package handler

import (
	"bytes"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/service"
	"github.com/risegum/internal/view"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
	adminPageLimit     = 50

	msgLoginFailed = "Invalid username or password"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	renderNode(c, http.StatusOK, view.AdminLoginPage(""))
}

// Login 处理管理员登录
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := db.Authenticate(a.db, username, password)
	if err != nil {
		logger := logging.FromContext(c)
		logger.Warn().Str("username", strings.TrimSpace(username)).Msg("admin login rejected")
		renderNode(c, http.StatusUnauthorized, view.AdminLoginPage(msgLoginFailed))
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		renderNode(c, http.StatusInternalServerError, view.AdminLoginPage("Failed to save session"))
		return
	}

	c.Redirect(http.StatusFound, "/admin/waitlist")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminAPIAuth accepts either the configured bearer token or an admin session.
func (a *API) AdminAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.validBearer(c.GetHeader("Authorization")) {
			c.Next()
			return
		}
		if sessions.Default(c).Get(sessionUserIDKey) != nil {
			c.Next()
			return
		}
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		c.Abort()
	}
}

func (a *API) validBearer(header string) bool {
	if a.adminToken == "" {
		return false
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) == 1
}

// ShowWaitlist 渲染候补名单列表
func (a *API) ShowWaitlist(c *gin.Context) {
	skip, err := parseIntQuery(c, "skip", 0)
	if err != nil {
		skip = 0
	}
	limit, err := parseIntQuery(c, "limit", adminPageLimit)
	if err != nil || limit == 0 {
		limit = adminPageLimit
	}

	entries, total, err := a.waitlist.List(c.Request.Context(), skip, limit)
	if err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("list waitlist failed")
		c.String(http.StatusInternalServerError, "Failed to fetch waitlist entries")
		return
	}

	renderNode(c, http.StatusOK, view.AdminWaitlistPage(view.WaitlistPageData{
		Entries: entries,
		Total:   total,
		Skip:    skip,
		Limit:   limit,
	}))
}

// ExportWaitlist streams every entry as an xlsx workbook.
func (a *API) ExportWaitlist(c *gin.Context) {
	all, err := a.waitlist.All(c.Request.Context())
	if err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("export waitlist failed")
		c.String(http.StatusInternalServerError, "Failed to export waitlist")
		return
	}

	var buf bytes.Buffer
	if err := service.ExportWaitlist(&buf, all); err != nil {
		logger := logging.FromContext(c)
		logger.Error().Err(err).Msg("build waitlist workbook failed")
		c.String(http.StatusInternalServerError, "Failed to export waitlist")
		return
	}

	filename := "waitlist-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
