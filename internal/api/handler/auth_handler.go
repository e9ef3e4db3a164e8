package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fyb-checkin/config"
	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/service"
	"fyb-checkin/pkg/response"
)

// AuthHandler 管理员会话 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
	ttl     time.Duration
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie *config.CookieConfig, ttl time.Duration) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: *cookie, ttl: ttl}
}

// Login 管理员登录，成功后写入 HTTP-only 会话 Cookie
// POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrCredentialsMissing.Message)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(h.ttl.Seconds()))
	response.OK(c, "Login successful", gin.H{"user": result.Username})
}

// Logout 清除会话 Cookie；Token 本身不吊销
// POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.OK(c, "Logged out successfully", nil)
}

// Session 查询会话状态，永不返回错误
// GET /admin/session
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	c.JSON(http.StatusOK, h.authSvc.Session(c.Request.Context(), token))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
