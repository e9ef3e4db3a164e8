package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fyb-checkin/pkg/jwt"
	"fyb-checkin/pkg/response"
)

// UsernameKey 管理员用户名在 gin.Context 中的键
const UsernameKey = "username"

// AdminAuth 管理员会话中间件
// Token 优先取会话 Cookie，其次取 Authorization: Bearer <token>
// 缺少 Token 返回 401；Token 无效或已过期返回 403
func AdminAuth(jwtMgr *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Forbidden(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(UsernameKey, claims.Username)

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
