package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fyb-checkin/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）
// Handler 读取超限时只需 c.Error(err) 并返回，由这里统一写出 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() || c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var maxErr *http.MaxBytesError
			if errors.As(e.Err, &maxErr) {
				response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "Request body too large")
				return
			}
		}
	}
}
