package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fyb-checkin/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 错误码
const (
	CodeValidation   = 10001
	CodeUnauthorized = 10002
	CodeForbidden    = 10003
	CodeRateLimited  = 10004
	CodeTooLarge     = 10005
	CodeNotFound     = 12001
	CodeConflict     = 12002
	CodeInternal     = 50000
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidation, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// InternalError 500，不暴露任何内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}

// FromError 按错误分类写出响应
// Store/Upload/未分类错误统一返回 500 通用文案，并记录到 gin 错误链供日志中间件输出
func FromError(c *gin.Context, err error) {
	msg := apperrors.MessageOf(err)

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		BadRequest(c, msg)
	case apperrors.KindAuth:
		Unauthorized(c, msg)
	case apperrors.KindForbidden:
		Forbidden(c, msg)
	case apperrors.KindNotFound:
		NotFound(c, msg)
	case apperrors.KindConflict:
		Error(c, http.StatusConflict, CodeConflict, msg)
	default:
		_ = c.Error(err)
		InternalError(c)
	}
}
