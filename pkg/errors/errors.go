// Package errors 定义业务错误分类。
// Handler 通过 Kind 决定 HTTP 状态码，基础设施错误的细节只写日志不回传客户端。
package errors

import (
	"errors"
)

// Kind 错误分类
type Kind string

const (
	KindValidation Kind = "ValidationError"
	KindAuth       Kind = "AuthError"      // 缺少凭据 / 凭据错误 → 401
	KindForbidden  Kind = "ForbiddenError" // Token 无效或过期 → 403
	KindNotFound   Kind = "NotFoundError"
	KindConflict   Kind = "ConflictError"
	KindStore      Kind = "StoreError"
	KindUpload     Kind = "UploadError"
	KindInternal   Kind = "InternalError"
)

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string // 可直接展示给客户端的文案
	Err     error  // 底层原因，仅用于日志
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New 创建业务错误（通常作为哨兵错误使用）
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 解析错误链中第一个 *Error 的分类，未分类的错误视为 InternalError
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 返回错误链中第一个 *Error 的对外文案
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// Is / As 转发标准库，方便调用方只引入本包
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
