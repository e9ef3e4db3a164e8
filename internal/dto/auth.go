package dto

import "time"

// ── 认证模块 DTO ──

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult 登录结果，Token 仅写入 Cookie，不出现在响应体
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
}

// SessionResponse 会话状态
type SessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	User     string `json:"user,omitempty"`
}
