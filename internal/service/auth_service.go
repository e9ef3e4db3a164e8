package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fyb-checkin/config"
	"fyb-checkin/internal/dto"
	apperrors "fyb-checkin/pkg/errors"
	"fyb-checkin/pkg/jwt"
)

var (
	ErrInvalidCredentials = apperrors.New(apperrors.KindAuth, "Invalid credentials")
	ErrCredentialsMissing = apperrors.New(apperrors.KindValidation, "Username and password required")
)

// AuthService 管理员认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	// Session 解析会话 Token，任何失败都视为未登录
	Session(ctx context.Context, token string) *dto.SessionResponse
}

type authService struct {
	cfg    *config.AuthConfig
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		cfg:    cfg,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrCredentialsMissing
	}

	// 1. 校验用户名（常量时间比较）
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) != 1 {
		s.logger.Warn("管理员登录失败: 用户名不匹配")
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("管理员登录失败: 密码错误")
		return nil, ErrInvalidCredentials
	}

	// 3. 签发会话 Token
	token, expiresAt, err := s.jwtMgr.Sign(req.Username)
	if err != nil {
		s.logger.Error("签发会话 Token 失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "Failed to create session", err)
	}

	s.logger.Info("管理员登录成功", zap.String("username", req.Username))

	return &dto.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  req.Username,
	}, nil
}

func (s *authService) Session(_ context.Context, token string) *dto.SessionResponse {
	if token == "" {
		return &dto.SessionResponse{LoggedIn: false}
	}

	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return &dto.SessionResponse{LoggedIn: false}
	}

	return &dto.SessionResponse{LoggedIn: true, User: claims.Username}
}
