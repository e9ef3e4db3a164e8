package handler

import (
	"fyb-checkin/config"
	"fyb-checkin/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Submission *SubmissionHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, &cfg.Auth.Cookie, cfg.Auth.SessionTTL),
		Submission: NewSubmissionHandler(svc.Submission),
		Export:     NewExportHandler(svc.Export),
	}
}
