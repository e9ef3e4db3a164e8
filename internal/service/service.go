package service

import (
	"go.uber.org/zap"

	"fyb-checkin/config"
	"fyb-checkin/internal/repository"
	"fyb-checkin/pkg/jwt"
	"fyb-checkin/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Submission SubmissionService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	uploader storage.Uploader,
	logger *zap.Logger,
) *Service {
	submissionSvc := NewSubmissionService(repo, uploader, cfg.Feature.StrictTransitions, logger)

	return &Service{
		Auth:       NewAuthService(&cfg.Auth, jwtMgr, logger),
		Submission: submissionSvc,
		Export:     NewExportService(submissionSvc, logger),
	}
}
