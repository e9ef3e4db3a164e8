package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyb-checkin/internal/console"
	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/model"
	"fyb-checkin/internal/repository"
	apperrors "fyb-checkin/pkg/errors"
	applogger "fyb-checkin/pkg/logger"
	"fyb-checkin/pkg/phone"
	"fyb-checkin/pkg/storage"
)

// ── 提交模块业务错误 ──

var (
	ErrMissingFields      = apperrors.New(apperrors.KindValidation, "Please provide your name, phone number, and screenshot.")
	ErrDuplicatePhone     = apperrors.New(apperrors.KindValidation, "You have already submitted with this phone number.")
	ErrUnsupportedImage   = apperrors.New(apperrors.KindValidation, "Screenshot must be a JPG or PNG image.")
	ErrFieldTooLong       = apperrors.New(apperrors.KindValidation, "Name or phone number is too long.")
	ErrSubmissionNotFound = apperrors.New(apperrors.KindNotFound, "Submission not found")
	ErrInvalidTransition  = apperrors.New(apperrors.KindConflict, "Submission status does not allow this action")
)

// cleanupTimeout 孤立截图清理的超时时间
const cleanupTimeout = 30 * time.Second

// 字段长度上限，对应 submissions.name / submissions.phone
const (
	maxNameLen  = 255
	maxPhoneLen = 25
)

// SubmissionService 提交业务接口
type SubmissionService interface {
	Submit(ctx context.Context, req *dto.SubmitRequest, shot *dto.Screenshot) (*dto.SubmissionResponse, error)
	List(ctx context.Context) ([]dto.SubmissionResponse, error)
	Stats(ctx context.Context) (*dto.SubmissionStatsResponse, error)
	Verify(ctx context.Context, id uint) (*dto.SubmissionResponse, error)
	CheckIn(ctx context.Context, id uint) (*dto.SubmissionResponse, error)
	Uncheck(ctx context.Context, id uint) (*dto.SubmissionResponse, error)
	Delete(ctx context.Context, id uint) (*dto.SubmissionResponse, error)
}

// transition 状态流转定义；from 仅在严格模式下生效
type transition struct {
	name string
	to   model.SubmissionStatus
	from []model.SubmissionStatus
}

var (
	verifyTransition  = transition{name: "verify", to: model.StatusVerified, from: []model.SubmissionStatus{model.StatusPending}}
	checkInTransition = transition{name: "checkin", to: model.StatusCheckedIn, from: []model.SubmissionStatus{model.StatusVerified}}
	uncheckTransition = transition{name: "uncheck", to: model.StatusVerified, from: []model.SubmissionStatus{model.StatusCheckedIn}}
)

type submissionService struct {
	repo     *repository.Repository
	uploader storage.Uploader
	strict   bool
	logger   *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
// strict 为 true 时拒绝非法前置状态的流转（ConflictError）
func NewSubmissionService(repo *repository.Repository, uploader storage.Uploader, strict bool, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, uploader: uploader, strict: strict, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, req *dto.SubmitRequest, shot *dto.Screenshot) (*dto.SubmissionResponse, error) {
	name := strings.TrimSpace(req.Name)
	rawPhone := strings.TrimSpace(req.Phone)
	if name == "" || rawPhone == "" || shot == nil || shot.Content == nil {
		return nil, ErrMissingFields
	}

	content, ext, err := storage.ValidateImage(shot.Content)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, apperrors.Wrap(apperrors.KindUpload, "Failed to read screenshot", err)
	}

	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(name) > maxNameLen || utf8.RuneCountInString(normalized) > maxPhoneLen {
		return nil, ErrFieldTooLong
	}

	// 1. 预检查：已提交过则不再上传
	if _, err := s.repo.Submission.GetByPhone(ctx, normalized); err == nil {
		s.logger.Info("重复提交已拒绝", applogger.Phone(normalized))
		return nil, ErrDuplicatePhone
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按手机号查询提交记录失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to check existing submission", err)
	}

	// 2. 上传截图，必须先于入库成功
	upload, err := s.uploader.Upload(ctx, content, screenshotFilename(shot.Filename, ext))
	if err != nil {
		s.logger.Error("上传截图失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindUpload, "Failed to upload screenshot", err)
	}

	// 3. 入库；唯一约束兜底并发重复提交
	sub := &model.Submission{
		Name:               name,
		Phone:              normalized,
		Screenshot:         upload.URL,
		ScreenshotPublicID: upload.PublicID,
		Status:             model.StatusPending,
	}
	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		s.destroyAsync(upload.PublicID)

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePhone
		}
		s.logger.Error("保存提交记录失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to save submission", err)
	}

	s.logger.Info("收到付款凭证", zap.Uint("id", sub.ID), applogger.Phone(sub.Phone))
	return toSubmissionResponse(sub), nil
}

// ────────────────────── List / Stats ──────────────────────

func (s *submissionService) List(ctx context.Context) ([]dto.SubmissionResponse, error) {
	subs, err := s.repo.Submission.List(ctx)
	if err != nil {
		s.logger.Error("列出提交记录失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to fetch submissions", err)
	}

	result := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, *toSubmissionResponse(&subs[i]))
	}

	return result, nil
}

func (s *submissionService) Stats(ctx context.Context) (*dto.SubmissionStatsResponse, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := console.Summarize(list)
	return &stats, nil
}

// ────────────────────── 状态流转 ──────────────────────

func (s *submissionService) Verify(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return s.apply(ctx, id, verifyTransition)
}

func (s *submissionService) CheckIn(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return s.apply(ctx, id, checkInTransition)
}

func (s *submissionService) Uncheck(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return s.apply(ctx, id, uncheckTransition)
}

func (s *submissionService) apply(ctx context.Context, id uint, t transition) (*dto.SubmissionResponse, error) {
	var from []model.SubmissionStatus
	if s.strict {
		from = t.from
	}

	sub, err := s.repo.Submission.UpdateStatus(ctx, id, t.to, from...)
	if err == nil {
		s.logger.Info("提交状态已更新",
			zap.Uint("id", id),
			zap.String("action", t.name),
			zap.String("status", string(sub.Status)),
		)
		return toSubmissionResponse(sub), nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("更新提交状态失败", zap.Uint("id", id), zap.String("action", t.name), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to update submission", err)
	}
	if !s.strict {
		return nil, ErrSubmissionNotFound
	}

	// 严格模式下未命中：区分记录不存在与状态不允许
	if _, getErr := s.repo.Submission.GetByID(ctx, id); getErr != nil {
		if errors.Is(getErr, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交记录失败", zap.Uint("id", id), zap.Error(getErr))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to update submission", getErr)
	}
	return nil, ErrInvalidTransition
}

// ────────────────────── Delete ──────────────────────

func (s *submissionService) Delete(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("删除提交记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStore, "Failed to delete submission", err)
	}

	s.destroyAsync(sub.ScreenshotPublicID)

	s.logger.Info("提交记录已删除", zap.Uint("id", id))
	return toSubmissionResponse(sub), nil
}

// ── 内部辅助方法 ──

// destroyAsync 尽力删除截图，失败只记录日志，不影响主流程
func (s *submissionService) destroyAsync(publicID string) {
	if publicID == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if err := s.uploader.Destroy(ctx, publicID); err != nil {
			s.logger.Warn("清理截图失败", zap.String("public_id", publicID), zap.Error(err))
		}
	}()
}

// screenshotFilename 以探测到的真实类型修正扩展名
func screenshotFilename(original, ext string) string {
	name := filepath.Base(original)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "screenshot"
	}
	return base + ext
}

func toSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		ID:                 sub.ID,
		Name:               sub.Name,
		Phone:              sub.Phone,
		Screenshot:         sub.Screenshot,
		ScreenshotPublicID: sub.ScreenshotPublicID,
		Status:             string(sub.Status),
		CreatedAt:          sub.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          sub.UpdatedAt.Format(time.RFC3339),
	}
}
