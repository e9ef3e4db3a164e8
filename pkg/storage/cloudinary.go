package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"fyb-checkin/config"
)

// Cloudinary 图床存储
type Cloudinary struct {
	cld      *cloudinary.Cloudinary
	folder   string
	maxWidth int
}

// NewCloudinary 创建 Cloudinary 存储
func NewCloudinary(cfg *config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("初始化 Cloudinary 失败: %w", err)
	}

	maxWidth := cfg.MaxWidth
	if maxWidth <= 0 {
		maxWidth = 800
	}

	return &Cloudinary{cld: cld, folder: cfg.Folder, maxWidth: maxWidth}, nil
}

// Upload 上传截图；宽度超过 maxWidth 时由图床等比缩放
func (s *Cloudinary) Upload(ctx context.Context, r io.Reader, _ string) (*Upload, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.folder,
		AllowedFormats: api.CldAPIArray{"jpg", "jpeg", "png"},
		Transformation: fmt.Sprintf("c_limit,w_%d", s.maxWidth),
	})
	if err != nil {
		return nil, fmt.Errorf("上传 Cloudinary 失败: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("上传 Cloudinary 失败: %s", resp.Error.Message)
	}

	return &Upload{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Destroy 删除截图；资源已不存在视为成功
func (s *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("删除 Cloudinary 资源失败: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("删除 Cloudinary 资源失败: %s", resp.Error.Message)
	}

	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("删除 Cloudinary 资源失败: result=%s", resp.Result)
	}
}
