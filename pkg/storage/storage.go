// Package storage 封装付款截图的外部存储。
// 上传成功后返回稳定的访问 URL 与用于删除的 PublicID；删除为尽力而为，由调用方决定是否忽略错误。
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"fyb-checkin/config"
)

// ErrUnsupportedFormat 非 jpg/jpeg/png 图片
var ErrUnsupportedFormat = errors.New("仅支持 jpg/jpeg/png 图片")

// sniffLen 类型探测读取的头部字节数
const sniffLen = 512

// Upload 上传结果
type Upload struct {
	URL      string
	PublicID string
}

// Uploader 截图存储接口
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*Upload, error)
	Destroy(ctx context.Context, publicID string) error
}

// New 按 storage.driver 创建对应实现
func New(cfg *config.StorageConfig) (Uploader, error) {
	switch cfg.Driver {
	case "cloudinary":
		return NewCloudinary(&cfg.Cloudinary)
	case "local":
		return NewLocal(&cfg.Local)
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.Driver)
	}
}

// ValidateImage 探测内容类型，仅放行 jpg/png
// 返回的 Reader 包含已读取的头部，可直接用于上传；ext 形如 ".jpg"
func ValidateImage(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("读取图片失败: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return nil, "", ErrUnsupportedFormat
	}

	return io.MultiReader(bytes.NewReader(head), r), mt.Extension(), nil
}
