package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fyb-checkin/config"
)

// Local 本地磁盘存储（早期版本的上传方式，开发环境使用）
type Local struct {
	dir       string
	publicURL string
}

// NewLocal 创建本地存储并确保目录存在
func NewLocal(cfg *config.LocalConfig) (*Local, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &Local{dir: cfg.Dir, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

// Upload 以随机文件名写入磁盘，扩展名沿用原文件名
func (s *Local) Upload(_ context.Context, r io.Reader, filename string) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("创建文件失败: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}

	return &Upload{URL: s.publicURL + "/" + name, PublicID: name}, nil
}

// Destroy 删除文件；文件不存在视为成功
func (s *Local) Destroy(_ context.Context, publicID string) error {
	// PublicID 只能是本目录下的文件名
	if publicID == "" || filepath.Base(publicID) != publicID {
		return fmt.Errorf("非法的 publicID: %q", publicID)
	}

	err := os.Remove(filepath.Join(s.dir, publicID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}
