package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyb-checkin/config"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 600)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{1}, 32)...)
)

func TestValidateImage_Accepts(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		ext  string
	}{
		{"png", pngBytes, ".png"},
		{"jpeg", jpegBytes, ".jpg"},
	}

	for _, tc := range cases {
		r, ext, err := ValidateImage(bytes.NewReader(tc.data))
		if err != nil {
			t.Fatalf("%s: 期望通过，实际: %v", tc.name, err)
		}
		if ext != tc.ext {
			t.Errorf("%s: 期望扩展名 %s，实际=%s", tc.name, tc.ext, ext)
		}

		// 返回的 Reader 必须包含完整内容
		got, _ := io.ReadAll(r)
		if !bytes.Equal(got, tc.data) {
			t.Errorf("%s: 探测后内容被截断，len=%d want=%d", tc.name, len(got), len(tc.data))
		}
	}
}

func TestValidateImage_Rejects(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("GIF89a\x01\x00\x01\x00"),
		[]byte("%PDF-1.4 not an image"),
		[]byte("plain text"),
		{},
	} {
		if _, _, err := ValidateImage(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%q: 期望 ErrUnsupportedFormat，实际: %v", data, err)
		}
	}
}

func TestLocal_UploadAndDestroy(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(&config.LocalConfig{Dir: dir, PublicURL: "http://localhost:5000/uploads/"})
	if err != nil {
		t.Fatalf("NewLocal 失败: %v", err)
	}

	up, err := s.Upload(context.Background(), bytes.NewReader(pngBytes), "proof.PNG")
	if err != nil {
		t.Fatalf("Upload 失败: %v", err)
	}
	if !strings.HasSuffix(up.PublicID, ".png") {
		t.Errorf("期望扩展名 .png，实际=%s", up.PublicID)
	}
	if up.URL != "http://localhost:5000/uploads/"+up.PublicID {
		t.Errorf("URL 不符: %s", up.URL)
	}

	stored, err := os.ReadFile(filepath.Join(dir, up.PublicID))
	if err != nil || !bytes.Equal(stored, pngBytes) {
		t.Fatalf("文件内容不符: %v", err)
	}

	if err := s.Destroy(context.Background(), up.PublicID); err != nil {
		t.Fatalf("Destroy 失败: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, up.PublicID)); !os.IsNotExist(err) {
		t.Error("文件应已删除")
	}

	// 重复删除不报错
	if err := s.Destroy(context.Background(), up.PublicID); err != nil {
		t.Errorf("重复删除应成功，实际: %v", err)
	}
}

func TestLocal_DestroyRejectsPathTraversal(t *testing.T) {
	s, _ := NewLocal(&config.LocalConfig{Dir: t.TempDir()})

	for _, id := range []string{"", "../etc/passwd", "a/b.png"} {
		if err := s.Destroy(context.Background(), id); err == nil {
			t.Errorf("publicID=%q 应被拒绝", id)
		}
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(&config.StorageConfig{Driver: "ftp"}); err == nil {
		t.Error("未知驱动应返回错误")
	}
}
