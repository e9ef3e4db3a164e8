package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"fyb-checkin/internal/model"
	"fyb-checkin/internal/repository"
	"fyb-checkin/pkg/storage"
)

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	subs   map[uint]*model.Submission
	nextID uint

	// createErr 非 nil 时 Create 直接返回，用于模拟并发下的唯一约束冲突
	createErr error
	listErr   error
	calls     []string
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[uint]*model.Submission), nextID: 1}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	m.calls = append(m.calls, "Create")
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range m.subs {
		if s.Phone == sub.Phone {
			return gorm.ErrDuplicatedKey
		}
	}

	sub.ID = m.nextID
	m.nextID++
	now := time.Now()
	sub.CreatedAt, sub.UpdatedAt = now, now

	stored := *sub
	m.subs[sub.ID] = &stored
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id uint) (*model.Submission, error) {
	if s, ok := m.subs[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByPhone(_ context.Context, phone string) (*model.Submission, error) {
	m.calls = append(m.calls, "GetByPhone")
	for _, s := range m.subs {
		if s.Phone == phone {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) List(_ context.Context) ([]model.Submission, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Submission, 0, len(m.subs))
	for _, s := range m.subs {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSubmissionRepo) UpdateStatus(_ context.Context, id uint, to model.SubmissionStatus, from ...model.SubmissionStatus) (*model.Submission, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if len(from) > 0 {
		allowed := false
		for _, f := range from {
			if s.Status == f {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, gorm.ErrRecordNotFound
		}
	}

	s.Status = to
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (m *mockSubmissionRepo) Delete(_ context.Context, id uint) (*model.Submission, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(m.subs, id)
	return s, nil
}

// seed 直接写入一条记录，返回其 ID
func (m *mockSubmissionRepo) seed(name, phone string, status model.SubmissionStatus) uint {
	id := m.nextID
	m.nextID++
	m.subs[id] = &model.Submission{
		ID:                 id,
		Name:               name,
		Phone:              phone,
		Screenshot:         "https://cdn.example.com/" + name + ".png",
		ScreenshotPublicID: "fyb-payments/" + name,
		Status:             status,
	}
	return id
}

// ── Mock Uploader ──

type mockUploader struct {
	mu        sync.Mutex
	uploaded  []string
	uploadErr error
	// destroyed 记录异步清理的 PublicID
	destroyed chan string
}

func newMockUploader() *mockUploader {
	return &mockUploader{destroyed: make(chan string, 8)}
}

func (m *mockUploader) Upload(_ context.Context, r io.Reader, filename string) (*storage.Upload, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded = append(m.uploaded, filename)
	return &storage.Upload{
		URL:      "https://cdn.example.com/fyb-payments/" + filename,
		PublicID: "fyb-payments/" + filename,
	}, nil
}

func (m *mockUploader) Destroy(_ context.Context, publicID string) error {
	m.destroyed <- publicID
	return nil
}

func (m *mockUploader) uploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploaded)
}

// ── 测试辅助 ──

var errStoreDown = errors.New("connection refused")

func newTestRepository(subs *mockSubmissionRepo) *repository.Repository {
	return &repository.Repository{Submission: subs}
}
