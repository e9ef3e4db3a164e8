package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"fyb-checkin/config"
	"fyb-checkin/internal/api/handler"
	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/service"
	"fyb-checkin/pkg/jwt"
)

// ── 桩服务 ──

type stubAuth struct{}

func (stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.LoginResult, error) {
	return nil, service.ErrInvalidCredentials
}
func (stubAuth) Session(context.Context, string) *dto.SessionResponse {
	return &dto.SessionResponse{}
}

type stubSubmissions struct{}

func (stubSubmissions) Submit(context.Context, *dto.SubmitRequest, *dto.Screenshot) (*dto.SubmissionResponse, error) {
	return nil, service.ErrMissingFields
}
func (stubSubmissions) List(context.Context) ([]dto.SubmissionResponse, error) {
	return []dto.SubmissionResponse{}, nil
}
func (stubSubmissions) Stats(context.Context) (*dto.SubmissionStatsResponse, error) {
	return &dto.SubmissionStatsResponse{}, nil
}
func (stubSubmissions) Verify(context.Context, uint) (*dto.SubmissionResponse, error) {
	return nil, service.ErrSubmissionNotFound
}
func (stubSubmissions) CheckIn(context.Context, uint) (*dto.SubmissionResponse, error) {
	return nil, service.ErrSubmissionNotFound
}
func (stubSubmissions) Uncheck(context.Context, uint) (*dto.SubmissionResponse, error) {
	return nil, service.ErrSubmissionNotFound
}
func (stubSubmissions) Delete(_ context.Context, id uint) (*dto.SubmissionResponse, error) {
	return &dto.SubmissionResponse{ID: id}, nil
}

type stubExport struct{}

func (stubExport) ExportSubmissions(context.Context, *dto.SubmissionFilter) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("xlsx"), "fyb.xlsx", nil
}

// ── 测试辅助 ──

func newTestEngine(t *testing.T, allowDelete bool) (http.Handler, *jwt.Manager) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.MaxUploadMB = 5
	cfg.Auth = config.AuthConfig{
		JWTSecret:  "router-test-secret-value",
		SessionTTL: time.Hour,
		Cookie:     config.CookieConfig{Name: "admin_token", SameSite: "Strict"},
	}
	cfg.Storage.Driver = "cloudinary"
	cfg.Feature.AllowDelete = allowDelete

	svc := &service.Service{Auth: stubAuth{}, Submission: stubSubmissions{}, Export: stubExport{}}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return Setup(cfg, handler.NewHandler(cfg, svc), jwtMgr, nil, zap.NewNop()), jwtMgr
}

func serve(engine http.Handler, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	}
	engine.ServeHTTP(w, req)
	return w
}

// ── 测试 ──

func TestRouter_Health(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := serve(engine, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("应设置 X-Request-ID")
	}
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	engine, jwtMgr := newTestEngine(t, false)
	token, _, _ := jwtMgr.Sign("admin")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/submissions"},
		{http.MethodGet, "/submissions/stats"},
		{http.MethodGet, "/submissions/export"},
		{http.MethodPost, "/verify/1"},
		{http.MethodPost, "/checkin/1"},
		{http.MethodPost, "/uncheckin/1"},
	}

	for _, rt := range routes {
		if w := serve(engine, rt.method, rt.path, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s 无 Token: 期望 401，实际=%d", rt.method, rt.path, w.Code)
		}
		if w := serve(engine, rt.method, rt.path, "bogus"); w.Code != http.StatusForbidden {
			t.Errorf("%s %s 无效 Token: 期望 403，实际=%d", rt.method, rt.path, w.Code)
		}
		if w := serve(engine, rt.method, rt.path, token); w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden {
			t.Errorf("%s %s 有效 Token 不应被拒绝，实际=%d", rt.method, rt.path, w.Code)
		}
	}
}

func TestRouter_UnknownIDIsNotFound(t *testing.T) {
	engine, jwtMgr := newTestEngine(t, false)
	token, _, _ := jwtMgr.Sign("admin")

	if w := serve(engine, http.MethodPost, "/checkin/999", token); w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	if w := serve(engine, http.MethodGet, "/admin/session", ""); w.Code != http.StatusOK {
		t.Errorf("session 应公开，实际=%d", w.Code)
	}
	if w := serve(engine, http.MethodPost, "/admin/logout", ""); w.Code != http.StatusOK {
		t.Errorf("logout 应公开，实际=%d", w.Code)
	}
	// 无表单时由 Service 返回缺字段
	if w := serve(engine, http.MethodPost, "/submit", ""); w.Code != http.StatusBadRequest {
		t.Errorf("submit 缺字段期望 400，实际=%d", w.Code)
	}
}

func TestRouter_DeleteRouteGatedByFeature(t *testing.T) {
	disabled, jwtMgr := newTestEngine(t, false)
	token, _, _ := jwtMgr.Sign("admin")
	if w := serve(disabled, http.MethodDelete, "/submissions/1", token); w.Code != http.StatusNotFound {
		t.Errorf("未开启删除时期望 404，实际=%d", w.Code)
	}

	enabled, jwtMgr := newTestEngine(t, true)
	token, _, _ = jwtMgr.Sign("admin")
	if w := serve(enabled, http.MethodDelete, "/submissions/1", token); w.Code != http.StatusOK {
		t.Errorf("开启删除后期望 200，实际=%d", w.Code)
	}
	if w := serve(enabled, http.MethodDelete, "/submissions/1", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("删除同样需要会话，实际=%d", w.Code)
	}
}
