package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"fyb-checkin/internal/dto"
)

// APIError Admin API 返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("admin api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("admin api: HTTP %d: %s", e.Status, e.Message)
}

// envelope 与服务端 response.Response 对应
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client Admin API 客户端，会话 Cookie 保存在内存 CookieJar 中
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// ── 会话 ──

// Login 登录并保存会话 Cookie
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/admin/login", dto.LoginRequest{Username: username, Password: password}, nil)
}

// Logout 清除会话 Cookie
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/logout", nil, nil)
}

// Session 查询当前会话状态
func (c *Client) Session(ctx context.Context) (*dto.SessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/session", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out dto.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析会话响应失败: %w", err)
	}
	return &out, nil
}

// ── 提交记录 ──

// List 获取全部提交记录
func (c *Client) List(ctx context.Context) ([]dto.SubmissionResponse, error) {
	var out []dto.SubmissionResponse
	if err := c.do(ctx, http.MethodGet, "/submissions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats 获取状态统计
func (c *Client) Stats(ctx context.Context) (*dto.SubmissionStatsResponse, error) {
	var out dto.SubmissionStatsResponse
	if err := c.do(ctx, http.MethodGet, "/submissions/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify 标记为已核验
func (c *Client) Verify(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return c.transition(ctx, "/verify", id)
}

// CheckIn 签到
func (c *Client) CheckIn(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return c.transition(ctx, "/checkin", id)
}

// Uncheck 取消签到
func (c *Client) Uncheck(ctx context.Context, id uint) (*dto.SubmissionResponse, error) {
	return c.transition(ctx, "/uncheckin", id)
}

func (c *Client) transition(ctx context.Context, prefix string, id uint) (*dto.SubmissionResponse, error) {
	var out dto.SubmissionResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d", prefix, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do 发送 JSON 请求并解析统一响应；out 为 nil 时忽略 data
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("解析响应失败: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("解析响应数据失败: %w", err)
		}
	}
	return nil
}
